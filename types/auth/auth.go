package auth

import (
	"fmt"
	"strings"
)

// LoginRequest is the shared credential payload for every login form.
// RememberMe is only honored on the vendor and admin forms.
type LoginRequest struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// TravelerRegisterRequest is the traveler signup form.
type TravelerRegisterRequest struct {
	FirstName       string `json:"first_name" form:"first_name"`
	LastName        string `json:"last_name" form:"last_name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (r TravelerRegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// VendorRegisterRequest is the vendor signup form. The business license
// file arrives as a separate multipart part and is handled by the controller.
type VendorRegisterRequest struct {
	BusinessName    string `json:"business_name" form:"business_name"`
	OwnerName       string `json:"owner_name" form:"owner_name"`
	Email           string `json:"email" form:"email"`
	Phone           string `json:"phone" form:"phone"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

func (r VendorRegisterRequest) Validate() error {
	if strings.TrimSpace(r.BusinessName) == "" {
		return fmt.Errorf("business name is required")
	}
	if strings.TrimSpace(r.OwnerName) == "" {
		return fmt.Errorf("owner name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	if r.Password != r.ConfirmPassword {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// VerifyOTPRequest is the code submission on the verification form.
type VerifyOTPRequest struct {
	OTPCode string `json:"otp_code" form:"otp_code"`
}

func (r VerifyOTPRequest) Validate() error {
	if len(strings.TrimSpace(r.OTPCode)) != 6 {
		return fmt.Errorf("a 6-digit code is required")
	}
	return nil
}
