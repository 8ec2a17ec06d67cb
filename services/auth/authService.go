package auth

import (
	"errors"
	"fmt"

	"travel-booking/models/user"
	typesAuth "travel-booking/types/auth"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sentinel failures the controller turns into user-visible messages. They are
// deliberately generic: credential checks never reveal which factor failed.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service owns identity reads and writes for the auth flow.
type Service struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Authenticate resolves a user by (email, role) and checks the password.
// Unknown email, wrong role and wrong password all collapse into
// ErrInvalidCredentials.
func (s *Service) Authenticate(email string, role user.Role, password string) (*user.User, error) {
	var u user.User
	err := s.DB.Where("email = ? AND role = ?", email, role).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

// RegisterTraveler creates an unverified traveler account. Validation
// failures happen before any write.
func (s *Service) RegisterTraveler(req typesAuth.TravelerRegisterRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if taken, err := s.emailTaken(req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.RoleTraveler,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsVerified:   false,
		IsActive:     true,
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}

	if err := s.DB.Create(&newUser).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &newUser, nil
}

// RegisterVendor creates the vendor user and its profile atomically: either
// both rows land or neither does.
func (s *Service) RegisterVendor(req typesAuth.VendorRegisterRequest, licensePath *string) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if taken, err := s.emailTaken(req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.RoleVendor,
		IsVerified:   false,
		IsActive:     true,
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		profile := user.VendorProfile{
			UserID:       newUser.ID,
			BusinessName: req.BusinessName,
			OwnerName:    req.OwnerName,
			LicensePath:  licensePath,
			IsApproved:   false,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("failed to create vendor profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &newUser, nil
}

// MarkVerified flips the verified flag after a successful OTP check.
func (s *Service) MarkVerified(u *user.User) error {
	u.IsVerified = true
	if err := s.DB.Model(u).Update("is_verified", true).Error; err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	return nil
}

// GetUserByID loads a user referenced by session state. A missing row is a
// normal outcome (nil, nil): accounts can disappear mid-flow.
func (s *Service) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	err := s.DB.First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

func (s *Service) emailTaken(email string) (bool, error) {
	var count int64
	if err := s.DB.Model(&user.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}
