package otp

import (
	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/models/user"
	authService "travel-booking/services/auth"
	otpService "travel-booking/services/otp"
	"travel-booking/types"
	typesAuth "travel-booking/types/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OTPController struct {
	db   *gorm.DB
	auth *authService.Service
	otp  *otpService.Service
}

func NewOTPController(db *gorm.DB, auth *authService.Service, otp *otpService.Service) *OTPController {
	return &OTPController{db: db, auth: auth, otp: otp}
}

func verifiedHomeFor(u *user.User) string {
	if u.Role == user.RoleVendor {
		return "/vendor/dashboard/"
	}
	return "/traveler/home/"
}

// pendingUser resolves the account behind the pending-verification cookie.
// A missing or stale cookie sends the visitor back to login.
func (h *OTPController) pendingUser(c *fiber.Ctx) (*user.User, error) {
	userID, ok := middleware.PendingUserID(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message:  "Verification session expired. Please log in again.",
			Status:   fiber.StatusUnauthorized,
			Redirect: "/vendor/login/",
		})
	}

	u, err := h.auth.GetUserByID(userID)
	if err != nil {
		logger.Error("Failed to load pending user", err)
		return nil, c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if u == nil {
		middleware.ClearSession(c)
		return nil, c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
			Message:  "Verification session expired. Please log in again.",
			Status:   fiber.StatusUnauthorized,
			Redirect: "/vendor/login/",
		})
	}

	return u, nil
}

// VerifyForm renders the OTP entry form for the pending account.
func (h *OTPController) VerifyForm(c *fiber.Ctx) error {
	u, err := h.pendingUser(c)
	if u == nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Enter the verification code sent to your email",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"email": u.Email},
	})
}

// Verify consumes the submitted code. Success upgrades the pending cookie to
// a full session and routes by role; failure leaves the pending state alone
// so the visitor can retry or resend.
func (h *OTPController) Verify(c *fiber.Ctx) error {
	u, err := h.pendingUser(c)
	if u == nil {
		return err
	}

	var req typesAuth.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	ok, err := h.otp.Verify(u.ID, req.OTPCode)
	if err != nil {
		logger.Error("Failed to verify OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid or expired OTP",
			Status:  fiber.StatusBadRequest,
		})
	}

	if err := h.auth.MarkVerified(u); err != nil {
		logger.Error("Failed to mark user verified", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := middleware.EstablishSession(c, u, false); err != nil {
		logger.Error("Failed to establish session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Email verified: " + u.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Email verified successfully",
		Status:   fiber.StatusOK,
		Redirect: verifiedHomeFor(u),
	})
}

// Resend invalidates the outstanding code and emails a fresh one.
func (h *OTPController) Resend(c *fiber.Ctx) error {
	u, err := h.pendingUser(c)
	if u == nil {
		return err
	}

	if _, err := h.otp.Issue(u); err != nil {
		logger.Error("Failed to reissue OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Info("OTP resent for " + u.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "A new verification code has been sent.",
		Status:  fiber.StatusOK,
	})
}
