package auth

import (
	"errors"
	"fmt"
	"os"

	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/models/user"
	authService "travel-booking/services/auth"
	otpService "travel-booking/services/otp"
	"travel-booking/types"
	typesAuth "travel-booking/types/auth"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct {
	db             *gorm.DB
	auth           *authService.Service
	otp            *otpService.Service
	loggerInstance *logger.AsyncLogger
}

func NewAuthController(db *gorm.DB, auth *authService.Service, otp *otpService.Service, asyncLogger *logger.AsyncLogger) *AuthController {
	return &AuthController{db: db, auth: auth, otp: otp, loggerInstance: asyncLogger}
}

func homePathFor(role user.Role) string {
	switch role {
	case user.RoleVendor:
		return "/vendor/dashboard/"
	case user.RoleAdmin:
		return "/admin/vendors/"
	default:
		return "/traveler/home/"
	}
}

// login runs the shared credential flow for vendor and traveler logins:
// authenticate, then either land the session or detour through OTP
// verification for unverified accounts.
func (h *AuthController) login(c *fiber.Ctx, role user.Role, allowRemember bool) error {
	var req typesAuth.LoginRequest
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

	u, err := h.auth.Authenticate(req.Email, role, req.Password)
	if err != nil {
		if errors.Is(err, authService.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid credentials",
				Status:  fiber.StatusUnauthorized,
			})
		}
		logger.Error("Failed to authenticate user", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !u.IsVerified {
		if _, err := h.otp.Issue(u); err != nil {
			logger.Error("Failed to issue OTP", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Something went wrong",
				Status:  fiber.StatusInternalServerError,
			})
		}
		if err := middleware.EstablishPending(c, u.ID); err != nil {
			logger.Error("Failed to establish pending session", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Something went wrong",
				Status:  fiber.StatusInternalServerError,
			})
		}
		return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
			Message:  "Please verify your email with the OTP sent.",
			Status:   fiber.StatusOK,
			Redirect: "/verify-otp/",
		})
	}

	remember := allowRemember && req.RememberMe
	if err := middleware.EstablishSession(c, u, remember); err != nil {
		logger.Error("Failed to establish session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success(fmt.Sprintf("%s logged in: %s", role, u.Email))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Login successful",
		Status:   fiber.StatusOK,
		Redirect: homePathFor(role),
	})
}

// TravelerLoginForm renders the traveler login form payload.
func (h *AuthController) TravelerLoginForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Traveler login",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"form": "traveler_login"},
	})
}

func (h *AuthController) TravelerLogin(c *fiber.Ctx) error {
	return h.login(c, user.RoleTraveler, false)
}

// VendorLoginForm renders the vendor login form payload.
func (h *AuthController) VendorLoginForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Vendor login",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"form": "vendor_login"},
	})
}

func (h *AuthController) VendorLogin(c *fiber.Ctx) error {
	return h.login(c, user.RoleVendor, true)
}

// AdminLoginForm renders the admin login form payload.
func (h *AuthController) AdminLoginForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Admin login",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"form": "admin_login"},
	})
}

// AdminLogin requires the staff flag on top of valid credentials. Admin
// accounts skip OTP verification entirely; that bypass is intentional for
// operational accounts.
func (h *AuthController) AdminLogin(c *fiber.Ctx) error {
	var req typesAuth.LoginRequest
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

	u, err := h.auth.Authenticate(req.Email, user.RoleAdmin, req.Password)
	if err != nil || !u.IsStaff {
		if err != nil && !errors.Is(err, authService.ErrInvalidCredentials) {
			logger.Error("Failed to authenticate admin", err)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
			Message: "Invalid credentials or insufficient permissions",
			Status:  fiber.StatusUnauthorized,
		})
	}

	if err := middleware.EstablishSession(c, u, req.RememberMe); err != nil {
		logger.Error("Failed to establish session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	logger.Success("Admin logged in: " + u.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Login successful",
		Status:   fiber.StatusOK,
		Redirect: homePathFor(user.RoleAdmin),
	})
}

// TravelerRegisterForm renders the traveler signup form payload.
func (h *AuthController) TravelerRegisterForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Traveler registration",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"form": "traveler_register"},
	})
}

func (h *AuthController) TravelerRegister(c *fiber.Ctx) error {
	var req typesAuth.TravelerRegisterRequest
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

	newUser, err := h.auth.RegisterTraveler(req)
	if err != nil {
		return h.registrationFailure(c, err)
	}

	return h.beginVerification(c, newUser)
}

// VendorRegisterForm renders the vendor signup form payload.
func (h *AuthController) VendorRegisterForm(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Vendor registration",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"form": "vendor_register"},
	})
}

// VendorRegister accepts a multipart form including an optional business
// license upload.
func (h *AuthController) VendorRegister(c *fiber.Ctx) error {
	var req typesAuth.VendorRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid request payload",
			Status:  fiber.StatusBadRequest,
		})
	}

	// Validate before touching the filesystem so a bad form writes nothing.
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: err.Error(),
			Status:  fiber.StatusBadRequest,
		})
	}

	var licensePath *string
	if file, err := c.FormFile("business_license"); err == nil && file != nil {
		path, err := utils.SaveLicenseFile(c, file)
		if err != nil {
			logger.Error("Failed to store license upload", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to store license file",
				Status:  fiber.StatusInternalServerError,
			})
		}
		licensePath = &path
	}

	newUser, err := h.auth.RegisterVendor(req, licensePath)
	if err != nil {
		// No account, no file: a rejected registration must not leave an
		// orphaned upload behind.
		if licensePath != nil {
			if rmErr := os.Remove(*licensePath); rmErr != nil {
				logger.Warning("Failed to remove orphaned license file: " + rmErr.Error())
			}
		}
		return h.registrationFailure(c, err)
	}

	return h.beginVerification(c, newUser)
}

func (h *AuthController) registrationFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, authService.ErrEmailTaken) {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Email already registered",
			Status:  fiber.StatusBadRequest,
		})
	}
	logger.Error("Registration failed", err)
	return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
		Message: "Something went wrong",
		Status:  fiber.StatusInternalServerError,
	})
}

// beginVerification issues the first OTP and parks the new account in the
// pending-verification state.
func (h *AuthController) beginVerification(c *fiber.Ctx, u *user.User) error {
	if _, err := h.otp.Issue(u); err != nil {
		logger.Error("Failed to issue OTP", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if err := middleware.EstablishPending(c, u.ID); err != nil {
		logger.Error("Failed to establish pending session", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	logger.Success("User registered: " + u.Email)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Registration successful! Please verify your email.",
		Status:   fiber.StatusOK,
		Redirect: "/verify-otp/",
	})
}

// Logout terminates the session unconditionally; logging out while already
// logged out is not an error.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	middleware.ClearSession(c)
	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Logout successful",
		Status:   fiber.StatusOK,
		Redirect: "/vendor/login/",
	})
}
