package admin

import (
	"errors"

	"travel-booking/logger"
	"travel-booking/models/user"
	"travel-booking/types"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdminController struct {
	db             *gorm.DB
	loggerInstance *logger.AsyncLogger
}

func NewAdminController(db *gorm.DB, asyncLogger *logger.AsyncLogger) *AdminController {
	return &AdminController{db: db, loggerInstance: asyncLogger}
}

// vendorRow joins the vendor profile with its account for the review queue.
type vendorRow struct {
	user.VendorProfile
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
}

// Vendors lists vendor profiles for review, unapproved first, oldest first
// within each group.
func (h *AdminController) Vendors(c *fiber.Ctx) error {
	var vendors []vendorRow
	err := h.db.Model(&user.VendorProfile{}).
		Select("vendor_profiles.*, users.email, users.is_verified").
		Joins("JOIN users ON users.id = vendor_profiles.user_id").
		Order("vendor_profiles.is_approved ASC, vendor_profiles.created_at ASC").
		Find(&vendors).Error
	if err != nil {
		logger.Error("Failed to list vendor profiles", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load vendors",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Vendor review queue",
		Status:  fiber.StatusOK,
		Data:    fiber.Map{"vendors": vendors},
	})
}

// ApproveVendor marks a vendor profile approved. Approving an already
// approved vendor is a no-op, not an error.
func (h *AdminController) ApproveVendor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
			Message: "Invalid vendor id",
			Status:  fiber.StatusBadRequest,
		})
	}

	var profile user.VendorProfile
	if err := h.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(types.ErrorResponse{
				Message: "Vendor not found",
				Status:  fiber.StatusNotFound,
			})
		}
		logger.Error("Failed to load vendor profile", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Something went wrong",
			Status:  fiber.StatusInternalServerError,
		})
	}

	if !profile.IsApproved {
		if err := h.db.Model(&profile).Update("is_approved", true).Error; err != nil {
			logger.Error("Failed to approve vendor", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to approve vendor",
				Status:  fiber.StatusInternalServerError,
			})
		}
		logger.Success("Vendor approved: " + profile.BusinessName)
	}

	h.loggerInstance.Log(utils.CreateSanitizedLogEntry(c))
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message:  "Vendor approved",
		Status:   fiber.StatusOK,
		Redirect: "/admin/vendors/",
	})
}
