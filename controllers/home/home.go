package home

import (
	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/models/catalog"
	"travel-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HomeController struct {
	db *gorm.DB
}

func NewHomeController(db *gorm.DB) *HomeController {
	return &HomeController{db: db}
}

// Landing is the public entry point.
func (h *HomeController) Landing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Travel booking platform",
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"traveler_login": "/traveler/login/",
			"vendor_login":   "/vendor/login/",
			"admin_login":    "/admin/login/",
		},
	})
}

// TravelerHome greets the logged-in traveler with active packages and their
// own bookings.
func (h *HomeController) TravelerHome(c *fiber.Ctx) error {
	u := middleware.CurrentUser(c)

	var packages []catalog.Package
	err := h.db.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(12).
		Find(&packages).Error
	if err != nil {
		logger.Error("Failed to list active packages", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load packages",
			Status:  fiber.StatusInternalServerError,
		})
	}

	var bookings []catalog.Booking
	err = h.db.
		Where("traveler_id = ?", u.ID).
		Order("created_at DESC").
		Preload("Package").
		Find(&bookings).Error
	if err != nil {
		logger.Error("Failed to list traveler bookings", err)
		return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
			Message: "Failed to load bookings",
			Status:  fiber.StatusInternalServerError,
		})
	}

	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Welcome back, " + u.FirstName,
		Status:  fiber.StatusOK,
		Data: fiber.Map{
			"packages": packages,
			"bookings": bookings,
		},
	})
}
