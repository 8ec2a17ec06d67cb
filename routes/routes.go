package routes

import (
	"time"

	"travel-booking/controllers/admin"
	"travel-booking/controllers/auth"
	"travel-booking/controllers/home"
	"travel-booking/controllers/otp"
	"travel-booking/controllers/vendor"
	"travel-booking/httpServices/mail"
	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/models/user"
	"travel-booking/services/analytics"
	authSvc "travel-booking/services/auth"
	otpSvc "travel-booking/services/otp"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	mailClient := mail.NewClient()
	asyncLogger := logger.NewAsyncLogger(db)

	authServiceInstance := authSvc.NewAuthService(db)
	otpServiceInstance := otpSvc.NewOTPService(db, mailClient)
	analyticsService := analytics.NewService(db)

	authController := auth.NewAuthController(db, authServiceInstance, otpServiceInstance, asyncLogger)
	otpController := otp.NewOTPController(db, authServiceInstance, otpServiceInstance)
	vendorController := vendor.NewVendorController(db, analyticsService, asyncLogger)
	adminController := admin.NewAdminController(db, asyncLogger)
	homeController := home.NewHomeController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	// Sweep expired OTP rows hourly
	go otpServiceInstance.RunCleanup(time.Hour)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	app.Get("/", homeController.Landing)

	app.Get("/traveler/login/", authController.TravelerLoginForm)
	app.Post("/traveler/login/", authController.TravelerLogin)
	app.Get("/traveler/register/", authController.TravelerRegisterForm)
	app.Post("/traveler/register/", authController.TravelerRegister)

	app.Get("/vendor/login/", authController.VendorLoginForm)
	app.Post("/vendor/login/", authController.VendorLogin)
	app.Get("/vendor/register/", authController.VendorRegisterForm)
	app.Post("/vendor/register/", authController.VendorRegister)

	app.Get("/admin/login/", authController.AdminLoginForm)
	app.Post("/admin/login/", authController.AdminLogin)

	app.Get("/logout/", authController.Logout)
	app.Post("/logout/", authController.Logout)

	/*=============================================================================
	| OTP Verification Routes (pending-session cookie, not a full login)
	===============================================================================*/
	app.Get("/verify-otp/", otpController.VerifyForm)
	app.Post("/verify-otp/", otpController.Verify)
	app.Post("/resend-otp/", otpController.Resend)

	/*=============================================================================
	| Traveler Routes
	===============================================================================*/
	travelerGroup := app.Group("/traveler", middleware.RequireRole(db, user.RoleTraveler))
	travelerGroup.Get("/home/", homeController.TravelerHome)

	/*=============================================================================
	| Vendor Routes
	===============================================================================*/
	vendorGroup := app.Group("/vendor", middleware.RequireRole(db, user.RoleVendor))
	vendorGroup.Get("/dashboard/", vendorController.Dashboard)
	vendorGroup.Get("/packages/", vendorController.Packages)
	vendorGroup.Post("/packages/", vendorController.CreatePackage)
	vendorGroup.Post("/packages/:id/", vendorController.UpdatePackage)
	vendorGroup.Get("/bookings/", vendorController.Bookings)
	vendorGroup.Post("/bookings/:id/status/", vendorController.UpdateBookingStatus)
	vendorGroup.Get("/reviews/", vendorController.Reviews)
	vendorGroup.Get("/analytics/", vendorController.Analytics)
	vendorGroup.Get("/settings/", vendorController.Settings)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := app.Group("/admin", middleware.RequireRole(db, user.RoleAdmin))
	adminGroup.Get("/vendors/", adminController.Vendors)
	adminGroup.Post("/vendors/:id/approve/", adminController.ApproveVendor)
}
