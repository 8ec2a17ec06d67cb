package middleware

import (
	"travel-booking/models/user"
	"travel-booking/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocalUserKey is where guards stash the loaded user for handlers.
const LocalUserKey = "current_user"

func loginPathFor(role user.Role) string {
	switch role {
	case user.RoleVendor:
		return "/vendor/login/"
	case user.RoleTraveler:
		return "/traveler/login/"
	case user.RoleAdmin:
		return "/admin/login/"
	}
	return "/"
}

// RequireRole loads the session user and checks the role exhaustively at the
// boundary. A missing session, a deleted account or a role mismatch all
// resolve to a redirect to the matching login page, never an error page.
func RequireRole(db *gorm.DB, role user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := AuthenticatedUserID(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message:  "Login required",
				Status:   fiber.StatusUnauthorized,
				Redirect: loginPathFor(role),
			})
		}

		var u user.User
		if err := db.First(&u, userID).Error; err != nil {
			// Account removed mid-session: fall back to a safe entry point.
			ClearSession(c)
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Message:  "Login required",
				Status:   fiber.StatusUnauthorized,
				Redirect: loginPathFor(role),
			})
		}

		allowed := false
		switch u.Role {
		case user.RoleVendor:
			allowed = role == user.RoleVendor
		case user.RoleTraveler:
			allowed = role == user.RoleTraveler
		case user.RoleAdmin:
			allowed = role == user.RoleAdmin && u.IsStaff
		}

		if !allowed || !u.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Message:  "Access denied",
				Status:   fiber.StatusForbidden,
				Redirect: loginPathFor(role),
			})
		}

		c.Locals(LocalUserKey, &u)
		return c.Next()
	}
}

// CurrentUser returns the user a guard placed on the context.
func CurrentUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(LocalUserKey).(*user.User)
	return u
}
