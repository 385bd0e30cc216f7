package middleware

import (
	"lms/database"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireRole returns a middleware that loads the authenticated user and
// checks their role against the allowed set. The user row is re-read from
// the database so a stale token cannot escalate a changed account, and the
// loaded user is stashed in Locals for the handler.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking role!", nil)
		}

		switch user.Role {
		case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
			for _, role := range allowedRoles {
				if user.Role == role {
					c.Locals("user", user)
					return c.Next()
				}
			}
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Insufficient role.", nil)
		default:
			// Unknown role tag on the row, treat as forbidden
			return JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Unknown role.", nil)
		}
	}
}

// CurrentUser returns the user loaded by RequireRole, falling back to a
// fresh lookup for routes that only use JWTMiddleware.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	if user, ok := c.Locals("user").(models.User); ok {
		return user, true
	}

	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return models.User{}, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return models.User{}, false
	}
	return user, true
}
