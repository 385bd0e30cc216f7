package adminRoutes

import (
	adminController "lms/controllers/admin"
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	categoryValidator "lms/validators/category"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/dashboard/stats", adminController.AdminDashboard)

	adminGroup.Get("/enrollment/requests", enrollmentValidator.ListRequests(), enrollmentController.ListEnrollmentRequests)

	adminGroup.Post("/category", categoryValidator.CreateCategory(), adminController.CreateCategory)
	adminGroup.Put("/category/:id", categoryValidator.UpdateCategory(), adminController.UpdateCategory)
	adminGroup.Delete("/category/:id", categoryValidator.DeleteCategory(), adminController.DeleteCategory)
}
