package enrollmentRoutes

import (
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	// Student views of their own pipeline. RequireRole is attached per
	// route because group middleware is prefix-mounted and would otherwise
	// also intercept the /enrollment/request review routes below.
	myGroup := app.Group("/enrollment", middleware.JWTMiddleware)
	myGroup.Get("/requests/my", middleware.RequireRole(models.RoleStudent), enrollmentController.GetMyRequests)
	myGroup.Get("/courses/my", middleware.RequireRole(models.RoleStudent), enrollmentController.GetMyCourses)

	// Review actions: admins and course instructors. The controller checks
	// course ownership for teachers.
	reviewGroup := app.Group("/enrollment/request", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin, models.RoleTeacher))
	reviewGroup.Post("/:id/approve", enrollmentValidator.ReviewRequest(), enrollmentController.ApproveEnrollmentRequest)
	reviewGroup.Post("/:id/reject", enrollmentValidator.ReviewRequest(), enrollmentController.RejectEnrollmentRequest)

	// Watch-progress reporting
	videoGroup := app.Group("/video", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent))
	videoGroup.Post("/:id/progress", enrollmentValidator.RecordProgress(), enrollmentController.RecordVideoProgress)
}
