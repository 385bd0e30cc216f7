package courseRoutes

import (
	controllers "lms/controllers/course"
	enrollmentController "lms/controllers/enrollment"
	ratingController "lms/controllers/rating"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"
	ratingValidator "lms/validators/rating"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the catalog and student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog: open to everyone. Static paths go before the slug route.
	courseGroup.Get("/list", courseValidator.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/featured", controllers.GetFeaturedCourses)
	courseGroup.Get("/categories", controllers.GetCategories)
	courseGroup.Get("/:slug/ratings", courseValidator.CourseSlug(), ratingController.GetCourseRatings)
	courseGroup.Get("/:slug", middleware.OptionalJWTMiddleware, courseValidator.CourseSlug(), controllers.GetCourseDetails)

	// Playback and progress
	courseGroup.Get("/:slug/watch/:videoId", middleware.JWTMiddleware, courseValidator.WatchVideo(), controllers.WatchVideo)
	courseGroup.Get("/:slug/progress", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent),
		courseValidator.CourseSlug(), enrollmentController.GetCourseProgress)

	// Enrollment and rating
	courseGroup.Post("/:slug/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent),
		enrollmentValidator.SubmitRequest(), enrollmentController.SubmitEnrollmentRequest)
	courseGroup.Post("/:slug/rate", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent),
		ratingValidator.SubmitRating(), ratingController.SubmitRating)
}
