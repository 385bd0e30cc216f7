package courseRoutes

import (
	controllers "lms/controllers/course"
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherCourseRoutes sets up the course-authoring routes
func SetupTeacherCourseRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher/course", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))

	// Course CRUD
	teacherGroup.Post("/create", courseValidator.CreateCourse(), controllers.CreateCourse)
	teacherGroup.Get("/list", controllers.GetTeacherCourses)
	teacherGroup.Get("/dashboard", controllers.TeacherDashboard)
	teacherGroup.Put("/:slug", courseValidator.UpdateCourse(), controllers.UpdateCourse)
	teacherGroup.Post("/:slug/publish", courseValidator.CourseSlug(), controllers.PublishCourse)
	teacherGroup.Delete("/:slug", courseValidator.CourseSlug(), controllers.DeleteCourse)

	// Enrollment oversight
	teacherGroup.Get("/:slug/students", courseValidator.CourseSlug(), controllers.GetCourseStudents)
	teacherGroup.Get("/:slug/requests", courseValidator.CourseSlug(), enrollmentValidator.ListRequests(),
		enrollmentController.GetCourseRequests)

	// Content authoring
	teacherGroup.Post("/:slug/module", courseValidator.CreateModule(), controllers.CreateModule)
	teacherGroup.Post("/:slug/post", courseValidator.CreatePost(), controllers.CreatePost)
	teacherGroup.Get("/:slug/posts", courseValidator.CourseSlug(), controllers.GetCoursePosts)

	moduleGroup := app.Group("/teacher/module", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))
	moduleGroup.Put("/:id", courseValidator.UpdateModule(), controllers.UpdateModule)
	moduleGroup.Delete("/:id", courseValidator.DeleteModule(), controllers.DeleteModule)
	moduleGroup.Post("/:id/video", courseValidator.CreateVideo(), controllers.CreateVideo)

	videoGroup := app.Group("/teacher/video", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))
	videoGroup.Put("/:id", courseValidator.UpdateVideo(), controllers.UpdateVideo)
	videoGroup.Delete("/:id", courseValidator.DeleteVideo(), controllers.DeleteVideo)

	postGroup := app.Group("/teacher/post", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTeacher))
	postGroup.Put("/:id", courseValidator.UpdatePost(), controllers.UpdatePost)
	postGroup.Delete("/:id", courseValidator.DeletePost(), controllers.DeletePost)
}
