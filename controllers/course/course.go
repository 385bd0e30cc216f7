package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// courseAverageRating computes the read-time mean score of a course.
// Courses without ratings report 0.
func courseAverageRating(db *gorm.DB, courseID uint) float64 {
	var avg *float64
	db.Model(&models.Rating{}).
		Select("AVG(score)").
		Where("course_id = ?", courseID).
		Scan(&avg)
	if avg == nil {
		return 0
	}
	return *avg
}

// GetAllCourses lists published courses with search and filters
func GetAllCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 12)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 12
	}
	offset := (page - 1) * limit

	query := db.Model(&courseModels.Course{}).
		Where("courses.is_published = ? AND courses.is_deleted = ?", true, false)

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.
			Joins("JOIN users ON users.id = courses.instructor_id").
			Where("LOWER(courses.title) LIKE LOWER(?) OR LOWER(courses.description) LIKE LOWER(?) OR LOWER(users.name) LIKE LOWER(?)", like, like, like)
	}

	if categoryID := c.QueryInt("category", 0); categoryID > 0 {
		query = query.Where("courses.category_id = ?", categoryID)
	}

	if difficulty, ok := c.Locals("difficultyFilter").(string); ok && difficulty != "" {
		query = query.Where("courses.difficulty = ?", difficulty)
	}

	var total int64
	query.Count(&total)

	var courses []courseModels.Course
	if err := query.Offset(offset).Limit(limit).Order("courses.created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithRating struct {
		courseModels.Course
		AverageRating  float64 `json:"average_rating"`
		InstructorName string  `json:"instructor_name"`
	}

	result := make([]CourseWithRating, len(courses))
	for i, course := range courses {
		var instructor models.User
		db.Select("id, name").Where("id = ?", course.InstructorID).First(&instructor)
		result[i] = CourseWithRating{
			Course:         course,
			AverageRating:  courseAverageRating(db, course.ID),
			InstructorName: instructor.Name,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetFeaturedCourses returns the home page payload: top courses by average
// rating, categories, and platform totals
func GetFeaturedCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	type CourseWithRating struct {
		courseModels.Course
		AverageRating float64 `json:"average_rating"`
	}

	rated := make([]CourseWithRating, len(courses))
	for i, course := range courses {
		rated[i] = CourseWithRating{Course: course, AverageRating: courseAverageRating(db, course.ID)}
	}

	// Top 6 by average rating
	for i := 0; i < len(rated); i++ {
		for j := i + 1; j < len(rated); j++ {
			if rated[j].AverageRating > rated[i].AverageRating {
				rated[i], rated[j] = rated[j], rated[i]
			}
		}
	}
	if len(rated) > 6 {
		rated = rated[:6]
	}

	var categories []courseModels.Category
	db.Where("is_deleted = ?", false).Limit(8).Find(&categories)

	var totalCourses, totalStudents, totalTeachers int64
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&totalCourses)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Count(&totalTeachers)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Featured courses fetched successfully!", fiber.Map{
		"featured_courses": rated,
		"categories":       categories,
		"stats": fiber.Map{
			"total_courses":  totalCourses,
			"total_students": totalStudents,
			"total_teachers": totalTeachers,
		},
	})
}

// GetCategories returns all categories
func GetCategories(c *fiber.Ctx) error {
	var categories []courseModels.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

// GetCourseDetails returns a course with its modules and videos. The page is
// public; video URLs are exposed only for free videos or when the caller is
// signed in with an approved enrollment.
func GetCourseDetails(c *fiber.Ctx) error {
	// Zero when the caller is anonymous
	userID, _ := c.Locals("userId").(uint)

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Caller's enrollment state for gating
	enrolled := userID != 0 && hasApprovedEnrollment(db, userID, course.ID)

	var request enrollmentModels.EnrollmentRequest
	hasRequest := false
	if userID != 0 {
		hasRequest = db.Where("student_id = ? AND course_id = ?", userID, course.ID).First(&request).Error == nil
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	type VideoView struct {
		ID              uint   `json:"id"`
		Title           string `json:"title"`
		Description     string `json:"description"`
		DurationMinutes int    `json:"duration_minutes"`
		OrderIndex      int    `json:"order_index"`
		IsFree          bool   `json:"is_free"`
		VideoURL        string `json:"video_url,omitempty"` // Empty unless watchable
	}

	type ModuleView struct {
		courseModels.Module
		Videos []VideoView `json:"videos"`
	}

	moduleViews := make([]ModuleView, len(modules))
	for i, module := range modules {
		var videos []courseModels.Video
		db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&videos)

		videoViews := make([]VideoView, len(videos))
		for j, video := range videos {
			view := VideoView{
				ID:              video.ID,
				Title:           video.Title,
				Description:     video.Description,
				DurationMinutes: video.DurationMinutes,
				OrderIndex:      video.OrderIndex,
				IsFree:          video.IsFree,
			}
			if video.IsFree || enrolled {
				view.VideoURL = video.VideoURL
			}
			videoViews[j] = view
		}
		moduleViews[i] = ModuleView{Module: module, Videos: videoViews}
	}

	// Latest ratings with reviewer names
	var ratings []models.Rating
	db.Where("course_id = ?", course.ID).Order("created_at desc").Limit(5).Find(&ratings)

	type RatingView struct {
		models.Rating
		StudentName string `json:"student_name"`
	}

	ratingViews := make([]RatingView, len(ratings))
	for i, rating := range ratings {
		var student models.User
		db.Select("id, name").Where("id = ?", rating.StudentID).First(&student)
		ratingViews[i] = RatingView{Rating: rating, StudentName: student.Name}
	}

	var instructor models.User
	db.Select("id, name, bio").Where("id = ?", course.InstructorID).First(&instructor)

	response := fiber.Map{
		"course":         course,
		"instructor":     fiber.Map{"id": instructor.ID, "name": instructor.Name, "bio": instructor.Bio},
		"modules":        moduleViews,
		"ratings":        ratingViews,
		"average_rating": courseAverageRating(db, course.ID),
		"user_enrolled":  enrolled,
		"has_request":    hasRequest,
	}
	if hasRequest {
		response["request_status"] = request.Status
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// hasApprovedEnrollment reports whether the student holds an enrollment
// whose linked request is approved
func hasApprovedEnrollment(db *gorm.DB, studentID, courseID uint) bool {
	var enrollment enrollmentModels.Enrollment
	err := db.
		Joins("JOIN enrollment_requests ON enrollment_requests.id = enrollments.enrollment_request_id").
		Where("enrollments.student_id = ? AND enrollments.course_id = ? AND enrollment_requests.status = ?",
			studentID, courseID, enrollmentModels.RequestApproved).
		First(&enrollment).Error
	return err == nil
}
