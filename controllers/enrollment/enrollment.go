package enrollmentController

import (
	"errors"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitEnrollmentRequest files a student's request to join a course. At
// most one request may exist per (student, course); approval is a separate
// admin/teacher action.
func SubmitEnrollmentRequest(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	reqData := c.Locals("validatedEnrollmentRequest").(*enrollmentValidator.EnrollmentRequestBody)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// A teacher cannot enroll in their own course
	if course.InstructorID == user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot enroll in your own course!", nil)
	}

	// One request per student per course, whatever its status
	var existing enrollmentModels.EnrollmentRequest
	if err := db.Where("student_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already requested enrollment for this course!", nil)
	}

	request := enrollmentModels.EnrollmentRequest{
		StudentID:   user.ID,
		CourseID:    course.ID,
		Status:      enrollmentModels.RequestPending,
		PhoneNumber: reqData.PhoneNumber,
		Email:       reqData.Email,
		Message:     reqData.Message,
	}

	// The composite unique index catches two requests racing past the check
	if err := db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already requested enrollment for this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit enrollment request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrollment request submitted successfully!", request)
}

// GetMyRequests lists the caller's enrollment requests
func GetMyRequests(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var requests []enrollmentModels.EnrollmentRequest
	if err := db.Where("student_id = ?", user.ID).Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	type RequestWithCourse struct {
		enrollmentModels.EnrollmentRequest
		CourseTitle string `json:"course_title"`
		CourseSlug  string `json:"course_slug"`
	}

	result := make([]RequestWithCourse, len(requests))
	for i, request := range requests {
		var course courseModels.Course
		db.Select("id, title, slug").Where("id = ?", request.CourseID).First(&course)
		result[i] = RequestWithCourse{
			EnrollmentRequest: request,
			CourseTitle:       course.Title,
			CourseSlug:        course.Slug,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", result)
}

// GetMyCourses lists the caller's approved enrollments, each flagged with
// whether the caller has already rated the course
func GetMyCourses(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var enrollments []enrollmentModels.Enrollment
	err := db.
		Joins("JOIN enrollment_requests ON enrollment_requests.id = enrollments.enrollment_request_id").
		Where("enrollments.student_id = ? AND enrollment_requests.status = ?", user.ID, enrollmentModels.RequestApproved).
		Order("enrollments.created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type EnrollmentWithCourse struct {
		enrollmentModels.Enrollment
		CourseTitle string `json:"course_title"`
		CourseSlug  string `json:"course_slug"`
		HasRated    bool   `json:"has_rated"`
	}

	result := make([]EnrollmentWithCourse, len(enrollments))
	for i, enrollment := range enrollments {
		var course courseModels.Course
		db.Select("id, title, slug").Where("id = ?", enrollment.CourseID).First(&course)

		var rated int64
		db.Model(&models.Rating{}).
			Where("student_id = ? AND course_id = ?", user.ID, enrollment.CourseID).
			Count(&rated)

		result[i] = EnrollmentWithCourse{
			Enrollment:  enrollment,
			CourseTitle: course.Title,
			CourseSlug:  course.Slug,
			HasRated:    rated > 0,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}
