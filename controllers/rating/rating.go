package ratingController

import (
	"errors"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	ratingValidator "lms/validators/rating"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitRating records a student's one-time score for a course they are
// enrolled in. Ratings cannot be changed once submitted.
func SubmitRating(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	reqData := c.Locals("validatedRating").(*ratingValidator.RatingRequest)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var enrollment enrollmentModels.Enrollment
	err := db.
		Joins("JOIN enrollment_requests ON enrollment_requests.id = enrollments.enrollment_request_id").
		Where("enrollments.student_id = ? AND enrollments.course_id = ? AND enrollment_requests.status = ?",
			user.ID, course.ID, enrollmentModels.RequestApproved).
		First(&enrollment).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to rate this course!", nil)
	}

	var existing models.Rating
	if err := db.Where("student_id = ? AND course_id = ?", user.ID, course.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already rated this course!", nil)
	}

	rating := models.Rating{
		StudentID: user.ID,
		CourseID:  course.ID,
		Score:     reqData.Score,
		Review:    reqData.Review,
	}

	// Unique index on (student_id, course_id) closes the race window
	if err := db.Create(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already rated this course!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit rating!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Rating submitted successfully!", rating)
}

// GetCourseRatings lists a course's ratings, newest first, with the
// running average
func GetCourseRatings(c *fiber.Ctx) error {
	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	db.Model(&models.Rating{}).Where("course_id = ?", course.ID).Count(&total)

	var ratings []models.Rating
	err := db.Where("course_id = ?", course.ID).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&ratings).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ratings!", nil)
	}

	type RatingView struct {
		models.Rating
		StudentName string `json:"student_name"`
	}

	result := make([]RatingView, len(ratings))
	for i, rating := range ratings {
		var student models.User
		db.Select("id, name").Where("id = ?", rating.StudentID).First(&student)
		result[i] = RatingView{Rating: rating, StudentName: student.Name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ratings fetched successfully!", fiber.Map{
		"ratings":        result,
		"average_rating": courseAverageRatingValue(course.ID),
		"total":          total,
		"page":           page,
		"limit":          limit,
	})
}

func courseAverageRatingValue(courseID uint) float64 {
	db := database.Database.Db

	var avg *float64
	db.Model(&models.Rating{}).Select("AVG(score)").Where("course_id = ?", courseID).Scan(&avg)
	if avg == nil {
		return 0
	}
	return *avg
}
