package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findOwnedCourse loads a course by slug and verifies ownership. A missing
// course reports 404; a course owned by someone else reports 403 so the two
// cases stay distinguishable.
func findOwnedCourse(db *gorm.DB, slug string, userID uint) (*courseModels.Course, int, string) {
	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found!"
	}
	if course.InstructorID != userID {
		return nil, fiber.StatusForbidden, "You are not the instructor of this course!"
	}
	return &course, 0, ""
}

// findOwnedModule loads a module and verifies the caller owns its course
func findOwnedModule(db *gorm.DB, moduleID int, userID uint) (*courseModels.Module, *courseModels.Course, int, string) {
	var module courseModels.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
		return nil, nil, fiber.StatusNotFound, "Module not found!"
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", module.CourseID, false).First(&course).Error; err != nil {
		return nil, nil, fiber.StatusNotFound, "Course not found!"
	}
	if course.InstructorID != userID {
		return nil, nil, fiber.StatusForbidden, "You are not the instructor of this course!"
	}
	return &module, &course, 0, ""
}

// CreateCourse creates a new course owned by the calling teacher
func CreateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	db := database.Database.Db

	slug := utils.Slugify(reqData.Title)
	if err := db.Where("slug = ?", slug).First(&courseModels.Course{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this title already exists!", nil)
	}

	course := courseModels.Course{
		Title:            reqData.Title,
		Slug:             slug,
		Description:      reqData.Description,
		ShortDescription: reqData.ShortDescription,
		InstructorID:     user.ID,
		CategoryID:       reqData.CategoryID,
		Price:            reqData.Price,
		Difficulty:       reqData.Difficulty,
		DurationWeeks:    reqData.DurationWeeks,
		ThumbnailURL:     reqData.ThumbnailURL,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates a course owned by the calling teacher
func UpdateCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.CourseRequest)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
		// The slug stays stable once the course is published so existing
		// links keep working
		if !course.IsPublished {
			newSlug := utils.Slugify(reqData.Title)
			if newSlug != course.Slug {
				if err := db.Where("slug = ?", newSlug).First(&courseModels.Course{}).Error; err == nil {
					return middleware.JsonResponse(c, fiber.StatusConflict, false, "A course with this title already exists!", nil)
				}
				course.Slug = newSlug
			}
		}
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.ShortDescription != "" {
		course.ShortDescription = reqData.ShortDescription
	}
	if reqData.CategoryID != 0 {
		course.CategoryID = reqData.CategoryID
	}
	if reqData.Price != 0 {
		course.Price = reqData.Price
	}
	if reqData.Difficulty != "" {
		course.Difficulty = reqData.Difficulty
	}
	if reqData.DurationWeeks != 0 {
		course.DurationWeeks = reqData.DurationWeeks
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// PublishCourse marks a course as published
func PublishCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	course.IsPublished = true
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// DeleteCourse soft-deletes a course owned by the calling teacher
func DeleteCourse(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	course.IsDeleted = true
	if err := db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetTeacherCourses lists the calling teacher's own courses (drafts included)
func GetTeacherCourses(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("instructor_id = ? AND is_deleted = ?", user.ID, false).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// TeacherDashboard returns aggregate stats over the caller's courses
func TeacherDashboard(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courseIDs []uint
	db.Model(&courseModels.Course{}).
		Where("instructor_id = ? AND is_deleted = ?", user.ID, false).
		Pluck("id", &courseIDs)

	var totalStudents, pendingRequests int64
	if len(courseIDs) > 0 {
		db.Model(&enrollmentModels.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&totalStudents)
		db.Model(&enrollmentModels.EnrollmentRequest{}).
			Where("course_id IN ? AND status = ?", courseIDs, enrollmentModels.RequestPending).
			Count(&pendingRequests)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":    len(courseIDs),
		"total_students":   totalStudents,
		"pending_requests": pendingRequests,
	})
}

// GetCourseStudents lists enrollments on an owned course with per-student
// watch progress
func GetCourseStudents(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	var totalVideos int64
	db.Model(&courseModels.Video{}).
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("modules.course_id = ? AND videos.is_deleted = ? AND modules.is_deleted = ?", course.ID, false, false).
		Count(&totalVideos)

	var enrollments []enrollmentModels.Enrollment
	if err := db.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type StudentProgress struct {
		enrollmentModels.Enrollment
		StudentName   string `json:"student_name"`
		StudentEmail  string `json:"student_email"`
		VideosWatched int64  `json:"videos_watched"`
		TotalVideos   int64  `json:"total_videos"`
	}

	result := make([]StudentProgress, len(enrollments))
	for i, enrollment := range enrollments {
		var student models.User
		db.Select("id, name, email").Where("id = ?", enrollment.StudentID).First(&student)

		var watched int64
		db.Model(&enrollmentModels.VideoProgress{}).
			Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
			Count(&watched)

		result[i] = StudentProgress{
			Enrollment:    enrollment,
			StudentName:   student.Name,
			StudentEmail:  student.Email,
			VideosWatched: watched,
			TotalVideos:   totalVideos,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"course":   course,
		"students": result,
	})
}
