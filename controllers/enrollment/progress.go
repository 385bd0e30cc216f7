package enrollmentController

import (
	"time"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func approvedEnrollment(db *gorm.DB, studentID, courseID uint) (*enrollmentModels.Enrollment, error) {
	var enrollment enrollmentModels.Enrollment
	err := db.
		Joins("JOIN enrollment_requests ON enrollment_requests.id = enrollments.enrollment_request_id").
		Where("enrollments.student_id = ? AND enrollments.course_id = ? AND enrollment_requests.status = ?",
			studentID, courseID, enrollmentModels.RequestApproved).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// RecordVideoProgress upserts the caller's progress on a video and rolls
// the result into the course-level percentage. Watched seconds never move
// backwards and a completed video stays completed.
func RecordVideoProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(int)
	progressData := c.Locals("validatedProgress").(*struct {
		WatchedSeconds int  `json:"watched_seconds"`
		Completed      bool `json:"completed"`
	})
	db := database.Database.Db

	var video courseModels.Video
	if err := db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var module courseModels.Module
	if err := db.Where("id = ?", video.ModuleID).First(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	enrollment, err := approvedEnrollment(db, user.ID, module.CourseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var progress enrollmentModels.VideoProgress
	err = db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("enrollment_id = ? AND video_id = ?", enrollment.ID, video.ID).First(&progress)
		if result.Error != nil {
			progress = enrollmentModels.VideoProgress{
				EnrollmentID: enrollment.ID,
				VideoID:      video.ID,
			}
		}

		if progressData.WatchedSeconds > progress.WatchedDuration {
			progress.WatchedDuration = progressData.WatchedSeconds
		}
		if progressData.Completed {
			progress.IsCompleted = true
		}
		progress.LastWatched = time.Now()

		if err := tx.Save(&progress).Error; err != nil {
			return err
		}

		return updateEnrollmentProgress(tx, enrollment, module.CourseID)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress recorded successfully!", fiber.Map{
		"video_progress":      progress,
		"progress_percentage": enrollment.ProgressPercentage,
		"completed_at":        enrollment.CompletedAt,
	})
}

// updateEnrollmentProgress recomputes the stored course percentage from
// the completed-video count. CompletedAt is set once, the first time the
// percentage reaches 100.
func updateEnrollmentProgress(tx *gorm.DB, enrollment *enrollmentModels.Enrollment, courseID uint) error {
	var totalVideos int64
	err := tx.Model(&courseModels.Video{}).
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("modules.course_id = ? AND modules.is_deleted = ? AND videos.is_deleted = ?", courseID, false, false).
		Count(&totalVideos).Error
	if err != nil {
		return err
	}

	var completedVideos int64
	err = tx.Model(&enrollmentModels.VideoProgress{}).
		Joins("JOIN videos ON videos.id = video_progresses.video_id").
		Where("video_progresses.enrollment_id = ? AND video_progresses.is_completed = ? AND videos.is_deleted = ?",
			enrollment.ID, true, false).
		Count(&completedVideos).Error
	if err != nil {
		return err
	}

	percentage := 0
	if totalVideos > 0 {
		percentage = int(completedVideos * 100 / totalVideos)
	}

	enrollment.ProgressPercentage = percentage
	if percentage == 100 && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
	}
	return tx.Save(enrollment).Error
}

// GetCourseProgress returns the caller's per-video progress for a course
// alongside the stored percentage
func GetCourseProgress(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment, err := approvedEnrollment(db, user.ID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	type VideoProgressView struct {
		VideoID         uint   `json:"video_id"`
		VideoTitle      string `json:"video_title"`
		ModuleID        uint   `json:"module_id"`
		WatchedDuration int    `json:"watched_duration"`
		IsCompleted     bool   `json:"is_completed"`
	}

	var modules []courseModels.Module
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules)

	videos := make([]VideoProgressView, 0)
	for _, module := range modules {
		var moduleVideos []courseModels.Video
		db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&moduleVideos)

		for _, video := range moduleVideos {
			view := VideoProgressView{
				VideoID:    video.ID,
				VideoTitle: video.Title,
				ModuleID:   module.ID,
			}
			var progress enrollmentModels.VideoProgress
			if err := db.Where("enrollment_id = ? AND video_id = ?", enrollment.ID, video.ID).First(&progress).Error; err == nil {
				view.WatchedDuration = progress.WatchedDuration
				view.IsCompleted = progress.IsCompleted
			}
			videos = append(videos, view)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"course_title":        course.Title,
		"progress_percentage": enrollment.ProgressPercentage,
		"completed_at":        enrollment.CompletedAt,
		"videos":              videos,
	})
}
