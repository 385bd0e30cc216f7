package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"

	"github.com/gofiber/fiber/v2"
)

// WatchVideo serves the playback payload for one video. Free-preview
// videos are open to any signed-in user; everything else requires an
// approved enrollment on the course.
func WatchVideo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	videoID := c.Locals("videoID").(int)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_published = ? AND is_deleted = ?", slug, true, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var video courseModels.Video
	err := db.
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("videos.id = ? AND videos.is_deleted = ? AND modules.course_id = ? AND modules.is_deleted = ?",
			videoID, false, course.ID, false).
		First(&video).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	enrolled := hasApprovedEnrollment(db, user.ID, course.ID)
	isInstructor := course.InstructorID == user.ID
	if !video.IsFree && !enrolled && !isInstructor {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must be enrolled to watch this video!", nil)
	}

	// Course play order: modules by order index, then videos within each
	var orderedVideos []courseModels.Video
	db.
		Joins("JOIN modules ON modules.id = videos.module_id").
		Where("modules.course_id = ? AND modules.is_deleted = ? AND videos.is_deleted = ?", course.ID, false, false).
		Order("modules.order_index asc, videos.order_index asc, videos.id asc").
		Find(&orderedVideos)

	type VideoRef struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	var prev, next *VideoRef
	for i, v := range orderedVideos {
		if v.ID != video.ID {
			continue
		}
		if i > 0 {
			prev = &VideoRef{ID: orderedVideos[i-1].ID, Title: orderedVideos[i-1].Title}
		}
		if i < len(orderedVideos)-1 {
			next = &VideoRef{ID: orderedVideos[i+1].ID, Title: orderedVideos[i+1].Title}
		}
		break
	}

	response := fiber.Map{
		"course_title": course.Title,
		"course_slug":  course.Slug,
		"video": fiber.Map{
			"id":               video.ID,
			"title":            video.Title,
			"description":      video.Description,
			"video_url":        video.VideoURL,
			"duration_minutes": video.DurationMinutes,
			"is_free":          video.IsFree,
		},
		"previous": prev,
		"next":     next,
	}

	if enrolled {
		var enrollment enrollmentModels.Enrollment
		err := db.
			Joins("JOIN enrollment_requests ON enrollment_requests.id = enrollments.enrollment_request_id").
			Where("enrollments.student_id = ? AND enrollments.course_id = ? AND enrollment_requests.status = ?",
				user.ID, course.ID, enrollmentModels.RequestApproved).
			First(&enrollment).Error
		if err == nil {
			var progress enrollmentModels.VideoProgress
			if err := db.Where("enrollment_id = ? AND video_id = ?", enrollment.ID, video.ID).First(&progress).Error; err == nil {
				response["saved_progress"] = fiber.Map{
					"watched_duration": progress.WatchedDuration,
					"is_completed":     progress.IsCompleted,
				}
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video fetched successfully!", response)
}
