package enrollmentController

import (
	"errors"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	errRequestNotFound   = errors.New("request not found")
	errNotCourseTeacher  = errors.New("not the course instructor")
	errInvalidTransition = errors.New("invalid status transition")
)

// ListEnrollmentRequests returns all enrollment requests, optionally
// filtered by status. Admin only.
func ListEnrollmentRequests(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&enrollmentModels.EnrollmentRequest{})
	if status, ok := c.Locals("statusFilter").(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []enrollmentModels.EnrollmentRequest
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", decorateRequests(db, requests))
}

// GetCourseRequests returns the enrollment requests for one of the calling
// teacher's courses
func GetCourseRequests(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("slug = ? AND is_deleted = ?", slug, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != user.ID && user.Role != models.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the instructor of this course!", nil)
	}

	query := db.Where("course_id = ?", course.ID)
	if status, ok := c.Locals("statusFilter").(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []enrollmentModels.EnrollmentRequest
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched successfully!", decorateRequests(db, requests))
}

func decorateRequests(db *gorm.DB, requests []enrollmentModels.EnrollmentRequest) interface{} {
	type RequestView struct {
		enrollmentModels.EnrollmentRequest
		StudentName  string `json:"student_name"`
		StudentEmail string `json:"student_email"`
		CourseTitle  string `json:"course_title"`
	}

	result := make([]RequestView, len(requests))
	for i, request := range requests {
		var student models.User
		db.Select("id, name, email").Where("id = ?", request.StudentID).First(&student)

		var course courseModels.Course
		db.Select("id, title").Where("id = ?", request.CourseID).First(&course)

		result[i] = RequestView{
			EnrollmentRequest: request,
			StudentName:       student.Name,
			StudentEmail:      student.Email,
			CourseTitle:       course.Title,
		}
	}
	return result
}

// ApproveEnrollmentRequest approves a pending request and creates the
// matching enrollment. Approving an already approved request is a no-op
// that still guarantees the enrollment exists; approving a rejected
// request is an invalid transition.
func ApproveEnrollmentRequest(c *fiber.Ctx) error {
	return reviewRequest(c, enrollmentModels.RequestApproved)
}

// RejectEnrollmentRequest rejects a pending request. A request that has
// already been approved cannot be rejected.
func RejectEnrollmentRequest(c *fiber.Ctx) error {
	return reviewRequest(c, enrollmentModels.RequestRejected)
}

func reviewRequest(c *fiber.Ctx, decision string) error {
	reviewer, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	requestID := c.Locals("requestID").(int)
	adminNotes, _ := c.Locals("adminNotes").(string)
	db := database.Database.Db

	var request enrollmentModels.EnrollmentRequest
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", requestID).First(&request).Error; err != nil {
			return errRequestNotFound
		}

		var course courseModels.Course
		if err := tx.Where("id = ?", request.CourseID).First(&course).Error; err != nil {
			return errRequestNotFound
		}
		if reviewer.Role != models.RoleAdmin && course.InstructorID != reviewer.ID {
			return errNotCourseTeacher
		}

		// Rejection is terminal; the only repeatable decision is re-approval,
		// which stays idempotent via FirstOrCreate below.
		switch {
		case request.Status == enrollmentModels.RequestRejected:
			return errInvalidTransition
		case request.Status == enrollmentModels.RequestApproved && decision == enrollmentModels.RequestRejected:
			return errInvalidTransition
		}

		now := time.Now()
		request.Status = decision
		request.ReviewedByID = &reviewer.ID
		request.ReviewedAt = &now
		if adminNotes != "" {
			request.AdminNotes = adminNotes
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		if decision == enrollmentModels.RequestApproved {
			// Get-or-create keeps re-approval idempotent: exactly one
			// enrollment per (student, course), backed by the unique index
			enrollment := enrollmentModels.Enrollment{
				StudentID:           request.StudentID,
				CourseID:            request.CourseID,
				EnrollmentRequestID: request.ID,
			}
			if err := tx.Where("student_id = ? AND course_id = ?", request.StudentID, request.CourseID).
				FirstOrCreate(&enrollment).Error; err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case errors.Is(err, errRequestNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment request not found!", nil)
	case errors.Is(err, errNotCourseTeacher):
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not the instructor of this course!", nil)
	case errors.Is(err, errInvalidTransition):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been reviewed!", nil)
	case err != nil:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to review request!", nil)
	}

	go notifyDecision(request)

	message := "Enrollment request approved successfully!"
	if decision == enrollmentModels.RequestRejected {
		message = "Enrollment request rejected successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, request)
}

func notifyDecision(request enrollmentModels.EnrollmentRequest) {
	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ?", request.StudentID).First(&student).Error; err != nil {
		return
	}
	var course courseModels.Course
	if err := db.Where("id = ?", request.CourseID).First(&course).Error; err != nil {
		return
	}

	if request.Status == enrollmentModels.RequestApproved {
		utils.SendEnrollmentApprovedEmail(student.Email, student.Name, course.Title)
	} else {
		utils.SendEnrollmentRejectedEmail(student.Email, student.Name, course.Title, request.AdminNotes)
	}
}
