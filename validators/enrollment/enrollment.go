package enrollmentValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	enrollmentModels "lms/models/enrollment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// EnrollmentRequestBody is the validated enroll-request payload
type EnrollmentRequestBody struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Message     string `json:"message"`
}

// SubmitRequest validates an enrollment request submission
func SubmitRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		reqData := new(EnrollmentRequestBody)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.PhoneNumber = strings.TrimSpace(reqData.PhoneNumber)
		reqData.Email = strings.TrimSpace(reqData.Email)

		if reqData.PhoneNumber == "" {
			errors["phone_number"] = "Phone number is required!"
		} else if validate.Var(reqData.PhoneNumber, "numeric,min=7,max=15") != nil {
			errors["phone_number"] = "Invalid phone number!"
		}

		if validate.Var(reqData.Email, "required,email") != nil {
			errors["email"] = "Invalid email!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseSlug", slug)
		c.Locals("validatedEnrollmentRequest", reqData)
		return c.Next()
	}
}

// ReviewRequest validates an approve/reject action on a request id
func ReviewRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		requestID, err := strconv.Atoi(idStr)
		if err != nil || requestID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Request ID!", nil)
		}

		reqData := new(struct {
			AdminNotes string `json:"admin_notes"`
		})
		// Body is optional on review actions
		_ = c.BodyParser(reqData)

		c.Locals("requestID", requestID)
		c.Locals("adminNotes", strings.TrimSpace(reqData.AdminNotes))
		return c.Next()
	}
}

// ListRequests validates the admin request-list status filter
func ListRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
		if status != "" {
			switch status {
			case enrollmentModels.RequestPending, enrollmentModels.RequestApproved, enrollmentModels.RequestRejected:
			default:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Status must be PENDING, APPROVED, or REJECTED!", nil)
			}
		}

		c.Locals("statusFilter", status)
		return c.Next()
	}
}

// RecordProgress validates a watch-progress update on a video id
func RecordProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		videoID, err := strconv.Atoi(idStr)
		if err != nil || videoID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		reqData := new(struct {
			WatchedSeconds int  `json:"watched_seconds"`
			Completed      bool `json:"completed"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.WatchedSeconds < 0 {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Watched seconds cannot be negative!", nil)
		}

		c.Locals("videoID", videoID)
		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}
