package ratingValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// RatingRequest is the validated rating payload
type RatingRequest struct {
	Score  int    `json:"score"`
	Review string `json:"review"`
}

// SubmitRating validates a rating submission on a course slug
func SubmitRating() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		reqData := new(RatingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score < 1 || reqData.Score > 5 {
			errors["score"] = "Score must be between 1 and 5!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseSlug", slug)
		c.Locals("validatedRating", reqData)
		return c.Next()
	}
}
