package userValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ProfileUpdateRequest is the validated profile update payload. Role and
// email are deliberately absent: neither is editable after signup.
type ProfileUpdateRequest struct {
	Name         string `json:"name"`
	Mobile       string `json:"mobile"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
	DateOfBirth  string `json:"date_of_birth"` // YYYY-MM-DD

	// Student profile fields
	EducationLevel string `json:"education_level"`
	Interests      string `json:"interests"`

	// Teacher profile fields
	Specialization  string `json:"specialization"`
	ExperienceYears *int   `json:"experience_years"`
	Qualifications  string `json:"qualifications"`
}

// UpdateProfile validates a profile update
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ProfileUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)

		if reqData.Name != "" && len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		if reqData.ExperienceYears != nil && *reqData.ExperienceYears < 0 {
			errors["experience_years"] = "Experience years cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedProfile", reqData)
		return c.Next()
	}
}
