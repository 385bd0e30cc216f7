package authValidator

import (
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Helper to validate email format
func isValidEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

// Helper to validate mobile number format
func isValidMobile(mobile string) bool {
	return validate.Var(mobile, "required,numeric,len=10") == nil
}

// SignupRequest is the validated signup payload
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// Student profile fields
	EducationLevel string `json:"education_level"`
	Interests      string `json:"interests"`

	// Teacher profile fields
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years"`
	Qualifications  string `json:"qualifications"`
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignupRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Name = strings.TrimSpace(reqData.Name)
		reqData.Role = strings.ToUpper(strings.TrimSpace(reqData.Role))

		// Validate Name
		if len(reqData.Name) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}

		// Validate Email
		if !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		// Validate Mobile (optional)
		if reqData.Mobile != "" && !isValidMobile(reqData.Mobile) {
			errors["mobile"] = "Invalid mobile number!"
		}

		// Validate Password
		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Validate Role (admins are seeded, never self-registered)
		if reqData.Role == "" {
			reqData.Role = models.RoleStudent
		} else if reqData.Role != models.RoleStudent && reqData.Role != models.RoleTeacher {
			errors["role"] = "Role must be STUDENT or TEACHER!"
		}

		// Teacher accounts need a specialization
		if reqData.Role == models.RoleTeacher && strings.TrimSpace(reqData.Specialization) == "" {
			errors["specialization"] = "Specialization is required for teacher accounts!"
		}

		// Respond with errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Pass validated payload to the next middleware
		c.Locals("validatedSignup", reqData)
		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Password == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OldPassword string `json:"old_password"`
			NewPassword string `json:"new_password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.OldPassword == "" {
			errors["old_password"] = "Old password is required!"
		}

		if len(strings.TrimSpace(reqData.NewPassword)) < 8 {
			errors["new_password"] = "New password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}
