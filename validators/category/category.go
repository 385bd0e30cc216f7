package categoryValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CategoryRequest is the validated category payload
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateCategory validates a new-category payload
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Category name is required!"})
		}
		if len(reqData.Name) > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Category name must be at most 100 characters!"})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// UpdateCategory validates a category update on an id param
func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || categoryID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Category ID!", nil)
		}

		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Category name is required!"})
		}

		c.Locals("categoryID", categoryID)
		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// DeleteCategory validates the id param on a category delete
func DeleteCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		categoryID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || categoryID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Category ID!", nil)
		}

		c.Locals("categoryID", categoryID)
		return c.Next()
	}
}
