package adminController

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	categoryValidator "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory adds a course category. Names are unique among
// non-deleted categories.
func CreateCategory(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	db := database.Database.Db

	var existing courseModels.Category
	if err := db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := courseModels.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// UpdateCategory renames a category
func UpdateCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)
	reqData := c.Locals("validatedCategory").(*categoryValidator.CategoryRequest)
	db := database.Database.Db

	var category courseModels.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var duplicate courseModels.Category
	if err := db.Where("name = ? AND is_deleted = ? AND id != ?", reqData.Name, false, category.ID).First(&duplicate).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category.Name = reqData.Name
	category.Description = reqData.Description
	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

// DeleteCategory soft deletes a category that has no courses left on it
func DeleteCategory(c *fiber.Ctx) error {
	categoryID := c.Locals("categoryID").(int)
	db := database.Database.Db

	var category courseModels.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	var courseCount int64
	db.Model(&courseModels.Course{}).Where("category_id = ? AND is_deleted = ?", category.ID, false).Count(&courseCount)
	if courseCount > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category still has courses assigned to it!", nil)
	}

	category.IsDeleted = true
	if err := db.Save(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
