package userController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	userValidator "lms/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// GetProfile returns the caller's user record with its role profile
func GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db
	user.Password = ""

	response := fiber.Map{"user": user}

	switch user.Role {
	case models.RoleStudent:
		var profile models.StudentProfile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["student_profile"] = profile
		}
	case models.RoleTeacher:
		var profile models.TeacherProfile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["teacher_profile"] = profile
		}
	case models.RoleAdmin:
		// Admins carry no extra profile row
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", response)
}

// UpdateProfile updates the caller's basic fields and role profile.
// The role tag itself is immutable after signup.
func UpdateProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedProfile").(*userValidator.ProfileUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Mobile != "" {
		user.Mobile = reqData.Mobile
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}
	if reqData.ProfileImage != "" {
		user.ProfileImage = reqData.ProfileImage
	}
	if reqData.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", reqData.DateOfBirth)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Date of birth must be YYYY-MM-DD!", nil)
		}
		user.DateOfBirth = &dob
	}

	if err := db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	switch user.Role {
	case models.RoleStudent:
		var profile models.StudentProfile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			if reqData.EducationLevel != "" {
				profile.EducationLevel = reqData.EducationLevel
			}
			if reqData.Interests != "" {
				profile.Interests = reqData.Interests
			}
			db.Save(&profile)
		}
	case models.RoleTeacher:
		var profile models.TeacherProfile
		if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			if reqData.Specialization != "" {
				profile.Specialization = reqData.Specialization
			}
			if reqData.ExperienceYears != nil {
				profile.ExperienceYears = *reqData.ExperienceYears
			}
			if reqData.Qualifications != "" {
				profile.Qualifications = reqData.Qualifications
			}
			db.Save(&profile)
		}
	case models.RoleAdmin:
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", user)
}
