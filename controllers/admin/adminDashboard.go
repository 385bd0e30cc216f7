package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// AdminDashboard returns platform-wide totals plus this calendar month's
// signups and enrollments
func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalStudents, totalTeachers int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&totalStudents)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTeacher, false).Count(&totalTeachers)

	var totalCourses, publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)

	var totalEnrollments, pendingRequests int64
	db.Model(&enrollmentModels.Enrollment{}).Count(&totalEnrollments)
	db.Model(&enrollmentModels.EnrollmentRequest{}).Where("status = ?", enrollmentModels.RequestPending).Count(&pendingRequests)

	var completedEnrollments int64
	db.Model(&enrollmentModels.Enrollment{}).Where("progress_percentage = ?", 100).Count(&completedEnrollments)

	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()

	var monthSignups, monthEnrollments int64
	db.Model(&models.User{}).
		Where("created_at BETWEEN ? AND ? AND is_deleted = ?", monthStart, monthEnd, false).
		Count(&monthSignups)
	db.Model(&enrollmentModels.Enrollment{}).
		Where("created_at BETWEEN ? AND ?", monthStart, monthEnd).
		Count(&monthEnrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_students":        totalStudents,
		"total_teachers":        totalTeachers,
		"total_courses":         totalCourses,
		"published_courses":     publishedCourses,
		"total_enrollments":     totalEnrollments,
		"completed_enrollments": completedEnrollments,
		"pending_requests":      pendingRequests,
		"month_signups":         monthSignups,
		"month_enrollments":     monthEnrollments,
	})
}
