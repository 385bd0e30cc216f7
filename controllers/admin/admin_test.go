package adminController_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDashboardStats(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher, _ := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	student, _ := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	_, adminToken := testutils.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	category := testutils.CreateCategory(t, "Programming")
	course := testutils.CreateCourse(t, teacher, category, "Django 101", true)
	testutils.CreateCourse(t, teacher, category, "Draft", false)
	testutils.Enroll(t, student, course)

	resp, env := testutils.DoRequest(t, app, "GET", "/admin/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		TotalStudents    int64 `json:"total_students"`
		TotalTeachers    int64 `json:"total_teachers"`
		TotalCourses     int64 `json:"total_courses"`
		PublishedCourses int64 `json:"published_courses"`
		TotalEnrollments int64 `json:"total_enrollments"`
		MonthEnrollments int64 `json:"month_enrollments"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, int64(1), stats.TotalStudents)
	assert.Equal(t, int64(1), stats.TotalTeachers)
	assert.Equal(t, int64(2), stats.TotalCourses)
	assert.Equal(t, int64(1), stats.PublishedCourses)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
	assert.Equal(t, int64(1), stats.MonthEnrollments)
}

func TestAdminDashboardRequiresAdmin(t *testing.T) {
	app := testutils.SetupApp(t)

	_, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)

	resp, _ := testutils.DoRequest(t, app, "GET", "/admin/dashboard/stats", teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCategoryCRUD(t *testing.T) {
	app := testutils.SetupApp(t)

	_, adminToken := testutils.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)

	resp, env := testutils.DoRequest(t, app, "POST", "/admin/category", adminToken,
		map[string]string{"name": "Design", "description": "Visual design courses"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var category courseModels.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))

	// Duplicate name conflicts
	resp, _ = testutils.DoRequest(t, app, "POST", "/admin/category", adminToken,
		map[string]string{"name": "Design"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "PUT", "/admin/category/1", adminToken,
		map[string]string{"name": "UI Design"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "DELETE", "/admin/category/1", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored courseModels.Category
	require.NoError(t, database.Database.Db.First(&stored, category.ID).Error)
	assert.True(t, stored.IsDeleted)
}

func TestDeleteCategoryWithCoursesConflicts(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher, _ := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	_, adminToken := testutils.CreateUser(t, "Admin", "admin@example.com", models.RoleAdmin)
	category := testutils.CreateCategory(t, "Programming")
	testutils.CreateCourse(t, teacher, category, "Django 101", true)

	resp, _ := testutils.DoRequest(t, app, "DELETE", "/admin/category/1", adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
