package authController_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"lms/database"
	"lms/models"
	"lms/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupStudent(t *testing.T) {
	app := testutils.SetupApp(t)

	body := map[string]interface{}{
		"name":            "New Student",
		"email":           "new@example.com",
		"mobile":          "9876543210",
		"password":        "password123",
		"education_level": "Undergraduate",
	}

	resp, env := testutils.DoRequest(t, app, "POST", "/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, models.RoleStudent, user.Role, "role defaults to student")

	var profile models.StudentProfile
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.NotEmpty(t, profile.StudentID)
	assert.Equal(t, "Undergraduate", profile.EducationLevel)
}

func TestSignupTeacher(t *testing.T) {
	app := testutils.SetupApp(t)

	body := map[string]interface{}{
		"name":           "New Teacher",
		"email":          "teach@example.com",
		"mobile":         "9876543211",
		"password":       "password123",
		"role":           models.RoleTeacher,
		"specialization": "Web Development",
	}

	resp, env := testutils.DoRequest(t, app, "POST", "/auth/signup", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, models.RoleTeacher, user.Role)

	var profile models.TeacherProfile
	require.NoError(t, database.Database.Db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "Web Development", profile.Specialization)
}

func TestSignupRejectsAdminRole(t *testing.T) {
	app := testutils.SetupApp(t)

	body := map[string]interface{}{
		"name":     "Wannabe Admin",
		"email":    "admin@example.com",
		"mobile":   "9876543212",
		"password": "password123",
		"role":     models.RoleAdmin,
	}

	resp, _ := testutils.DoRequest(t, app, "POST", "/auth/signup", "", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	app := testutils.SetupApp(t)

	testutils.CreateUser(t, "Existing", "taken@example.com", models.RoleStudent)

	body := map[string]interface{}{
		"name":     "Someone Else",
		"email":    "taken@example.com",
		"mobile":   "9111111111",
		"password": "password123",
	}

	resp, _ := testutils.DoRequest(t, app, "POST", "/auth/signup", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	app := testutils.SetupApp(t)

	testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, env := testutils.DoRequest(t, app, "POST", "/auth/login", "",
		map[string]string{"email": "student@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "student@example.com", result.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	app := testutils.SetupApp(t)

	testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, _ := testutils.DoRequest(t, app, "POST", "/auth/login", "",
		map[string]string{"email": "student@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginBlocksAfterRepeatedFailures(t *testing.T) {
	app := testutils.SetupApp(t)

	testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	for i := 0; i < 5; i++ {
		testutils.DoRequest(t, app, "POST", "/auth/login", "",
			map[string]string{"email": "student@example.com", "password": "wrong"})
	}

	// Even the right password is refused while the account is blocked
	resp, _ := testutils.DoRequest(t, app, "POST", "/auth/login", "",
		map[string]string{"email": "student@example.com", "password": "password123"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestChangePassword(t *testing.T) {
	app := testutils.SetupApp(t)

	_, token := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, _ := testutils.DoRequest(t, app, "PUT", "/auth/change/password", token,
		map[string]string{"old_password": "password123", "new_password": "newpassword456"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "POST", "/auth/login", "",
		map[string]string{"email": "student@example.com", "password": "newpassword456"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "POST", "/auth/login", "",
		map[string]string{"email": "student@example.com", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
