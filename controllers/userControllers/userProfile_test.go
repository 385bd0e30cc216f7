package userController_test

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

func TestGetProfile(t *testing.T) {
	app := testutils.SetupApp(t)

	user, token := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	profile := models.StudentProfile{UserID: user.ID, StudentID: "STU-ABCD1234", EducationLevel: "Graduate"}
	require.NoError(t, database.Database.Db.Create(&profile).Error)

	resp, env := testutils.DoRequest(t, app, "GET", "/user/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		User           models.User            `json:"user"`
		StudentProfile *models.StudentProfile `json:"student_profile"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "student@example.com", result.User.Email)
	assert.Empty(t, result.User.Password)
	require.NotNil(t, result.StudentProfile)
	assert.Equal(t, "STU-ABCD1234", result.StudentProfile.StudentID)
}

func TestUpdateProfile(t *testing.T) {
	app := testutils.SetupApp(t)

	user, token := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, env := testutils.DoRequest(t, app, "PUT", "/user/profile", token, map[string]string{
		"name":          "Renamed Student",
		"bio":           "Learning things",
		"date_of_birth": "2000-05-20",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.User
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed Student", updated.Name)
	assert.Equal(t, "Learning things", updated.Bio)
	require.NotNil(t, updated.DateOfBirth)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, user.ID).Error)
	assert.Equal(t, "Renamed Student", stored.Name)
	assert.Equal(t, models.RoleStudent, stored.Role, "role never changes through profile updates")
}

func TestUpdateProfileBadDate(t *testing.T) {
	app := testutils.SetupApp(t)

	_, token := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, _ := testutils.DoRequest(t, app, "PUT", "/user/profile", token,
		map[string]string{"date_of_birth": "20-05-2000"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
