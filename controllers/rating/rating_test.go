package ratingController_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"lms/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupPublishedCourse(t *testing.T) courseModels.Course {
	t.Helper()

	teacher, _ := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")
	return testutils.CreateCourse(t, teacher, category, "Django 101", true)
}

func TestSubmitRatingRequiresEnrollment(t *testing.T) {
	app := testutils.SetupApp(t)

	setupPublishedCourse(t)
	_, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, _ := testutils.DoRequest(t, app, "POST", "/course/django-101/rate", studentToken,
		map[string]interface{}{"score": 5, "review": "Great"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSubmitRating(t *testing.T) {
	app := testutils.SetupApp(t)

	course := setupPublishedCourse(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	testutils.Enroll(t, student, course)

	resp, env := testutils.DoRequest(t, app, "POST", "/course/django-101/rate", studentToken,
		map[string]interface{}{"score": 4, "review": "Solid intro"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rating models.Rating
	require.NoError(t, json.Unmarshal(env.Data, &rating))
	assert.Equal(t, 4, rating.Score)
	assert.Equal(t, "Solid intro", rating.Review)
}

func TestSubmitRatingOnlyOnce(t *testing.T) {
	app := testutils.SetupApp(t)

	course := setupPublishedCourse(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	testutils.Enroll(t, student, course)

	resp, _ := testutils.DoRequest(t, app, "POST", "/course/django-101/rate", studentToken,
		map[string]interface{}{"score": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Ratings are write-once, a second attempt conflicts
	resp, _ = testutils.DoRequest(t, app, "POST", "/course/django-101/rate", studentToken,
		map[string]interface{}{"score": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDuplicateRatingInsertIsTranslated(t *testing.T) {
	testutils.SetupApp(t)

	course := setupPublishedCourse(t)
	student, _ := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	testutils.Enroll(t, student, course)

	db := database.Database.Db
	require.NoError(t, db.Create(&models.Rating{StudentID: student.ID, CourseID: course.ID, Score: 5}).Error)

	// A racing insert past the existence check must surface as a duplicate,
	// not an opaque driver error, so the handler can answer 409 instead of 500
	err := db.Create(&models.Rating{StudentID: student.ID, CourseID: course.ID, Score: 1}).Error
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey))
}

func TestSubmitRatingScoreBounds(t *testing.T) {
	app := testutils.SetupApp(t)

	course := setupPublishedCourse(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	testutils.Enroll(t, student, course)

	for _, score := range []int{0, 6, -1} {
		resp, _ := testutils.DoRequest(t, app, "POST", "/course/django-101/rate", studentToken,
			map[string]interface{}{"score": score})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	}
}

func TestGetCourseRatingsAverage(t *testing.T) {
	app := testutils.SetupApp(t)

	course := setupPublishedCourse(t)

	studentOne, tokenOne := testutils.CreateUser(t, "Student One", "one@example.com", models.RoleStudent)
	studentTwo, tokenTwo := testutils.CreateUser(t, "Student Two", "two@example.com", models.RoleStudent)
	testutils.Enroll(t, studentOne, course)
	testutils.Enroll(t, studentTwo, course)

	testutils.DoRequest(t, app, "POST", "/course/django-101/rate", tokenOne, map[string]interface{}{"score": 5})
	testutils.DoRequest(t, app, "POST", "/course/django-101/rate", tokenTwo, map[string]interface{}{"score": 4})

	resp, env := testutils.DoRequest(t, app, "GET", "/course/django-101/ratings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Ratings []struct {
			Score       int    `json:"score"`
			StudentName string `json:"student_name"`
		} `json:"ratings"`
		AverageRating float64 `json:"average_rating"`
		Total         int64   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(2), result.Total)
	assert.InDelta(t, 4.5, result.AverageRating, 0.001)
	require.Len(t, result.Ratings, 2)
}

func TestGetCourseRatingsEmptyDefaultsToZero(t *testing.T) {
	app := testutils.SetupApp(t)

	setupPublishedCourse(t)

	resp, env := testutils.DoRequest(t, app, "GET", "/course/django-101/ratings", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		AverageRating float64 `json:"average_rating"`
		Total         int64   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, float64(0), result.AverageRating)
	assert.Equal(t, int64(0), result.Total)
}
