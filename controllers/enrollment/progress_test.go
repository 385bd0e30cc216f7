package enrollmentController_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	"lms/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCourseWithVideos(t *testing.T) (courseModels.Course, []courseModels.Video) {
	t.Helper()

	teacher, _ := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")
	course := testutils.CreateCourse(t, teacher, category, "Django 101", true)
	module := testutils.CreateModule(t, course, "Getting Started", 1)

	videos := []courseModels.Video{
		testutils.CreateVideo(t, module, "Intro", 1, true),
		testutils.CreateVideo(t, module, "Setup", 2, false),
		testutils.CreateVideo(t, module, "Models", 3, false),
	}
	return course, videos
}

func TestRecordProgressRequiresEnrollment(t *testing.T) {
	app := testutils.SetupApp(t)

	_, videos := setupCourseWithVideos(t)
	_, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	body := map[string]interface{}{"watched_seconds": 60, "completed": false}
	resp, _ := testutils.DoRequest(t, app, "POST", "/video/"+itoa(videos[1].ID)+"/progress", studentToken, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProgressPercentageIntegerMath(t *testing.T) {
	app := testutils.SetupApp(t)

	course, _ := setupCourseWithVideos(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	enrollment := testutils.Enroll(t, student, course)

	// One of three videos completed rounds down to 33
	body := map[string]interface{}{"watched_seconds": 600, "completed": true}
	resp, env := testutils.DoRequest(t, app, "POST", "/video/1/progress", studentToken, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		ProgressPercentage int `json:"progress_percentage"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 33, result.ProgressPercentage)

	var stored enrollmentModels.Enrollment
	require.NoError(t, database.Database.Db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 33, stored.ProgressPercentage)
	assert.Nil(t, stored.CompletedAt)
}

func TestProgressMonotonicAndLatching(t *testing.T) {
	app := testutils.SetupApp(t)

	course, _ := setupCourseWithVideos(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	enrollment := testutils.Enroll(t, student, course)

	testutils.DoRequest(t, app, "POST", "/video/1/progress", studentToken,
		map[string]interface{}{"watched_seconds": 300, "completed": true})

	// A later report with fewer seconds and completed=false must not
	// roll anything back
	resp, _ := testutils.DoRequest(t, app, "POST", "/video/1/progress", studentToken,
		map[string]interface{}{"watched_seconds": 100, "completed": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var progress enrollmentModels.VideoProgress
	require.NoError(t, database.Database.Db.
		Where("enrollment_id = ? AND video_id = ?", enrollment.ID, 1).
		First(&progress).Error)
	assert.Equal(t, 300, progress.WatchedDuration)
	assert.True(t, progress.IsCompleted)
}

func TestCourseCompletionSetsCompletedAtOnce(t *testing.T) {
	app := testutils.SetupApp(t)

	course, videos := setupCourseWithVideos(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	enrollment := testutils.Enroll(t, student, course)

	for _, video := range videos {
		path := "/video/" + itoa(video.ID) + "/progress"
		resp, _ := testutils.DoRequest(t, app, "POST", path, studentToken,
			map[string]interface{}{"watched_seconds": 600, "completed": true})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var stored enrollmentModels.Enrollment
	require.NoError(t, database.Database.Db.First(&stored, enrollment.ID).Error)
	assert.Equal(t, 100, stored.ProgressPercentage)
	require.NotNil(t, stored.CompletedAt)
	firstCompletion := *stored.CompletedAt

	// Re-reporting a finished video keeps the original completion time
	testutils.DoRequest(t, app, "POST", "/video/"+itoa(videos[0].ID)+"/progress", studentToken,
		map[string]interface{}{"watched_seconds": 700, "completed": true})

	require.NoError(t, database.Database.Db.First(&stored, enrollment.ID).Error)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, firstCompletion.Unix(), stored.CompletedAt.Unix())
}

func TestGetCourseProgress(t *testing.T) {
	app := testutils.SetupApp(t)

	course, videos := setupCourseWithVideos(t)
	student, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	testutils.Enroll(t, student, course)

	testutils.DoRequest(t, app, "POST", "/video/"+itoa(videos[0].ID)+"/progress", studentToken,
		map[string]interface{}{"watched_seconds": 120, "completed": true})

	resp, env := testutils.DoRequest(t, app, "GET", "/course/django-101/progress", studentToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		CourseTitle        string `json:"course_title"`
		ProgressPercentage int    `json:"progress_percentage"`
		Videos             []struct {
			VideoID     uint `json:"video_id"`
			IsCompleted bool `json:"is_completed"`
		} `json:"videos"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "Django 101", result.CourseTitle)
	assert.Equal(t, 33, result.ProgressPercentage)
	require.Len(t, result.Videos, 3)
	assert.True(t, result.Videos[0].IsCompleted)
	assert.False(t, result.Videos[1].IsCompleted)
}

func TestGetCourseProgressNotEnrolled(t *testing.T) {
	app := testutils.SetupApp(t)

	setupCourseWithVideos(t)
	_, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)

	resp, _ := testutils.DoRequest(t, app, "GET", "/course/django-101/progress", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
