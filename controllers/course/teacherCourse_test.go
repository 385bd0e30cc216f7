package controllers_test

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

func TestCreateCourse(t *testing.T) {
	app := testutils.SetupApp(t)

	_, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")

	body := map[string]interface{}{
		"title":       "Go For Web Developers",
		"description": "Servers, handlers and deployment",
		"category_id": category.ID,
		"difficulty":  courseModels.DifficultyIntermediate,
		"price":       49.99,
	}

	resp, env := testutils.DoRequest(t, app, "POST", "/teacher/course/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var course courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, "go-for-web-developers", course.Slug)
	assert.False(t, course.IsPublished)
}

func TestCreateCourseDuplicateTitle(t *testing.T) {
	app := testutils.SetupApp(t)

	_, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")

	body := map[string]interface{}{
		"title":       "Go Basics",
		"description": "From zero",
		"category_id": category.ID,
		"difficulty":  courseModels.DifficultyBeginner,
	}

	resp, _ := testutils.DoRequest(t, app, "POST", "/teacher/course/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "POST", "/teacher/course/create", teacherToken, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateCourseRequiresTeacherRole(t *testing.T) {
	app := testutils.SetupApp(t)

	_, studentToken := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	category := testutils.CreateCategory(t, "Programming")

	body := map[string]interface{}{
		"title":       "Sneaky Course",
		"description": "Should not exist",
		"category_id": category.ID,
		"difficulty":  courseModels.DifficultyBeginner,
	}

	resp, _ := testutils.DoRequest(t, app, "POST", "/teacher/course/create", studentToken, body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestOwnershipGuard(t *testing.T) {
	app := testutils.SetupApp(t)

	owner, _ := testutils.CreateUser(t, "Owner", "owner@example.com", models.RoleTeacher)
	_, otherToken := testutils.CreateUser(t, "Other", "other@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")
	testutils.CreateCourse(t, owner, category, "Django 101", false)

	// A missing course is a 404, someone else's course is an explicit 403
	resp, _ := testutils.DoRequest(t, app, "POST", "/teacher/course/no-such-course/publish", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "POST", "/teacher/course/django-101/publish", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishKeepsSlugStable(t *testing.T) {
	app := testutils.SetupApp(t)

	_, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")

	body := map[string]interface{}{
		"title":       "Go Basics",
		"description": "From zero",
		"category_id": category.ID,
		"difficulty":  courseModels.DifficultyBeginner,
	}
	resp, _ := testutils.DoRequest(t, app, "POST", "/teacher/course/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = testutils.DoRequest(t, app, "POST", "/teacher/course/go-basics/publish", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Renaming a published course must not change its slug
	body["title"] = "Go Basics Revamped"
	resp, env := testutils.DoRequest(t, app, "PUT", "/teacher/course/go-basics", teacherToken, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var course courseModels.Course
	require.NoError(t, json.Unmarshal(env.Data, &course))
	assert.Equal(t, "Go Basics Revamped", course.Title)
	assert.Equal(t, "go-basics", course.Slug)
}

func TestDeleteCourseIsSoft(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")
	course := testutils.CreateCourse(t, teacher, category, "Django 101", true)

	resp, _ := testutils.DoRequest(t, app, "DELETE", "/teacher/course/django-101", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stored courseModels.Course
	require.NoError(t, database.Database.Db.First(&stored, course.ID).Error)
	assert.True(t, stored.IsDeleted)
}

func TestTeacherDashboardAndStudents(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	student, _ := testutils.CreateUser(t, "Student", "student@example.com", models.RoleStudent)
	category := testutils.CreateCategory(t, "Programming")
	course := testutils.CreateCourse(t, teacher, category, "Django 101", true)
	module := testutils.CreateModule(t, course, "Basics", 1)
	testutils.CreateVideo(t, module, "Intro", 1, true)
	testutils.CreateVideo(t, module, "Setup", 2, false)
	testutils.Enroll(t, student, course)

	resp, env := testutils.DoRequest(t, app, "GET", "/teacher/course/dashboard", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dashboard struct {
		TotalCourses    int64 `json:"total_courses"`
		TotalStudents   int64 `json:"total_students"`
		PendingRequests int64 `json:"pending_requests"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &dashboard))
	assert.Equal(t, int64(1), dashboard.TotalCourses)
	assert.Equal(t, int64(1), dashboard.TotalStudents)
	assert.Equal(t, int64(0), dashboard.PendingRequests)

	resp, env = testutils.DoRequest(t, app, "GET", "/teacher/course/django-101/students", teacherToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Students []struct {
			StudentName   string `json:"student_name"`
			VideosWatched int    `json:"videos_watched"`
			TotalVideos   int    `json:"total_videos"`
		} `json:"students"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Students, 1)
	assert.Equal(t, "Student", result.Students[0].StudentName)
	assert.Equal(t, 2, result.Students[0].TotalVideos)
	assert.Equal(t, 0, result.Students[0].VideosWatched)
}

func TestModuleAndVideoAuthoring(t *testing.T) {
	app := testutils.SetupApp(t)

	_, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")

	body := map[string]interface{}{
		"title":       "Go Basics",
		"description": "From zero",
		"category_id": category.ID,
		"difficulty":  courseModels.DifficultyBeginner,
	}
	resp, _ := testutils.DoRequest(t, app, "POST", "/teacher/course/create", teacherToken, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, env := testutils.DoRequest(t, app, "POST", "/teacher/course/go-basics/module", teacherToken,
		map[string]interface{}{"title": "Week One", "order_index": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var module courseModels.Module
	require.NoError(t, json.Unmarshal(env.Data, &module))

	resp, env = testutils.DoRequest(t, app, "POST", "/teacher/module/1/video", teacherToken,
		map[string]interface{}{"title": "Hello World", "video_url": "https://videos.example.com/hello.mp4", "duration_minutes": 12, "order_index": 1, "is_free": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var video courseModels.Video
	require.NoError(t, json.Unmarshal(env.Data, &video))
	assert.Equal(t, module.ID, video.ModuleID)
	assert.True(t, video.IsFree)
}

func TestUpdateVideoPartialKeepsFreeFlag(t *testing.T) {
	app := testutils.SetupApp(t)

	teacher, teacherToken := testutils.CreateUser(t, "Teacher", "teacher@example.com", models.RoleTeacher)
	category := testutils.CreateCategory(t, "Programming")
	course := testutils.CreateCourse(t, teacher, category, "Go Basics", true)
	module := testutils.CreateModule(t, course, "Week One", 1)
	video := testutils.CreateVideo(t, module, "Hello World", 1, true)

	// A rename alone must not touch the free-preview flag
	resp, env := testutils.DoRequest(t, app, "PUT", "/teacher/video/"+itoa(video.ID), teacherToken,
		map[string]interface{}{"title": "Hello, World!"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated courseModels.Video
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Hello, World!", updated.Title)
	assert.True(t, updated.IsFree)

	// An explicit false still flips it
	resp, env = testutils.DoRequest(t, app, "PUT", "/teacher/video/"+itoa(video.ID), teacherToken,
		map[string]interface{}{"is_free": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.False(t, updated.IsFree)
}
