package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	enrollmentModels "lms/models/enrollment"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	userRoutes "lms/routers/userRoutes"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupApp builds a fiber app backed by a fresh in-memory database with
// all routes mounted. Each call gets its own database.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	// A named shared-cache database keeps gorm's pooled connections on the
	// same in-memory store
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupTeacherCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	return app
}

// CreateUser inserts a user with the given role and returns it with a
// signed token
func CreateUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Mobile:   "9876543210",
		Role:     role,
		Password: string(hashed),
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return user, token
}

// CreateCategory inserts a category
func CreateCategory(t *testing.T, name string) courseModels.Category {
	t.Helper()

	category := courseModels.Category{Name: name}
	if err := database.Database.Db.Create(&category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// CreateCourse inserts a course owned by the instructor
func CreateCourse(t *testing.T, instructor models.User, category courseModels.Category, title string, published bool) courseModels.Course {
	t.Helper()

	course := courseModels.Course{
		Title:        title,
		Slug:         utils.Slugify(title),
		Description:  "A course about " + title,
		InstructorID: instructor.ID,
		CategoryID:   category.ID,
		Difficulty:   courseModels.DifficultyBeginner,
		IsPublished:  published,
	}
	if err := database.Database.Db.Create(&course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course
}

// CreateModule inserts a module on the course
func CreateModule(t *testing.T, course courseModels.Course, title string, order int) courseModels.Module {
	t.Helper()

	module := courseModels.Module{CourseID: course.ID, Title: title, OrderIndex: order}
	if err := database.Database.Db.Create(&module).Error; err != nil {
		t.Fatalf("failed to create module: %v", err)
	}
	return module
}

// CreateVideo inserts a video on the module
func CreateVideo(t *testing.T, module courseModels.Module, title string, order int, free bool) courseModels.Video {
	t.Helper()

	video := courseModels.Video{
		ModuleID:        module.ID,
		Title:           title,
		VideoURL:        "https://videos.example.com/" + utils.Slugify(title) + ".mp4",
		DurationMinutes: 10,
		OrderIndex:      order,
		IsFree:          free,
	}
	if err := database.Database.Db.Create(&video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}
	return video
}

// Enroll approves an enrollment for the student on the course, creating
// the request and enrollment rows directly
func Enroll(t *testing.T, student models.User, course courseModels.Course) enrollmentModels.Enrollment {
	t.Helper()
	db := database.Database.Db

	request := enrollmentModels.EnrollmentRequest{
		StudentID:   student.ID,
		CourseID:    course.ID,
		Status:      enrollmentModels.RequestApproved,
		PhoneNumber: "9876543210",
		Email:       student.Email,
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("failed to create enrollment request: %v", err)
	}

	enrollment := enrollmentModels.Enrollment{
		StudentID:           student.ID,
		CourseID:            course.ID,
		EnrollmentRequestID: request.ID,
	}
	if err := db.Create(&enrollment).Error; err != nil {
		t.Fatalf("failed to create enrollment: %v", err)
	}
	return enrollment
}

// Envelope mirrors the JSON response wrapper
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DoRequest performs a JSON request against the app and decodes the
// response envelope
func DoRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, envelope
}
