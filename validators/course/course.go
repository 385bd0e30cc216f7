package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

var validDifficulties = map[string]bool{
	courseModels.DifficultyBeginner:     true,
	courseModels.DifficultyIntermediate: true,
	courseModels.DifficultyAdvanced:     true,
}

// CourseRequest is the validated course create/update payload
type CourseRequest struct {
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	ShortDescription string  `json:"short_description"`
	CategoryID       uint    `json:"category_id"`
	Price            float64 `json:"price"`
	Difficulty       string  `json:"difficulty"`
	DurationWeeks    int     `json:"duration_weeks"`
	ThumbnailURL     string  `json:"thumbnail_url"`
}

// ============ Course Validators ============

// CreateCourse validates teacher course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Difficulty = strings.ToUpper(strings.TrimSpace(reqData.Difficulty))

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description == "" {
			errors["description"] = "Description is required!"
		} else if len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if reqData.Difficulty == "" {
			reqData.Difficulty = courseModels.DifficultyBeginner
		} else if !validDifficulties[reqData.Difficulty] {
			errors["difficulty"] = "Difficulty must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if reqData.DurationWeeks < 0 {
			errors["duration_weeks"] = "Duration must be a positive number!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates teacher course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Description = strings.TrimSpace(reqData.Description)
		reqData.Difficulty = strings.ToUpper(strings.TrimSpace(reqData.Difficulty))

		if reqData.Title != "" && len(reqData.Title) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Description != "" && len(reqData.Description) < 5 {
			errors["description"] = "Description must be at least 5 characters long!"
		}

		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if reqData.Difficulty != "" && !validDifficulties[reqData.Difficulty] {
			errors["difficulty"] = "Difficulty must be BEGINNER, INTERMEDIATE, or ADVANCED!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseSlug", slug)
		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseSlug validates routes that only carry a course slug
func CourseSlug() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		c.Locals("courseSlug", slug)
		return c.Next()
	}
}

// CourseList validates catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		difficulty := strings.ToUpper(strings.TrimSpace(c.Query("difficulty")))
		if difficulty != "" && !validDifficulties[difficulty] {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid difficulty filter!", nil)
		}

		c.Locals("difficultyFilter", difficulty)
		return c.Next()
	}
}

// ============ Module Validators ============

// ModuleRequest is the validated module create/update payload
type ModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

// CreateModule validates module creation under a course slug
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseSlug", slug)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update by module id
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		c.Locals("moduleID", moduleID)
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// ============ Video Validators ============

// VideoRequest is the validated video create/update payload. IsFree is a
// pointer so a partial update can leave a free preview alone.
type VideoRequest struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
	OrderIndex      int    `json:"order_index"`
	IsFree          *bool  `json:"is_free"`
}

// CreateVideo validates video creation under a module id
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		reqData := new(VideoRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleID", moduleID)
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// UpdateVideo validates video update by video id
func UpdateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		reqData := new(VideoRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		c.Locals("videoID", videoID)
		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// DeleteModule validates module deletion by module id
func DeleteModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}

		c.Locals("moduleID", moduleID)
		return c.Next()
	}
}

// DeleteVideo validates video deletion by video id
func DeleteVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		videoID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		c.Locals("videoID", videoID)
		return c.Next()
	}
}

// DeletePost validates post deletion by post id
func DeletePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Post ID!", nil)
		}

		c.Locals("postID", postID)
		return c.Next()
	}
}

// WatchVideo validates the course slug + video id pair on the watch route
func WatchVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		videoID, err := parseIDParam(c, "videoId")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Video ID!", nil)
		}

		c.Locals("courseSlug", slug)
		c.Locals("videoID", videoID)
		return c.Next()
	}
}

// ============ Post Validators ============

// PostRequest is the validated post create/update payload
type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePost validates post creation under a course slug
func CreatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := strings.TrimSpace(c.Params("slug"))
		if slug == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course slug is required!", nil)
		}

		reqData := new(PostRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Content = strings.TrimSpace(reqData.Content)

		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}

		if reqData.Content == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseSlug", slug)
		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}

// UpdatePost validates post update by post id
func UpdatePost() fiber.Handler {
	return func(c *fiber.Ctx) error {
		postID, err := parseIDParam(c, "id")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Post ID!", nil)
		}

		reqData := new(PostRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		reqData.Content = strings.TrimSpace(reqData.Content)

		c.Locals("postID", postID)
		c.Locals("validatedPost", reqData)
		return c.Next()
	}
}

func parseIDParam(c *fiber.Ctx, name string) (int, error) {
	idStr := strings.TrimSpace(c.Params(name))
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}
