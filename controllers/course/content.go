package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// ============ Module Management ============

// CreateModule adds a module to an owned course
func CreateModule(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	reqData := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	module := courseModels.Module{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := db.Create(&module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule updates a module on an owned course
func UpdateModule(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	reqData := c.Locals("validatedModule").(*courseValidator.ModuleRequest)
	db := database.Database.Db

	module, _, errCode, errMsg := findOwnedModule(db, moduleID, user.ID)
	if module == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	if reqData.Title != "" {
		module.Title = reqData.Title
	}
	if reqData.Description != "" {
		module.Description = reqData.Description
	}
	if reqData.OrderIndex > 0 {
		module.OrderIndex = reqData.OrderIndex
	}

	if err := db.Save(module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule soft-deletes a module on an owned course
func DeleteModule(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	db := database.Database.Db

	module, _, errCode, errMsg := findOwnedModule(db, moduleID, user.ID)
	if module == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	module.IsDeleted = true
	if err := db.Save(module).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// ============ Video Management ============

// CreateVideo adds a video to a module on an owned course
func CreateVideo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	moduleID := c.Locals("moduleID").(int)
	reqData := c.Locals("validatedVideo").(*courseValidator.VideoRequest)
	db := database.Database.Db

	module, _, errCode, errMsg := findOwnedModule(db, moduleID, user.ID)
	if module == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	video := courseModels.Video{
		ModuleID:        module.ID,
		Title:           reqData.Title,
		Description:     reqData.Description,
		VideoURL:        reqData.VideoURL,
		DurationMinutes: reqData.DurationMinutes,
		OrderIndex:      reqData.OrderIndex,
		IsFree:          reqData.IsFree != nil && *reqData.IsFree,
	}

	if err := db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// findOwnedVideo loads a video and verifies the caller owns its course
func findOwnedVideo(videoID int, userID uint) (*courseModels.Video, int, string) {
	db := database.Database.Db

	var video courseModels.Video
	if err := db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return nil, fiber.StatusNotFound, "Video not found!"
	}

	_, _, errCode, errMsg := findOwnedModule(db, int(video.ModuleID), userID)
	if errCode != 0 {
		return nil, errCode, errMsg
	}
	return &video, 0, ""
}

// UpdateVideo updates a video on an owned course
func UpdateVideo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(int)
	reqData := c.Locals("validatedVideo").(*courseValidator.VideoRequest)
	db := database.Database.Db

	video, errCode, errMsg := findOwnedVideo(videoID, user.ID)
	if video == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.Description != "" {
		video.Description = reqData.Description
	}
	if reqData.VideoURL != "" {
		video.VideoURL = reqData.VideoURL
	}
	if reqData.DurationMinutes > 0 {
		video.DurationMinutes = reqData.DurationMinutes
	}
	if reqData.OrderIndex > 0 {
		video.OrderIndex = reqData.OrderIndex
	}
	if reqData.IsFree != nil {
		video.IsFree = *reqData.IsFree
	}

	if err := db.Save(video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully!", video)
}

// DeleteVideo soft-deletes a video on an owned course
func DeleteVideo(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID := c.Locals("videoID").(int)
	db := database.Database.Db

	video, errCode, errMsg := findOwnedVideo(videoID, user.ID)
	if video == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	video.IsDeleted = true
	if err := db.Save(video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

// ============ Post Management ============

// CreatePost adds an announcement post to an owned course
func CreatePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	reqData := c.Locals("validatedPost").(*courseValidator.PostRequest)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	post := courseModels.Post{
		CourseID: course.ID,
		AuthorID: user.ID,
		Title:    reqData.Title,
		Content:  reqData.Content,
	}

	if err := db.Create(&post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Post created successfully!", post)
}

// GetCoursePosts lists posts on an owned course
func GetCoursePosts(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	slug := c.Locals("courseSlug").(string)
	db := database.Database.Db

	course, errCode, errMsg := findOwnedCourse(db, slug, user.ID)
	if course == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	var posts []courseModels.Post
	if err := db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("created_at desc").Find(&posts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch posts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Posts fetched successfully!", posts)
}

// findOwnedPost loads a post and verifies the caller owns its course
func findOwnedPost(postID int, userID uint) (*courseModels.Post, int, string) {
	db := database.Database.Db

	var post courseModels.Post
	if err := db.Where("id = ? AND is_deleted = ?", postID, false).First(&post).Error; err != nil {
		return nil, fiber.StatusNotFound, "Post not found!"
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", post.CourseID, false).First(&course).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found!"
	}
	if course.InstructorID != userID {
		return nil, fiber.StatusForbidden, "You are not the instructor of this course!"
	}
	return &post, 0, ""
}

// UpdatePost updates a post on an owned course
func UpdatePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)
	reqData := c.Locals("validatedPost").(*courseValidator.PostRequest)
	db := database.Database.Db

	post, errCode, errMsg := findOwnedPost(postID, user.ID)
	if post == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	if reqData.Title != "" {
		post.Title = reqData.Title
	}
	if reqData.Content != "" {
		post.Content = reqData.Content
	}

	if err := db.Save(post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post updated successfully!", post)
}

// DeletePost soft-deletes a post on an owned course
func DeletePost(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	postID := c.Locals("postID").(int)
	db := database.Database.Db

	post, errCode, errMsg := findOwnedPost(postID, user.ID)
	if post == nil {
		return middleware.JsonResponse(c, errCode, false, errMsg, nil)
	}

	post.IsDeleted = true
	if err := db.Save(post).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete post!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Post deleted successfully!", nil)
}
