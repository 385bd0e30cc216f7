package database

import (
	"log"

	"lms/config"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads a small set of sample data for local development: one admin,
// one teacher with a published course (modules + videos), and one student.
// Safe to run more than once.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Seed skipped: users already exist.")
		return nil
	}

	log.Println("Seeding sample data...")

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), config.AppConfig.SaltRound)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{Name: "Site Admin", Email: "admin@example.com", Role: models.RoleAdmin, Password: string(hashed)}
		teacher := models.User{Name: "Asel Teacher", Email: "teacher@example.com", Role: models.RoleTeacher, Password: string(hashed)}
		student := models.User{Name: "Jane Student", Email: "student@example.com", Role: models.RoleStudent, Password: string(hashed)}

		for _, u := range []*models.User{&admin, &teacher, &student} {
			if err := tx.Create(u).Error; err != nil {
				return err
			}
		}

		teacherProfile := models.TeacherProfile{UserID: teacher.ID, Specialization: "Web Development", ExperienceYears: 7, IsVerified: true}
		if err := tx.Create(&teacherProfile).Error; err != nil {
			return err
		}

		studentProfile := models.StudentProfile{UserID: student.ID, StudentID: utils.GenerateStudentID(), EducationLevel: "Bachelor"}
		if err := tx.Create(&studentProfile).Error; err != nil {
			return err
		}

		category := courseModels.Category{Name: "Programming", Description: "Programming and software development"}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}

		course := courseModels.Course{
			Title:            "Django 101",
			Slug:             utils.Slugify("Django 101"),
			Description:      "Build web applications with Django from scratch.",
			ShortDescription: "Intro to Django",
			InstructorID:     teacher.ID,
			CategoryID:       category.ID,
			Price:            49.99,
			Difficulty:       courseModels.DifficultyBeginner,
			DurationWeeks:    6,
			IsPublished:      true,
		}
		if err := tx.Create(&course).Error; err != nil {
			return err
		}

		module := courseModels.Module{CourseID: course.ID, Title: "Getting Started", OrderIndex: 1}
		if err := tx.Create(&module).Error; err != nil {
			return err
		}

		videos := []courseModels.Video{
			{ModuleID: module.ID, Title: "Introduction", DurationMinutes: 10, OrderIndex: 1, IsFree: true},
			{ModuleID: module.ID, Title: "Installing Django", DurationMinutes: 15, OrderIndex: 2},
			{ModuleID: module.ID, Title: "Your First View", DurationMinutes: 20, OrderIndex: 3},
		}
		if err := tx.Create(&videos).Error; err != nil {
			return err
		}

		log.Println("Sample data seeded successfully.")
		return nil
	})
}
