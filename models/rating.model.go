package models

import "gorm.io/gorm"

// Rating is a student's one-time review of a course they are enrolled in.
// One row per (student, course); never edited or deleted afterwards.
type Rating struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"uniqueIndex:idx_rating_student_course;not null"`
	Student   User   `json:"-" gorm:"foreignKey:StudentID"`
	CourseID  uint   `json:"course_id" gorm:"uniqueIndex:idx_rating_student_course;not null"`
	Score     int    `json:"score" gorm:"not null"` // 1 to 5 stars
	Review    string `json:"review" gorm:"type:text"`
}
