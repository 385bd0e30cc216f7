package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// Post is an announcement/discussion entry written by the course owner
type Post struct {
	gorm.Model
	CourseID  uint        `json:"course_id" gorm:"index;not null"`
	AuthorID  uint        `json:"author_id" gorm:"index;not null"`
	Author    models.User `json:"-" gorm:"foreignKey:AuthorID"`
	Title     string      `json:"title"`
	Content   string      `json:"content" gorm:"type:text"`
	IsDeleted bool        `gorm:"default:false"`
}
