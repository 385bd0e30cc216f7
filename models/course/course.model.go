package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// Course difficulty levels
const (
	DifficultyBeginner     = "BEGINNER"
	DifficultyIntermediate = "INTERMEDIATE"
	DifficultyAdvanced     = "ADVANCED"
)

// Course represents a learning course owned by a teacher
type Course struct {
	gorm.Model
	Title            string      `json:"title" gorm:"not null"`
	Slug             string      `json:"slug" gorm:"unique;not null"` // Stable once published, used in URLs
	Description      string      `json:"description" gorm:"type:text"`
	ShortDescription string      `json:"short_description"`
	InstructorID     uint        `json:"instructor_id" gorm:"index;not null"`
	Instructor       models.User `json:"-" gorm:"foreignKey:InstructorID"`
	CategoryID       uint        `json:"category_id" gorm:"index"`
	Category         Category    `json:"-" gorm:"foreignKey:CategoryID"`
	Price            float64     `json:"price" gorm:"default:0"`
	Difficulty       string      `json:"difficulty" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	DurationWeeks    int         `json:"duration_weeks" gorm:"default:0"`
	ThumbnailURL     string      `json:"thumbnail_url"`
	IsPublished      bool        `json:"is_published" gorm:"default:false"`
	IsDeleted        bool        `gorm:"default:false"`
}
