package enrollment

import (
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Enrollment grants a student access to a course's non-free content.
// Rows are only ever created inside the request-approval transaction,
// never directly by a student-facing handler. The composite unique index
// makes concurrent duplicate approvals race safely to a single row.
type Enrollment struct {
	gorm.Model
	StudentID           uint                `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	Student             models.User         `json:"-" gorm:"foreignKey:StudentID"`
	CourseID            uint                `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	Course              courseModels.Course `json:"-" gorm:"foreignKey:CourseID"`
	EnrollmentRequestID uint                `json:"enrollment_request_id" gorm:"uniqueIndex;not null"`
	ProgressPercentage  int                 `json:"progress_percentage" gorm:"default:0"` // Recomputed on every watch event
	CompletedAt         *time.Time          `json:"completed_at"`                         // Set once at 100, never unset
}

// VideoProgress tracks a student's watch state for a single video under an
// active enrollment. One row per (enrollment, video).
type VideoProgress struct {
	gorm.Model
	EnrollmentID    uint      `json:"enrollment_id" gorm:"uniqueIndex:idx_progress_enrollment_video;not null"`
	VideoID         uint      `json:"video_id" gorm:"uniqueIndex:idx_progress_enrollment_video;not null"`
	WatchedDuration int       `json:"watched_duration" gorm:"default:0"` // Seconds
	IsCompleted     bool      `json:"is_completed" gorm:"default:false"`
	LastWatched     time.Time `json:"last_watched"`
}
