package enrollment

import (
	"time"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Enrollment request statuses
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// EnrollmentRequest is a student's ask to join a course, reviewed by an
// admin or the owning teacher. One request per (student, course).
type EnrollmentRequest struct {
	gorm.Model
	StudentID uint                `json:"student_id" gorm:"uniqueIndex:idx_request_student_course;not null"`
	Student   models.User         `json:"-" gorm:"foreignKey:StudentID"`
	CourseID  uint                `json:"course_id" gorm:"uniqueIndex:idx_request_student_course;not null"`
	Course    courseModels.Course `json:"-" gorm:"foreignKey:CourseID"`
	Status    string              `json:"status" gorm:"default:'PENDING'"` // PENDING, APPROVED, REJECTED

	// Contact information supplied with the request
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Message     string `json:"message" gorm:"type:text"`

	// Review fields
	ReviewedByID *uint      `json:"reviewed_by_id"`
	AdminNotes   string     `json:"admin_notes" gorm:"type:text"`
	ReviewedAt   *time.Time `json:"reviewed_at"`
}
