package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage        string     `json:"profile_image" gorm:"default:''"`
	Name                string     `json:"name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Mobile              string     `json:"mobile" gorm:"default:''"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password            string     `json:"-" gorm:"not null"`
	Bio                 string     `json:"bio" gorm:"type:text"`
	DateOfBirth         *time.Time `json:"date_of_birth"`
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `json:"-" gorm:"default:false"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `json:"-" gorm:"default:false"`
}

// StudentProfile holds student-specific fields, one row per STUDENT user
type StudentProfile struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	StudentID      string `json:"student_id" gorm:"unique;not null"` // Generated registration number
	EducationLevel string `json:"education_level"`
	Interests      string `json:"interests" gorm:"type:text"`
}

// TeacherProfile holds teacher-specific fields, one row per TEACHER user
type TeacherProfile struct {
	gorm.Model
	UserID          uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experience_years" gorm:"default:0"`
	Qualifications  string `json:"qualifications" gorm:"type:text"`
	IsVerified      bool   `json:"is_verified" gorm:"default:false"`
}

// LoginTracking records every successful login
type LoginTracking struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
}
