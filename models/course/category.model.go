package course

import "gorm.io/gorm"

// Category groups courses on the catalog pages
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	IsDeleted   bool   `gorm:"default:false"`
}
