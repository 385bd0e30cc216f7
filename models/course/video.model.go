package course

import "gorm.io/gorm"

// Video represents an ordered video lesson within a module
type Video struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"` // Order within module
	IsFree          bool   `json:"is_free" gorm:"default:false"` // Free videos are watchable without enrollment
	IsDeleted       bool   `gorm:"default:false"`
}
