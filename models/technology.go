package models

import "time"

const (
	TechnologyCategoryDesign   = "DESIGN"
	TechnologyCategoryFrontend = "FRONTEND"
	TechnologyCategoryBackend  = "BACKEND"
	TechnologyCategoryDatabase = "DATABASE"
	TechnologyCategoryDevops   = "DEVOPS"
	TechnologyCategoryGeneral  = "GENERAL"
)

// Technology is a tool or stack item with a 0-100 proficiency value.
// ProjectCount is computed per request from the join table and never stored.
type Technology struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Label        string    `gorm:"size:100;not null" json:"label"`
	Value        int       `gorm:"not null;default:0" json:"value"`
	Icon         string    `gorm:"size:50" json:"icon"`
	Href         string    `gorm:"size:512" json:"href"`
	Category     string    `gorm:"size:16;not null;default:'GENERAL'" json:"category"`
	ProjectCount int64     `gorm:"-" json:"projectCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Projects     []Project `gorm:"many2many:project_technologies;constraint:OnDelete:CASCADE" json:"-"`
}
