package models

import "time"

const (
	SkillTypeTechnical = "TECHNICAL"
	SkillTypeSoft      = "SOFT"
)

// Skill is a labelled competency, either technical or soft.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"size:100;not null" json:"label"`
	Type      string    `gorm:"size:16;not null;default:'TECHNICAL'" json:"type"`
	Icon      string    `gorm:"size:50" json:"icon"`
	Order     int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
