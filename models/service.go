package models

import "time"

// Service is an offering listed on the public services page.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Order       int       `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
