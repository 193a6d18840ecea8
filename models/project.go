package models

import "time"

// Project statuses form a closed set; anything else is rejected at validation time.
const (
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusArchived   = "ARCHIVED"
)

// Project is a portfolio entry shown on the public projects page.
type Project struct {
	ID               uint         `gorm:"primaryKey" json:"id"`
	Name             string       `gorm:"size:100;not null" json:"name"`
	ShortDescription string       `gorm:"size:500;not null" json:"shortDescription"`
	Image            string       `gorm:"size:512;not null" json:"image"`
	Github           string       `gorm:"size:512" json:"github"`
	Link             string       `gorm:"size:512;not null" json:"link"`
	Status           string       `gorm:"size:16;not null;default:'IN_PROGRESS'" json:"status"`
	Order            int          `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	Technologies     []Technology `gorm:"many2many:project_technologies;constraint:OnDelete:CASCADE" json:"technologies"`
}
