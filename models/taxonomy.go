package models

import "time"

// Category groups posts by topic. Names are unique.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Posts     []Post    `gorm:"many2many:post_categories" json:"-"`
}

// Tag is a free-form post label. Names are unique.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Posts     []Post    `gorm:"many2many:post_tags" json:"-"`
}
