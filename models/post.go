package models

import "time"

const (
	PostStatusDraft     = "DRAFT"
	PostStatusPublished = "PUBLISHED"
	PostStatusArchived  = "ARCHIVED"
)

// Post is a blog entry. Content is rich HTML, sanitized before it ever
// reaches storage; PublishedAt is set the first time a write moves the
// post to PUBLISHED.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Subtitle    string     `gorm:"size:300" json:"subtitle"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Slug        string     `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Image       string     `gorm:"size:512" json:"image"`
	Status      string     `gorm:"size:16;not null;default:'DRAFT'" json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
	AuthorID    uint       `gorm:"index;not null" json:"authorId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Author      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"author"`
	Categories  []Category `gorm:"many2many:post_categories;constraint:OnDelete:CASCADE" json:"categories"`
	Tags        []Tag      `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
}
