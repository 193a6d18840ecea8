package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/foliohq/folio/utils"
)

// User is an admin account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"-"`
}

// EnsureAdmin seeds the initial admin account when the users table is
// empty. There is no open registration, so this is the only way the first
// account comes to exist.
func EnsureAdmin(db *gorm.DB, name, email, password string) error {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if email == "" || password == "" {
		return nil
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Admin"
	}
	return db.Create(&User{Name: name, Email: email, PasswordHash: hash}).Error
}
