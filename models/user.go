package models

import (
	"gorm.io/gorm"
)

// User is an account created at registration. There is no update or
// deletion path; the password hash is written once.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}
