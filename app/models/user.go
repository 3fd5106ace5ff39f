package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null" json:"-"`
	Role      string `gorm:"size:20;default:'user';not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
