package models

import "time"

type Category struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"size:100;not null" json:"name"`
	Slug          string        `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Image         string        `gorm:"size:255" json:"image"`
	Status        int           `gorm:"not null" json:"status"`
	ShowHome      string        `gorm:"size:3;not null;default:'No'" json:"show_home"`
	SubCategories []SubCategory `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type SubCategory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CategoryID uint      `gorm:"not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"-"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Slug       string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Status     int       `gorm:"not null" json:"status"`
	ShowHome   string    `gorm:"size:3;not null;default:'No'" json:"show_home"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
