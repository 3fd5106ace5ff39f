package models

import "time"

// TempImage is an upload staged under temp/ until the form that owns it is saved.
type TempImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
