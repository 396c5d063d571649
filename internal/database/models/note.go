package models

import (
	"gorm.io/gorm"
	"time"
)

type Note struct {
	gorm.Model
	OwnerID   uint   `gorm:"index;not null"`
	Title     string `gorm:"size:255;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
