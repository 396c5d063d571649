package models

import (
	"gorm.io/gorm"
	"time"
)

type User struct {
	gorm.Model
	TelegramID int64  `gorm:"uniqueIndex;not null"`
	UserName   string `gorm:"size:255"`
	IsAdmin    bool   `gorm:"default:false"`
	// PatternCode хранит последовательность цифр; пустая строка — код еще не задан
	PatternCode string `gorm:"size:10"`
	IsLocked    bool   `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasPattern сообщает, настроен ли у пользователя графический код.
func (u *User) HasPattern() bool {
	return u.PatternCode != ""
}
