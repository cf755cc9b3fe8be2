package auth

import "time"

type Session struct {
	Token      string    `gorm:"primaryKey" json:"-"`
	Username   string    `gorm:"not null" json:"-"`
	IsLoggedIn bool      `gorm:"not null" json:"-"`
	ExpiresAt  time.Time `gorm:"not null"`
}

func (Session) TableName() string { return "app.sessions" }
