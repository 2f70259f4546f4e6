package model

import "time"

// User — серверная модель пользователя. Password хранит только bcrypt-хеш.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	Email     string    `gorm:"not null;uniqueIndex" json:"email" bson:"email"`
	Password  string    `gorm:"not null" json:"-" bson:"password"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt" bson:"created_at"`
}

// UserSummary is the public view of a user returned by the API.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}
