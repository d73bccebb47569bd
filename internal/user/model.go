package user

import "time"

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	FirstName    string
	LastName     string
	Role         string `gorm:"not null;default:'user'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is created exactly once per user, as part of the user insert.
type Profile struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"uniqueIndex;not null"`
	Location   string
	Occupation string
	City       string
	State      string
	Pronouns   string
	FirstLogin bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
