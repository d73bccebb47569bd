package mood

import "time"

// Mood is a catalog row shared by all users. Only admins mutate it.
type Mood struct {
	ID              uint64 `gorm:"primaryKey"`
	MoodType        string `gorm:"uniqueIndex;not null"`
	MoodDescription string `gorm:"type:text;not null"`
}

// MoodLog is an owned entry referencing one catalog mood. DateLogged is set
// once at creation and never updated afterwards.
type MoodLog struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"index;not null"`
	MoodID     uint64 `gorm:"index;not null"`
	Mood       Mood   `gorm:"constraint:OnDelete:CASCADE"`
	DateLogged time.Time
	Notes      string `gorm:"type:text"`
}
