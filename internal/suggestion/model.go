package suggestion

import "time"

type Suggestion struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index;not null"`
	Text      string `gorm:"type:text;not null"`
	Completed bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// DefaultTexts is inserted for every new user.
var DefaultTexts = []string{
	"Create a goal: Go for a walk.",
	"Journal how your day is going.",
	"Watch a guided meditation video.",
	"Take a 5-minute stretch break.",
	"Write down 3 things you're grateful for.",
}

// FirstLoginTexts is inserted once, when the profile's first_login flag is
// still true.
var FirstLoginTexts = []string{
	"Plan your meals for the week.",
	"Declutter your workspace.",
	"Connect with a friend or loved one.",
}
