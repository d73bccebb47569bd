package assessment

import (
	"time"

	"gorm.io/datatypes"
)

// Assessment stores one submitted questionnaire. The raw responses are kept
// alongside the derived score; the score is recomputed from the responses on
// every save, never accepted from the client.
type Assessment struct {
	ID         uint64     `gorm:"primaryKey"`
	UserID     uint64     `gorm:"index;not null"`
	Instrument Instrument `gorm:"index;not null"`
	Responses  datatypes.JSONSlice[int] `gorm:"not null"`
	Score      int        `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
