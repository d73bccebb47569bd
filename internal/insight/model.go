package insight

import "time"

// TimeFrame is the closed set of lookback windows.
type TimeFrame string

const (
	FrameDays   TimeFrame = "days"
	FrameWeeks  TimeFrame = "weeks"
	FrameMonths TimeFrame = "months"
	FrameYears  TimeFrame = "years"
)

func (f TimeFrame) Valid() bool {
	switch f {
	case FrameDays, FrameWeeks, FrameMonths, FrameYears:
		return true
	}
	return false
}

// Duration converts a quantity of this frame to a time.Duration. Months and
// years are approximated in days, which is all the frequency count needs.
func (f TimeFrame) Duration(quantity int) time.Duration {
	day := 24 * time.Hour
	switch f {
	case FrameWeeks:
		return time.Duration(quantity) * 7 * day
	case FrameMonths:
		return time.Duration(quantity) * 30 * day
	case FrameYears:
		return time.Duration(quantity) * 365 * day
	default:
		return time.Duration(quantity) * day
	}
}

type Insight struct {
	ID           uint64    `gorm:"primaryKey"`
	UserID       uint64    `gorm:"index;not null"`
	TriggerWord  string    `gorm:"not null"`
	TimeQuantity int       `gorm:"not null"`
	TimeFrame    TimeFrame `gorm:"not null;default:'days'"`
	MoodCount    int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
}
