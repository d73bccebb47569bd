package goal

import (
	"time"

	"discoverme/internal/domain"
)

// Category is the closed set of goal categories.
type Category string

const (
	CategoryFitness  Category = "fitness"
	CategoryHabit    Category = "habit"
	CategoryEating   Category = "eating"
	CategorySleep    Category = "sleep"
	CategoryStress   Category = "stress"
	CategoryBadHabit Category = "bad-habit"
	CategoryGrowth   Category = "growth"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryFitness, CategoryHabit, CategoryEating, CategorySleep,
		CategoryStress, CategoryBadHabit, CategoryGrowth:
		return true
	}
	return false
}

// DurationUnit is the closed set of goal duration units.
type DurationUnit string

const (
	UnitDays   DurationUnit = "days"
	UnitWeeks  DurationUnit = "weeks"
	UnitMonths DurationUnit = "months"
	UnitYears  DurationUnit = "years"
)

func (u DurationUnit) Valid() bool {
	switch u {
	case UnitDays, UnitWeeks, UnitMonths, UnitYears:
		return true
	}
	return false
}

// Goal is an owned record with sub-tasks. CompletedOn is stamped on the first
// transition to completed and never cleared afterwards, even if the flag is
// toggled back.
type Goal struct {
	ID           uint64   `gorm:"primaryKey"`
	UserID       uint64   `gorm:"index;not null"`
	Category     Category `gorm:"not null"`
	Title        string   `gorm:"not null"`
	Description  string   `gorm:"type:text"`
	Completed    bool     `gorm:"not null;default:false"`
	CompletedOn  *time.Time
	StartDate    time.Time
	TimesPerDay  int
	DaysPerWeek  int
	Duration     int
	DurationUnit DurationUnit `gorm:"not null;default:'days'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task carries no user reference: ownership is resolved through the parent
// Goal so the two can never drift apart.
type Task struct {
	ID          uint64 `gorm:"primaryKey"`
	GoalID      uint64 `gorm:"index;not null"`
	Text        string `gorm:"type:text;not null"`
	Completed   bool   `gorm:"not null;default:false"`
	CompletedOn *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func validateCategory(c Category) error {
	if !c.Valid() {
		return domain.Invalid("category", "unknown category")
	}
	return nil
}

func validateUnit(u DurationUnit) error {
	if !u.Valid() {
		return domain.Invalid("duration_unit", "unknown duration unit")
	}
	return nil
}
