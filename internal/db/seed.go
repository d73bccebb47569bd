package db

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"discoverme/internal/mood"
)

var catalogMoods = []mood.Mood{
	{MoodType: "Happy", MoodDescription: "Feeling very happy and content."},
	{MoodType: "Sad", MoodDescription: "Feeling a bit down today."},
	{MoodType: "Angry", MoodDescription: "Angry about recent events."},
	{MoodType: "Calm", MoodDescription: "Calm and relaxed."},
	{MoodType: "Anxious", MoodDescription: "Feeling anxious and nervous."},
	{MoodType: "Excited", MoodDescription: "Excited about upcoming plans."},
}

// SeedMoods inserts the baseline mood catalog, skipping rows that already
// exist.
func SeedMoods(ctx context.Context, gdb *gorm.DB) error {
	for _, m := range catalogMoods {
		row := m
		if err := gdb.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}
