// Command populate fills a non-production database with a test user and
// sample rows for every entity. Never run against production.
package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"discoverme/internal/config"
	"discoverme/internal/db"
	"discoverme/internal/goal"
	"discoverme/internal/insight"
	"discoverme/internal/journal"
	"discoverme/internal/mood"
	"discoverme/internal/user"
)

var goalTitles = map[goal.Category]string{
	goal.CategoryFitness:  "Exercise Daily",
	goal.CategoryHabit:    "Drink More Water",
	goal.CategorySleep:    "Sleep 8 Hours",
	goal.CategoryStress:   "Meditate",
	goal.CategoryGrowth:   "Read Books",
	goal.CategoryBadHabit: "Reduce Screen Time",
	goal.CategoryEating:   "Plan Meals Ahead",
}

var insightTriggers = []string{"work", "family", "stress", "exercise", "sleep"}

func main() {
	ctx := context.Background()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}
	if err := db.SeedMoods(ctx, gdb); err != nil {
		log.Fatal().Err(err).Msg("seed mood catalog")
	}

	users := &user.Service{DB: gdb}
	u, err := users.Register(ctx, user.RegisterInput{
		Username: "testuser",
		Email:    "testuser@example.com",
		Password: "password123",
	})
	if err != nil {
		// already populated: look the user up instead
		var existing user.User
		if err := gdb.Where("username = ?", "testuser").First(&existing).Error; err != nil {
			log.Fatal().Err(err).Msg("create test user")
		}
		u = &existing
	}
	log.Info().Str("username", u.Username).Msg("test user ready")

	var moods []mood.Mood
	if err := gdb.Find(&moods).Error; err != nil {
		log.Fatal().Err(err).Msg("load moods")
	}

	for i := 0; i < 10; i++ {
		m := moods[rand.Intn(len(moods))]
		l := mood.MoodLog{
			UserID:     u.ID,
			MoodID:     m.ID,
			DateLogged: time.Now().AddDate(0, 0, -rand.Intn(30)),
			Notes:      m.MoodDescription,
		}
		if err := gdb.Create(&l).Error; err != nil {
			log.Fatal().Err(err).Msg("create mood log")
		}
	}
	log.Info().Msg("created mood logs")

	journals := &journal.Service{DB: gdb}
	for i := 1; i <= 5; i++ {
		if _, err := journals.Create(ctx, u.ID, journal.Input{
			Title:   "Journal Entry " + string(rune('0'+i)),
			Content: "Random thoughts and reflections for the day.",
		}); err != nil {
			log.Fatal().Err(err).Msg("create journal entry")
		}
	}
	log.Info().Msg("created journal entries")

	goals := &goal.Service{DB: gdb}
	for category, title := range goalTitles {
		if _, err := goals.Create(ctx, u.ID, goal.Input{
			Category:     category,
			Title:        title,
			Description:  "Goal to " + title + ".",
			TimesPerDay:  1 + rand.Intn(3),
			DaysPerWeek:  1 + rand.Intn(7),
			Duration:     1 + rand.Intn(12),
			DurationUnit: goal.UnitWeeks,
		}); err != nil {
			log.Fatal().Err(err).Msg("create goal")
		}
	}
	log.Info().Msg("created goals")

	insights := &insight.Service{DB: gdb, Moods: &mood.Service{DB: gdb}}
	for _, trigger := range insightTriggers {
		if _, err := insights.Generate(ctx, u.ID, insight.Input{
			TriggerWord:  trigger,
			TimeQuantity: 1 + rand.Intn(4),
			TimeFrame:    insight.FrameWeeks,
		}); err != nil {
			log.Fatal().Err(err).Msg("create insight")
		}
	}
	log.Info().Msg("created insights")
}
