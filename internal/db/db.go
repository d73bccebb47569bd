package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"discoverme/internal/assessment"
	"discoverme/internal/goal"
	"discoverme/internal/insight"
	"discoverme/internal/journal"
	"discoverme/internal/mood"
	"discoverme/internal/notify"
	"discoverme/internal/suggestion"
	"discoverme/internal/user"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&user.User{},
		&user.Profile{},
		&mood.Mood{},
		&mood.MoodLog{},
		&journal.Entry{},
		&goal.Goal{},
		&goal.Task{},
		&suggestion.Suggestion{},
		&insight.Insight{},
		&assessment.Assessment{},
		&notify.Notification{},
	); err != nil {
		return err
	}

	stmts := []string{
		`create index if not exists idx_mood_logs_user_date on mood_logs(user_id, date_logged desc);`,
		`create index if not exists idx_journal_user_created on entries(user_id, created_at desc);`,
		`create index if not exists idx_goals_user_start on goals(user_id, start_date desc);`,
		`create index if not exists idx_tasks_goal on tasks(goal_id, id);`,
		`create index if not exists idx_assessments_user_inst on assessments(user_id, instrument, created_at desc);`,
		`create index if not exists idx_notifications_due on notifications(status, run_at);`,
		`create index if not exists idx_notifications_lock on notifications(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
