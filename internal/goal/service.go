package goal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"discoverme/internal/domain"
)

// Notifier delivers the congratulations event fired on completion. Best
// effort: failures are logged, never returned.
type Notifier interface {
	Congratulations(ctx context.Context, userID uint64, title string) error
}

type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

type Input struct {
	Category     Category
	Title        string
	Description  string
	Completed    bool
	TimesPerDay  int
	DaysPerWeek  int
	Duration     int
	DurationUnit DurationUnit
}

func (in *Input) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Invalid("title", "required")
	}
	if err := validateCategory(in.Category); err != nil {
		return err
	}
	if in.DurationUnit == "" {
		in.DurationUnit = UnitDays
	}
	return validateUnit(in.DurationUnit)
}

func (s *Service) Create(ctx context.Context, userID uint64, in Input) (*Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	g := Goal{
		UserID:       userID,
		Category:     in.Category,
		Title:        in.Title,
		Description:  in.Description,
		Completed:    in.Completed,
		StartDate:    time.Now(),
		TimesPerDay:  in.TimesPerDay,
		DaysPerWeek:  in.DaysPerWeek,
		Duration:     in.Duration,
		DurationUnit: in.DurationUnit,
	}
	if g.Completed {
		now := time.Now()
		g.CompletedOn = &now
	}
	if err := s.DB.WithContext(ctx).Create(&g).Error; err != nil {
		return nil, err
	}
	if g.Completed {
		s.congratulate(ctx, userID, g.Title)
	}
	return &g, nil
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Goal, error) {
	var rows []Goal
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, userID, id uint64) (*Goal, error) {
	var g Goal
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Update persists the new state. The first false→true completion transition
// stamps CompletedOn atomically with the write; a later true→false toggle
// keeps the original stamp.
func (s *Service) Update(ctx context.Context, userID, id uint64, in Input) (*Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var g Goal
	justCompleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		justCompleted = in.Completed && !g.Completed
		g.Category = in.Category
		g.Title = in.Title
		g.Description = in.Description
		g.Completed = in.Completed
		g.TimesPerDay = in.TimesPerDay
		g.DaysPerWeek = in.DaysPerWeek
		g.Duration = in.Duration
		g.DurationUnit = in.DurationUnit
		if g.Completed && g.CompletedOn == nil {
			now := time.Now()
			g.CompletedOn = &now
		}
		return tx.Save(&g).Error
	})
	if err != nil {
		return nil, err
	}
	if justCompleted {
		s.congratulate(ctx, userID, g.Title)
	}
	return &g, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("goal_id = ?", id).Delete(&Task{}).Error
	})
}

// resolveGoal is the transitive-ownership check for tasks: the referenced
// goal must exist and belong to the caller, otherwise the task request fails
// as a validation error on the goal field.
func (s *Service) resolveGoal(tx *gorm.DB, userID, goalID uint64) (*Goal, error) {
	var g Goal
	err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Invalid("goal", "goal does not exist")
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

type TaskInput struct {
	Text      string
	Completed bool
}

func (s *Service) CreateTask(ctx context.Context, userID, goalID uint64, in TaskInput) (*Task, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return nil, domain.Invalid("text", "required")
	}

	var t Task
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.resolveGoal(tx, userID, goalID); err != nil {
			return err
		}
		t = Task{GoalID: goalID, Text: in.Text, Completed: in.Completed}
		if t.Completed {
			now := time.Now()
			t.CompletedOn = &now
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		return nil, err
	}
	if t.Completed {
		s.congratulate(ctx, userID, t.Text)
	}
	return &t, nil
}

func (s *Service) ListTasks(ctx context.Context, userID, goalID uint64) ([]Task, error) {
	var rows []Task
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.resolveGoal(tx, userID, goalID); err != nil {
			return err
		}
		return tx.Where("goal_id = ?", goalID).Order("id asc").Find(&rows).Error
	})
	return rows, err
}

// getTask joins through goals so a task under another user's goal is
// indistinguishable from a missing one.
func (s *Service) getTask(tx *gorm.DB, userID, taskID uint64) (*Task, error) {
	var t Task
	err := tx.
		Joins("JOIN goals ON goals.id = tasks.goal_id").
		Where("tasks.id = ? AND goals.user_id = ?", taskID, userID).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Service) GetTask(ctx context.Context, userID, taskID uint64) (*Task, error) {
	return s.getTask(s.DB.WithContext(ctx), userID, taskID)
}

func (s *Service) UpdateTask(ctx context.Context, userID, taskID uint64, in TaskInput) (*Task, error) {
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		return nil, domain.Invalid("text", "required")
	}

	var t *Task
	justCompleted := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		t, err = s.getTask(tx, userID, taskID)
		if err != nil {
			return err
		}
		justCompleted = in.Completed && !t.Completed
		t.Text = in.Text
		t.Completed = in.Completed
		if t.Completed && t.CompletedOn == nil {
			now := time.Now()
			t.CompletedOn = &now
		}
		return tx.Save(t).Error
	})
	if err != nil {
		return nil, err
	}
	if justCompleted {
		s.congratulate(ctx, userID, t.Text)
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, userID, taskID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.getTask(tx, userID, taskID)
		if err != nil {
			return err
		}
		return tx.Delete(t).Error
	})
}

func (s *Service) congratulate(ctx context.Context, userID uint64, title string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Congratulations(ctx, userID, title); err != nil {
		log.Warn().Err(err).Uint64("user_id", userID).Msg("congratulations dispatch failed")
	}
}
