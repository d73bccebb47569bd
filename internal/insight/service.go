package insight

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"discoverme/internal/domain"
	"discoverme/internal/mood"
)

type Service struct {
	DB    *gorm.DB
	Moods *mood.Service
}

type Input struct {
	TriggerWord  string
	TimeQuantity int
	TimeFrame    TimeFrame
	MoodCount    int
}

func (in *Input) validate() error {
	in.TriggerWord = strings.TrimSpace(in.TriggerWord)
	if in.TriggerWord == "" {
		return domain.Invalid("trigger_word", "required")
	}
	if in.TimeQuantity <= 0 {
		return domain.Invalid("time_quantity", "must be positive")
	}
	if in.TimeFrame == "" {
		in.TimeFrame = FrameDays
	}
	if !in.TimeFrame.Valid() {
		return domain.Invalid("time_frame", "unknown time frame")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID uint64, in Input) (*Insight, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	i := Insight{
		UserID:       userID,
		TriggerWord:  in.TriggerWord,
		TimeQuantity: in.TimeQuantity,
		TimeFrame:    in.TimeFrame,
		MoodCount:    in.MoodCount,
	}
	if err := s.DB.WithContext(ctx).Create(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

// Generate computes MoodCount from the caller's logged moods inside the
// requested window, then stores the insight.
func (s *Service) Generate(ctx context.Context, userID uint64, in Input) (*Insight, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	since := time.Now().Add(-in.TimeFrame.Duration(in.TimeQuantity))
	n, err := s.Moods.CountLogsSince(ctx, userID, in.TriggerWord, since)
	if err != nil {
		return nil, err
	}
	in.MoodCount = int(n)
	return s.Create(ctx, userID, in)
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Insight, error) {
	var rows []Insight
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, userID, id uint64) (*Insight, error) {
	var i Insight
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&i).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Insight{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
