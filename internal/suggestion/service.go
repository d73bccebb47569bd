package suggestion

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"discoverme/internal/domain"
)

type Service struct {
	DB *gorm.DB
}

// SeedBatch bulk-inserts one suggestion per text for the given user. Runs
// inside the caller's transaction during user creation.
func SeedBatch(tx *gorm.DB, userID uint64, texts []string) error {
	rows := make([]Suggestion, 0, len(texts))
	for _, t := range texts {
		rows = append(rows, Suggestion{UserID: userID, Text: t})
	}
	return tx.Create(&rows).Error
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Suggestion, error) {
	var rows []Suggestion
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, userID, id uint64) (*Suggestion, error) {
	var row Suggestion
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Service) SetCompleted(ctx context.Context, userID, id uint64, completed bool) (*Suggestion, error) {
	row, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	row.Completed = completed
	if err := s.DB.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Suggestion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
