package assessment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"discoverme/internal/domain"
)

type Service struct {
	DB *gorm.DB
}

// Create scores the responses synchronously and persists raw responses and
// derived score together. Out-of-range responses block persistence.
func (s *Service) Create(ctx context.Context, userID uint64, inst Instrument, responses []int) (*Assessment, error) {
	score, err := Score(inst, responses)
	if err != nil {
		return nil, domain.Invalid("responses", "responses outside instrument range")
	}
	a := Assessment{
		UserID:     userID,
		Instrument: inst,
		Responses:  responses,
		Score:      score,
	}
	if err := s.DB.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Service) List(ctx context.Context, userID uint64, inst Instrument) ([]Assessment, error) {
	var rows []Assessment
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND instrument = ?", userID, inst).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, userID, id uint64, inst Instrument) (*Assessment, error) {
	var a Assessment
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND instrument = ?", id, userID, inst).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update replaces the responses and recomputes the score at save time.
func (s *Service) Update(ctx context.Context, userID, id uint64, inst Instrument, responses []int) (*Assessment, error) {
	a, err := s.Get(ctx, userID, id, inst)
	if err != nil {
		return nil, err
	}
	score, err := Score(inst, responses)
	if err != nil {
		return nil, domain.Invalid("responses", "responses outside instrument range")
	}
	a.Responses = responses
	a.Score = score
	if err := s.DB.WithContext(ctx).Save(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint64, inst Instrument) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ? AND instrument = ?", id, userID, inst).
		Delete(&Assessment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
