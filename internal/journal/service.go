package journal

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"discoverme/internal/domain"
)

type Service struct {
	DB *gorm.DB
}

type Input struct {
	Title   string
	Content string
}

func (in *Input) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Invalid("title", "required")
	}
	if len(in.Title) > 100 {
		return domain.Invalid("title", "must be at most 100 characters")
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.Invalid("content", "required")
	}
	return nil
}

func (s *Service) Create(ctx context.Context, userID uint64, in Input) (*Entry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	e := Entry{UserID: userID, Title: in.Title, Content: in.Content}
	if err := s.DB.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) List(ctx context.Context, userID uint64) ([]Entry, error) {
	var rows []Entry
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) Get(ctx context.Context, userID, id uint64) (*Entry, error) {
	var e Entry
	err := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Service) Update(ctx context.Context, userID, id uint64, in Input) (*Entry, error) {
	e, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	e.Title = in.Title
	e.Content = in.Content
	if err := s.DB.WithContext(ctx).Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
