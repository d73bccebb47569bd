package mood

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"discoverme/internal/domain"
)

type Service struct {
	DB *gorm.DB
}

// Catalog operations. Reads are open to every authenticated caller; writes
// require the admin role, checked here so non-HTTP callers get the same rule.

func (s *Service) ListCatalog(ctx context.Context) ([]Mood, error) {
	var rows []Mood
	err := s.DB.WithContext(ctx).Order("id asc").Find(&rows).Error
	return rows, err
}

func (s *Service) GetCatalog(ctx context.Context, id uint64) (*Mood, error) {
	var m Mood
	err := s.DB.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) CreateCatalog(ctx context.Context, admin bool, moodType, description string) (*Mood, error) {
	if !admin {
		return nil, domain.ErrForbidden
	}
	moodType = strings.TrimSpace(moodType)
	if moodType == "" {
		return nil, domain.Invalid("mood_type", "required")
	}
	m := Mood{MoodType: moodType, MoodDescription: description}
	if err := s.DB.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) UpdateCatalog(ctx context.Context, admin bool, id uint64, moodType, description string) (*Mood, error) {
	if !admin {
		return nil, domain.ErrForbidden
	}
	m, err := s.GetCatalog(ctx, id)
	if err != nil {
		return nil, err
	}
	if t := strings.TrimSpace(moodType); t != "" {
		m.MoodType = t
	}
	if description != "" {
		m.MoodDescription = description
	}
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) DeleteCatalog(ctx context.Context, admin bool, id uint64) error {
	if !admin {
		return domain.ErrForbidden
	}
	res := s.DB.WithContext(ctx).Delete(&Mood{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Log operations, scoped to the owning user.

type LogInput struct {
	MoodID uint64
	Notes  string
}

func (s *Service) CreateLog(ctx context.Context, userID uint64, in LogInput) (*MoodLog, error) {
	if _, err := s.GetCatalog(ctx, in.MoodID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid("mood", "unknown mood")
		}
		return nil, err
	}
	l := MoodLog{
		UserID:     userID,
		MoodID:     in.MoodID,
		DateLogged: time.Now(),
		Notes:      in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Service) ListLogs(ctx context.Context, userID uint64) ([]MoodLog, error) {
	var rows []MoodLog
	err := s.DB.WithContext(ctx).
		Preload("Mood").
		Where("user_id = ?", userID).
		Order("date_logged desc").
		Find(&rows).Error
	return rows, err
}

func (s *Service) GetLog(ctx context.Context, userID, id uint64) (*MoodLog, error) {
	var l MoodLog
	err := s.DB.WithContext(ctx).
		Preload("Mood").
		Where("id = ? AND user_id = ?", id, userID).
		First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLog may change the referenced mood and notes. DateLogged is immutable.
func (s *Service) UpdateLog(ctx context.Context, userID, id uint64, in LogInput) (*MoodLog, error) {
	l, err := s.GetLog(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.MoodID != 0 && in.MoodID != l.MoodID {
		if _, err := s.GetCatalog(ctx, in.MoodID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("mood", "unknown mood")
			}
			return nil, err
		}
		l.MoodID = in.MoodID
	}
	l.Notes = in.Notes

	err = s.DB.WithContext(ctx).Model(l).
		Select("mood_id", "notes").
		Updates(map[string]any{"mood_id": l.MoodID, "notes": l.Notes}).Error
	if err != nil {
		return nil, err
	}
	return s.GetLog(ctx, userID, id)
}

func (s *Service) DeleteLog(ctx context.Context, userID, id uint64) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&MoodLog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountLogsSince is the frequency-count helper behind insight generation:
// how many of the user's logs since the cutoff match the trigger word, either
// in the mood type or in the free-text notes.
func (s *Service) CountLogsSince(ctx context.Context, userID uint64, trigger string, since time.Time) (int64, error) {
	trigger = strings.ToLower(strings.TrimSpace(trigger))
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&MoodLog{}).
		Joins("JOIN moods ON moods.id = mood_logs.mood_id").
		Where("mood_logs.user_id = ? AND mood_logs.date_logged >= ?", userID, since).
		Where("LOWER(moods.mood_type) = ? OR LOWER(mood_logs.notes) LIKE ?", trigger, "%"+trigger+"%").
		Count(&n).Error
	return n, err
}
