package user

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"discoverme/internal/auth"
	"discoverme/internal/domain"
	"discoverme/internal/suggestion"
)

var (
	usernameRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const minPasswordLen = 8

// Notifier is the fire-and-forget notification boundary. Dispatch failures
// are logged and never surfaced to the caller of the triggering operation.
type Notifier interface {
	Welcome(ctx context.Context, userID uint64) error
	PasswordChanged(ctx context.Context, userID uint64) error
}

type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates the user row together with its profile and suggestion
// batches in one transaction, then fires the welcome notification.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Username == "" || !usernameRe.MatchString(in.Username) {
		return nil, domain.Invalid("username", "must contain only letters, digits, '_', '.' or '-'")
	}
	if !emailRe.MatchString(in.Email) {
		return nil, domain.Invalid("email", "invalid email address")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Invalid("password", "must be at least 8 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         "user",
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&User{}).Where("username = ?", in.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.Invalid("username", "already taken")
		}
		if err := tx.Model(&User{}).Where("email = ?", in.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return domain.Invalid("email", "already registered")
		}

		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		p := Profile{UserID: u.ID, FirstLogin: true}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if err := suggestion.SeedBatch(tx, u.ID, suggestion.DefaultTexts); err != nil {
			return err
		}

		// The profile is brand new, so the first-login batch applies
		// immediately and the flag flips before the transaction ends.
		return s.runFirstLogin(tx, &p)
	})
	if err != nil {
		return nil, err
	}

	s.notify(func() error { return s.Notifier.Welcome(ctx, u.ID) }, "welcome", u.ID)
	return &u, nil
}

// Authenticate checks username/password and applies pending first-login
// effects for rows whose flag is still set (seeded or migrated users).
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !auth.ComparePassword(u.PasswordHash, password) {
		return nil, domain.ErrNotFound
	}

	fired := false
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Profile
		if err := tx.Where("user_id = ?", u.ID).First(&p).Error; err != nil {
			return err
		}
		if !p.FirstLogin {
			return nil
		}
		fired = true
		return s.runFirstLogin(tx, &p)
	})
	if err != nil {
		return nil, err
	}
	if fired {
		s.notify(func() error { return s.Notifier.Welcome(ctx, u.ID) }, "welcome", u.ID)
	}
	return &u, nil
}

// runFirstLogin inserts the extra suggestion batch and clears the flag.
// Idempotent: callers only invoke it while first_login is true.
func (s *Service) runFirstLogin(tx *gorm.DB, p *Profile) error {
	if err := suggestion.SeedBatch(tx, p.UserID, suggestion.FirstLoginTexts); err != nil {
		return err
	}
	p.FirstLogin = false
	return tx.Save(p).Error
}

func (s *Service) Get(ctx context.Context, id uint64) (*User, error) {
	var u User
	err := s.DB.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uint64, current, next string) error {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.ComparePassword(u.PasswordHash, current) {
		return domain.Invalid("current_password", "does not match")
	}
	if len(next) < minPasswordLen {
		return domain.Invalid("new_password", "must be at least 8 characters")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.DB.WithContext(ctx).Model(u).Update("password_hash", hash).Error; err != nil {
		return err
	}

	s.notify(func() error { return s.Notifier.PasswordChanged(ctx, userID) }, "password-changed", userID)
	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uint64) (*Profile, error) {
	var p Profile
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileUpdate applies only fields present in the payload. An explicit null
// clears the field; an absent field leaves it untouched.
type ProfileUpdate struct {
	Location   domain.Optional[string] `json:"location"`
	Occupation domain.Optional[string] `json:"occupation"`
	City       domain.Optional[string] `json:"city"`
	State      domain.Optional[string] `json:"state"`
	Pronouns   domain.Optional[string] `json:"pronouns"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID uint64, in ProfileUpdate) (*Profile, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, o domain.Optional[string]) {
		if !o.Set {
			return
		}
		if o.Null {
			*dst = ""
			return
		}
		*dst = o.Value
	}
	apply(&p.Location, in.Location)
	apply(&p.Occupation, in.Occupation)
	apply(&p.City, in.City)
	apply(&p.State, in.State)
	apply(&p.Pronouns, in.Pronouns)

	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) notify(fn func() error, kind string, userID uint64) {
	if s.Notifier == nil {
		return
	}
	if err := fn(); err != nil {
		log.Warn().Err(err).Str("kind", kind).Uint64("user_id", userID).Msg("notification dispatch failed")
	}
}
