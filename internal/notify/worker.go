package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Worker polls the outbox and hands due notifications to the Mailer.
type Worker struct {
	ID       string
	Svc      *Service
	DB       *gorm.DB
	Mailer   Mailer
	LoginURL string
}

// recipient reads just what the worker needs from the users table.
type recipient struct {
	ID        uint64 `gorm:"column:id"`
	Username  string `gorm:"column:username"`
	Email     string `gorm:"column:email"`
	FirstName string `gorm:"column:first_name"`
}

func (recipient) TableName() string { return "users" }

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := w.Svc.Claim(w.ID)
			if err != nil {
				log.Error().Err(err).Msg("notification claim failed")
				continue
			}
			if n == nil {
				continue
			}
			w.handle(n)
		}
	}
}

func (w *Worker) handle(n *Notification) {
	var rcpt recipient
	if err := w.DB.First(&rcpt, n.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// user deleted since enqueue; nothing to deliver
			_ = w.Svc.MarkSent(n.ID)
			return
		}
		w.retry(n, "recipient lookup failed")
		return
	}

	subject, body, err := w.compose(n, rcpt)
	if err != nil {
		_ = w.Svc.MarkFailed(n.ID, err.Error())
		return
	}

	if err := w.Mailer.Send(rcpt.Email, subject, body); err != nil {
		w.retry(n, err.Error())
		return
	}
	_ = w.Svc.MarkSent(n.ID)
}

func (w *Worker) compose(n *Notification, rcpt recipient) (subject, body string, err error) {
	name := rcpt.FirstName
	if name == "" {
		name = rcpt.Username
	}

	switch n.Kind {
	case KindWelcome:
		subject = "Welcome to DiscoverMe!"
		body = fmt.Sprintf("Hi %s,\n\nThank you for joining DiscoverMe! Log in at %s.", name, w.LoginURL)
	case KindCongratulations:
		var p struct {
			Title string `json:"title"`
		}
		if err := json.Unmarshal(n.Payload, &p); err != nil {
			return "", "", fmt.Errorf("bad payload: %w", err)
		}
		subject = "Congratulations!"
		body = fmt.Sprintf("Hi %s,\n\nYou completed %q. Keep it up!", name, p.Title)
	case KindPasswordChanged:
		subject = "Your DiscoverMe password was changed"
		body = fmt.Sprintf("Hi %s,\n\nYour password was just changed. If this wasn't you, reset it at %s.", name, w.LoginURL)
	default:
		return "", "", fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	return subject, body, nil
}

func (w *Worker) retry(n *Notification, errMsg string) {
	attempts := n.Attempts + 1
	if attempts >= n.MaxAttempts {
		_ = w.Svc.MarkFailed(n.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Svc.RetryLater(n.ID, attempts, next, errMsg)
}
