package notify

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Service enqueues notification events. It satisfies the Notifier interfaces
// declared by the user and goal packages.
type Service struct {
	DB *gorm.DB
}

func (s *Service) Welcome(ctx context.Context, userID uint64) error {
	return s.enqueue(ctx, userID, KindWelcome, nil)
}

func (s *Service) PasswordChanged(ctx context.Context, userID uint64) error {
	return s.enqueue(ctx, userID, KindPasswordChanged, nil)
}

func (s *Service) Congratulations(ctx context.Context, userID uint64, title string) error {
	return s.enqueue(ctx, userID, KindCongratulations, map[string]any{"title": title})
}

func (s *Service) enqueue(ctx context.Context, userID uint64, kind string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n := Notification{
		UserID:  userID,
		Kind:    kind,
		Payload: payload,
		RunAt:   time.Now(),
		Status:  "PENDING",
	}
	return s.DB.WithContext(ctx).Create(&n).Error
}

// Claim picks one due notification atomically using FOR UPDATE SKIP LOCKED,
// requeueing rows stuck in RUNNING first. Postgres only.
func (s *Service) Claim(workerID string) (*Notification, error) {
	var n Notification
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		tx.Exec(`
update notifications
set status='PENDING', locked_by=null, locked_at=null, updated_at=now()
where status='RUNNING' and locked_at is not null and locked_at < now() - interval '5 minutes'
`)

		q := tx.Raw(`
with cte as (
  select id
  from notifications
  where status='PENDING' and run_at <= now()
  order by run_at asc
  for update skip locked
  limit 1
)
update notifications
set status='RUNNING', locked_by=?, locked_at=now(), updated_at=now()
where id in (select id from cte)
returning *;
`, workerID)

		return q.Scan(&n).Error
	})
	if err != nil {
		return nil, err
	}
	if n.ID == 0 {
		return nil, nil
	}
	return &n, nil
}

func (s *Service) MarkSent(id uint64) error {
	return s.DB.Exec(`update notifications set status='SENT', updated_at=now() where id=?`, id).Error
}

func (s *Service) MarkFailed(id uint64, errMsg string) error {
	return s.DB.Exec(`update notifications set status='FAILED', last_error=?, updated_at=now() where id=?`, errMsg, id).Error
}

func (s *Service) RetryLater(id uint64, attempts int, runAt time.Time, errMsg string) error {
	return s.DB.Exec(`
update notifications
set status='PENDING',
    attempts=?,
    run_at=?,
    locked_by=null,
    locked_at=null,
    last_error=?,
    updated_at=now()
where id=?`, attempts, runAt, errMsg, id).Error
}
