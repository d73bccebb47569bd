package notify

import "time"

// Notification kinds.
const (
	KindWelcome         = "WELCOME"
	KindCongratulations = "CONGRATULATIONS"
	KindPasswordChanged = "PASSWORD_CHANGED"
)

// Notification is an outbox row. Delivery is best effort: rows are claimed by
// the worker, retried with backoff, and eventually marked FAILED without ever
// affecting the write that produced them.
type Notification struct {
	ID     uint64 `gorm:"primaryKey"`
	UserID uint64 `gorm:"index;not null"`

	Kind    string `gorm:"type:text;not null"`
	Payload []byte `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	RunAt  time.Time `gorm:"index;not null"`
	Status string    `gorm:"index;not null;default:'PENDING'"` // PENDING/RUNNING/SENT/FAILED

	Attempts    int `gorm:"not null;default:0"`
	MaxAttempts int `gorm:"not null;default:8"`

	LockedBy *string    `gorm:"type:text"`
	LockedAt *time.Time `gorm:"type:timestamptz"`

	LastError *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
