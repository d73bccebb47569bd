package journal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"discoverme/internal/domain"
)

func testService(t *testing.T) *Service {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&Entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return &Service{DB: gdb}
}

func TestValidation(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"missing title", Input{Content: "text"}, "title"},
		{"long title", Input{Title: strings.Repeat("x", 101), Content: "text"}, "title"},
		{"missing content", Input{Title: "ok"}, "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tc.in)
			if ve, ok := domain.AsValidation(err); !ok || ve.Field != tc.field {
				t.Fatalf("Create error = %v, want validation error on %s", err, tc.field)
			}
		})
	}

	if _, err := svc.Create(ctx, 1, Input{Title: strings.Repeat("x", 100), Content: "text"}); err != nil {
		t.Fatalf("Create with 100-char title: %v", err)
	}
}

func TestOwnerScoping(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, 1, Input{Title: "Morning pages", Content: "Slept well."})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Get(ctx, 2, e.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get as other user error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, 2, e.ID, Input{Title: "Hijacked", Content: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update as other user error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, 2, e.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete as other user error = %v, want ErrNotFound", err)
	}

	got, err := svc.Get(ctx, 1, e.ID)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if got.Title != "Morning pages" {
		t.Fatalf("Title = %q, survived foreign update?", got.Title)
	}
}
