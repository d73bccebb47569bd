package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"discoverme/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
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
	if err := gdb.AutoMigrate(&Mood{}, &MoodLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedCatalog(t *testing.T, svc *Service) *Mood {
	t.Helper()
	m, err := svc.CreateCatalog(context.Background(), true, "Happy", "Feeling very happy and content.")
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return m
}

func TestCatalogMutationRequiresAdmin(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()

	if _, err := svc.CreateCatalog(ctx, false, "Happy", "desc"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("CreateCatalog error = %v, want ErrForbidden", err)
	}

	m := seedCatalog(t, svc)
	if _, err := svc.UpdateCatalog(ctx, false, m.ID, "Glad", ""); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("UpdateCatalog error = %v, want ErrForbidden", err)
	}
	if err := svc.DeleteCatalog(ctx, false, m.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("DeleteCatalog error = %v, want ErrForbidden", err)
	}

	// reads are open to everyone authenticated
	if _, err := svc.GetCatalog(ctx, m.ID); err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
}

func TestLogsAreOwnerScoped(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()
	m := seedCatalog(t, svc)

	l, err := svc.CreateLog(ctx, 1, LogInput{MoodID: m.ID, Notes: "a good day"})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}

	// user B sees nothing, and existence is not leaked
	rows, err := svc.ListLogs(ctx, 2)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("other user sees %d logs, want 0", len(rows))
	}
	if _, err := svc.GetLog(ctx, 2, l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetLog as other user error = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteLog(ctx, 2, l.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteLog as other user error = %v, want ErrNotFound", err)
	}

	got, err := svc.GetLog(ctx, 1, l.ID)
	if err != nil {
		t.Fatalf("GetLog as owner: %v", err)
	}
	if got.Mood.MoodType != "Happy" {
		t.Fatalf("Mood.MoodType = %q, want Happy", got.Mood.MoodType)
	}
}

func TestCreateLogRejectsUnknownMood(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	_, err := svc.CreateLog(context.Background(), 1, LogInput{MoodID: 42})
	ve, ok := domain.AsValidation(err)
	if !ok || ve.Field != "mood" {
		t.Fatalf("CreateLog error = %v, want validation error on mood", err)
	}
}

func TestUpdateLogKeepsDateLogged(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()
	m := seedCatalog(t, svc)

	l, err := svc.CreateLog(ctx, 1, LogInput{MoodID: m.ID, Notes: "before"})
	if err != nil {
		t.Fatalf("CreateLog: %v", err)
	}
	logged := l.DateLogged

	time.Sleep(10 * time.Millisecond)

	updated, err := svc.UpdateLog(ctx, 1, l.ID, LogInput{MoodID: m.ID, Notes: "after"})
	if err != nil {
		t.Fatalf("UpdateLog: %v", err)
	}
	if updated.Notes != "after" {
		t.Fatalf("Notes = %q, want %q", updated.Notes, "after")
	}
	if !updated.DateLogged.Equal(logged) {
		t.Fatalf("DateLogged changed on update: %v, want %v", updated.DateLogged, logged)
	}
}

func TestCountLogsSince(t *testing.T) {
	gdb := testDB(t)
	svc := &Service{DB: gdb}
	ctx := context.Background()

	happy := seedCatalog(t, svc)
	anxious, err := svc.CreateCatalog(ctx, true, "Anxious", "Feeling anxious and nervous.")
	if err != nil {
		t.Fatalf("CreateCatalog: %v", err)
	}

	mk := func(userID, moodID uint64, notes string, age time.Duration) {
		l := MoodLog{UserID: userID, MoodID: moodID, Notes: notes, DateLogged: time.Now().Add(-age)}
		if err := gdb.Create(&l).Error; err != nil {
			t.Fatalf("create log: %v", err)
		}
	}

	mk(1, anxious.ID, "work piling up", time.Hour)           // matches mood type
	mk(1, happy.ID, "anxious about the move", time.Hour)     // matches notes
	mk(1, happy.ID, "a calm day", time.Hour)                 // no match
	mk(1, anxious.ID, "old entry", 30*24*time.Hour)          // outside window
	mk(2, anxious.ID, "someone else's entry", time.Hour)     // other user

	n, err := svc.CountLogsSince(ctx, 1, "Anxious", time.Now().Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("CountLogsSince: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}
