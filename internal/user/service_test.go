package user

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"discoverme/internal/auth"
	"discoverme/internal/domain"
	"discoverme/internal/suggestion"
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
	if err := gdb.AutoMigrate(&User{}, &Profile{}, &suggestion.Suggestion{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// recordingNotifier counts dispatches; failingNotifier always errors.
type recordingNotifier struct {
	welcomes  int
	passwords int
}

func (n *recordingNotifier) Welcome(context.Context, uint64) error {
	n.welcomes++
	return nil
}

func (n *recordingNotifier) PasswordChanged(context.Context, uint64) error {
	n.passwords++
	return nil
}

type failingNotifier struct{}

func (failingNotifier) Welcome(context.Context, uint64) error {
	return errors.New("smtp down")
}

func (failingNotifier) PasswordChanged(context.Context, uint64) error {
	return errors.New("smtp down")
}

func validInput() RegisterInput {
	return RegisterInput{
		Username: "bad_user-1",
		Email:    "someone@example.com",
		Password: "password123",
	}
}

func TestRegisterCreatesProfileAndSuggestions(t *testing.T) {
	gdb := testDB(t)
	n := &recordingNotifier{}
	svc := &Service{DB: gdb, Notifier: n}

	u, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var profiles []Profile
	if err := gdb.Where("user_id = ?", u.ID).Find(&profiles).Error; err != nil {
		t.Fatalf("load profiles: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("profiles = %d, want exactly 1", len(profiles))
	}
	if profiles[0].FirstLogin {
		t.Fatal("first_login still true after registration")
	}

	var count int64
	if err := gdb.Model(&suggestion.Suggestion{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		t.Fatalf("count suggestions: %v", err)
	}
	want := int64(len(suggestion.DefaultTexts) + len(suggestion.FirstLoginTexts))
	if count != want {
		t.Fatalf("suggestions = %d, want %d", count, want)
	}

	if n.welcomes != 1 {
		t.Fatalf("welcome notifications = %d, want 1", n.welcomes)
	}
}

func TestRegisterSurvivesNotificationFailure(t *testing.T) {
	gdb := testDB(t)
	svc := &Service{DB: gdb, Notifier: failingNotifier{}}

	u, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// user, profile and suggestions are all committed despite the failure
	if _, err := svc.Get(context.Background(), u.ID); err != nil {
		t.Fatalf("Get: %v", err)
	}
	var count int64
	if err := gdb.Model(&suggestion.Suggestion{}).Where("user_id = ?", u.ID).Count(&count).Error; err != nil {
		t.Fatalf("count suggestions: %v", err)
	}
	if count == 0 {
		t.Fatal("no suggestions created")
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RegisterInput)
		wantField string
	}{
		{
			name:      "username with space",
			mutate:    func(in *RegisterInput) { in.Username = "bad user!" },
			wantField: "username",
		},
		{
			name:      "empty username",
			mutate:    func(in *RegisterInput) { in.Username = "" },
			wantField: "username",
		},
		{
			name:      "bad email",
			mutate:    func(in *RegisterInput) { in.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "short password",
			mutate:    func(in *RegisterInput) { in.Password = "short" },
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &Service{DB: testDB(t)}
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			ve, ok := domain.AsValidation(err)
			if !ok {
				t.Fatalf("Register error = %v, want validation error", err)
			}
			if ve.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	dup := validInput()
	dup.Email = "other@example.com"
	if _, err := svc.Register(ctx, dup); err == nil {
		t.Fatal("duplicate username accepted")
	}

	// emails are normalized to lower case, so casing doesn't dodge the check
	dup = validInput()
	dup.Username = "different-user"
	dup.Email = "Someone@Example.COM"
	_, err := svc.Register(ctx, dup)
	ve, ok := domain.AsValidation(err)
	if !ok || ve.Field != "email" {
		t.Fatalf("Register error = %v, want validation error on email", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()

	u, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Authenticate(ctx, "bad_user-1", "password123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("ID = %d, want %d", got.ID, u.ID)
	}

	if _, err := svc.Authenticate(ctx, "bad_user-1", "wrongpass"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("bad password error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "password123"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestChangePassword(t *testing.T) {
	gdb := testDB(t)
	n := &recordingNotifier{}
	svc := &Service{DB: gdb, Notifier: n}
	ctx := context.Background()

	u, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, u.ID, "wrong", "newpassword1"); err == nil {
		t.Fatal("ChangePassword accepted wrong current password")
	}
	if err := svc.ChangePassword(ctx, u.ID, "password123", "tiny"); err == nil {
		t.Fatal("ChangePassword accepted weak new password")
	}

	if err := svc.ChangePassword(ctx, u.ID, "password123", "newpassword1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if n.passwords != 1 {
		t.Fatalf("password-changed notifications = %d, want 1", n.passwords)
	}

	var stored User
	if err := gdb.First(&stored, u.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if !auth.ComparePassword(stored.PasswordHash, "newpassword1") {
		t.Fatal("new password does not verify")
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc := &Service{DB: testDB(t)}
	ctx := context.Background()

	u, err := svc.Register(ctx, validInput())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{
		Location: domain.Some("Berlin"),
		Pronouns: domain.Some("they/them"),
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	// absent fields stay, explicit null clears
	p, err := svc.UpdateProfile(ctx, u.ID, ProfileUpdate{
		Pronouns: domain.Optional[string]{Set: true, Null: true},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if p.Location != "Berlin" {
		t.Fatalf("Location = %q, want %q (absent field must not change)", p.Location, "Berlin")
	}
	if p.Pronouns != "" {
		t.Fatalf("Pronouns = %q, want cleared", p.Pronouns)
	}
}
