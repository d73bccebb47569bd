package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"discoverme/internal/assessment"
	"discoverme/internal/auth"
	"discoverme/internal/config"
	"discoverme/internal/goal"
	"discoverme/internal/http/handler"
	mw "discoverme/internal/http/middleware"
	"discoverme/internal/insight"
	"discoverme/internal/journal"
	"discoverme/internal/mood"
	"discoverme/internal/notify"
	"discoverme/internal/suggestion"
	"discoverme/internal/user"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, notifier *notify.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if cfg.RateLimitPerMinute > 0 {
		r.Use(httprate.Limit(cfg.RateLimitPerMinute, time.Minute))
	}

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	userSvc := &user.Service{DB: db, Notifier: notifier}
	moodSvc := &mood.Service{DB: db}
	journalSvc := &journal.Service{DB: db}
	goalSvc := &goal.Service{DB: db, Notifier: notifier}
	suggestionSvc := &suggestion.Service{DB: db}
	insightSvc := &insight.Service{DB: db, Moods: moodSvc}
	assessmentSvc := &assessment.Service{DB: db}

	ah := &handler.AuthHandler{Users: userSvc, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)
	r.Post("/auth/refresh", ah.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		me := &handler.MeHandler{Users: userSvc}
		r.Get("/me", me.Me)
		r.Get("/me/profile", me.Profile)
		r.Patch("/me/profile", me.UpdateProfile)
		r.Post("/me/password", me.ChangePassword)

		mh := &handler.MoodHandler{Svc: moodSvc}
		r.Route("/moods", func(r chi.Router) {
			r.Get("/", mh.List)
			r.Get("/{id}", mh.Get)

			// catalog mutation is admin only
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Post("/", mh.Create)
				r.Put("/{id}", mh.Update)
				r.Delete("/{id}", mh.Delete)
			})
		})

		mlh := &handler.MoodLogHandler{Svc: moodSvc}
		r.Route("/moodlogs", func(r chi.Router) {
			r.Post("/", mlh.Create)
			r.Get("/", mlh.List)
			r.Get("/{id}", mlh.Get)
			r.Put("/{id}", mlh.Update)
			r.Delete("/{id}", mlh.Delete)
		})

		jh := &handler.JournalHandler{Svc: journalSvc}
		r.Route("/journalentries", func(r chi.Router) {
			r.Post("/", jh.Create)
			r.Get("/", jh.List)
			r.Get("/{id}", jh.Get)
			r.Put("/{id}", jh.Update)
			r.Delete("/{id}", jh.Delete)
		})

		gh := &handler.GoalHandler{Svc: goalSvc}
		th := &handler.TaskHandler{Svc: goalSvc}
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", gh.Create)
			r.Get("/", gh.List)
			r.Get("/{id}", gh.Get)
			r.Put("/{id}", gh.Update)
			r.Delete("/{id}", gh.Delete)

			r.Post("/{id}/tasks", th.Create)
			r.Get("/{id}/tasks", th.ListForGoal)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/{id}", th.Get)
			r.Put("/{id}", th.Update)
			r.Delete("/{id}", th.Delete)
		})

		sh := &handler.SuggestionHandler{Svc: suggestionSvc}
		r.Route("/suggestions", func(r chi.Router) {
			r.Get("/", sh.List)
			r.Get("/{id}", sh.Get)
			r.Put("/{id}", sh.Update)
			r.Delete("/{id}", sh.Delete)
		})

		ih := &handler.InsightHandler{Svc: insightSvc}
		r.Route("/insights", func(r chi.Router) {
			r.Post("/", ih.Create)
			r.Post("/generate", ih.Generate)
			r.Get("/", ih.List)
			r.Get("/{id}", ih.Get)
			r.Delete("/{id}", ih.Delete)
		})

		asmh := &handler.AssessmentHandler{Svc: assessmentSvc}
		r.Route("/assessments/{instrument}", func(r chi.Router) {
			r.Post("/", asmh.Create)
			r.Get("/", asmh.List)
			r.Get("/{id}", asmh.Get)
			r.Put("/{id}", asmh.Update)
			r.Delete("/{id}", asmh.Delete)
		})
	})

	return r
}
