package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mail"
	"github.com/claude/liftlog/internal/program"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db        *storage.DB
	scheduler *program.Scheduler
	mailer    mail.Mailer
	log       *slog.Logger

	baseURL    string
	sessionTTL time.Duration
	magicTTL   time.Duration

	router chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, scheduler *program.Scheduler, mailer mail.Mailer, cfg *config.Config, log *slog.Logger) *Server {
	s := &Server{
		db:         db,
		scheduler:  scheduler,
		mailer:     mailer,
		log:        log,
		baseURL:    strings.TrimRight(cfg.Server.BaseURL, "/"),
		sessionTTL: time.Duration(cfg.Auth.SessionTTLHoursOrDefault()) * time.Hour,
		magicTTL:   time.Duration(cfg.Auth.MagicLinkTTLMinutesOrDefault()) * time.Minute,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Public: account creation and login
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/magic-link", s.handleRequestMagicLink)
		r.Get("/auth/magic/{token}", s.handleConsumeMagicLink)

		// Public: the program itself holds no personal data
		r.Get("/program", s.handleProgramInfo)
		r.Get("/program/today", s.handleProgramToday)
		r.Get("/program/day", s.handleProgramDay)
		r.Get("/program/week", s.handleProgramWeek)

		// Public: read-only coach view, keyed by share token
		r.Get("/coach/{token}", s.handleCoachView)
		r.Get("/coach/{token}/workouts/{id}", s.handleCoachWorkout)

		// Session required
		r.Group(func(r chi.Router) {
			r.Use(s.SessionAuth)
			r.Post("/auth/logout", s.handleLogout)
			r.Get("/me", s.handleMe)
			r.Get("/dashboard", s.handleDashboard)
			r.Post("/workouts", s.handleLogWorkout)
			r.Get("/workouts", s.handleHistory)
			r.Get("/workouts/{id}", s.handleGetWorkout)
			r.Delete("/workouts/{id}", s.handleDeleteWorkout)
			r.Post("/share/rotate", s.handleRotateShareToken)
			r.Get("/stats", s.handleStats)
		})
	})
}
