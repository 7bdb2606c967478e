package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. ShareToken is the unguessable key for the
// read-only coach view.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	ShareToken   string    `json:"share_token"`
	CreatedAt    time.Time `json:"created_at"`
}

// WorkoutLog is one logged workout, tied to the point in the program it
// was performed at.
type WorkoutLog struct {
	ID          uuid.UUID `json:"id"`
	UserID      int       `json:"user_id"`
	Date        time.Time `json:"date"`
	Name        string    `json:"name"`
	WeekInCycle int       `json:"week_in_cycle"`
	WeekType    string    `json:"week_type"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}

// SetLog is one performed set within a workout. RPE is optional.
type SetLog struct {
	ID           int       `json:"id"`
	WorkoutLogID uuid.UUID `json:"workout_log_id"`
	ExerciseName string    `json:"exercise_name"`
	SetNumber    int       `json:"set_number"`
	Reps         int       `json:"reps"`
	WeightKg     float64   `json:"weight_kg"`
	RPE          *float64  `json:"rpe,omitempty"`
}

// LoginSession is a server-side session referenced by an opaque cookie
// token.
type LoginSession struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MagicLink is a single-use passwordless login token sent by mail.
type MagicLink struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Used      bool      `json:"used"`
}
