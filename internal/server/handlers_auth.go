package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}
	if req.ConfirmPassword != "" && req.Password != req.ConfirmPassword {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "passwords do not match"})
		return
	}
	if len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password must be at least 6 characters long"})
		return
	}

	if _, err := s.db.GetUserByEmail(r.Context(), email); err == nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "an account with this email already exists"})
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		s.log.Error("user lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("password hash failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = nameFromEmail(email)
	}

	user, err := s.db.CreateUser(r.Context(), email, name, string(hash))
	if err != nil {
		s.log.Error("user creation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	if !s.openSession(w, r, user.ID) {
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		// Same response as a bad password: do not reveal which accounts exist.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if !s.openSession(w, r, user.ID) {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := s.db.DeleteLoginSession(r.Context(), cookie.Value); err != nil {
			s.log.Error("logout failed", "error", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type magicLinkRequest struct {
	Email string `json:"email"`
}

// handleRequestMagicLink issues a single-use login link and mails it. The
// response does not reveal whether the address has an account.
func (s *Server) handleRequestMagicLink(w http.ResponseWriter, r *http.Request) {
	var req magicLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	email := normalizeEmail(req.Email)
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email is required"})
		return
	}

	if _, err := s.db.GetUserByEmail(r.Context(), email); err == nil {
		token, err := s.db.CreateMagicLink(r.Context(), email)
		if err != nil {
			s.log.Error("magic link creation failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not issue login link"})
			return
		}
		loginURL := fmt.Sprintf("%s/api/v1/auth/magic/%s", s.baseURL, token)
		if err := s.mailer.SendMagicLink(r.Context(), email, loginURL); err != nil {
			s.log.Error("magic link mail failed", "error", err)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "if that account exists, a login link is on its way"})
}

func (s *Server) handleConsumeMagicLink(w http.ResponseWriter, r *http.Request) {
	token := pathParam(r, "token")

	email, err := s.db.ConsumeMagicLink(r.Context(), token, s.magicTTL)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "login link is invalid or expired"})
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), email)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "login link is invalid or expired"})
		return
	}

	if !s.openSession(w, r, user.ID) {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleRotateShareToken(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	token, err := s.db.RotateShareToken(r.Context(), user.ID)
	if err != nil {
		s.log.Error("share token rotation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not rotate share token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"share_token": token,
		"share_url":   s.shareURL(token),
	})
}

// openSession creates a login session and sets the cookie. On failure an
// error response has already been written.
func (s *Server) openSession(w http.ResponseWriter, r *http.Request, userID int) bool {
	token, err := s.db.CreateLoginSession(r.Context(), userID, s.sessionTTL)
	if err != nil {
		s.log.Error("session creation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not open session"})
		return false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.sessionTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return true
}

func (s *Server) shareURL(token string) string {
	return fmt.Sprintf("%s/api/v1/coach/%s", s.baseURL, token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// nameFromEmail derives a display name from the address local part.
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Lifter"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
