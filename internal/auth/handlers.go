package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/HobbyShelf/HS-Backend/internal/views"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionTTL = 6 * time.Hour

type Handler struct {
	Users    users.Repository
	Sessions SessionStore
	Views    *views.Renderer
	Log      *slog.Logger
	Secure   bool
}

func NewHandler(userRepo users.Repository, sessions SessionStore, v *views.Renderer, log *slog.Logger, secure bool) *Handler {
	return &Handler{Users: userRepo, Sessions: sessions, Views: v, Log: log, Secure: secure}
}

func (h *Handler) LoginFormHandler(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "login.html", map[string]any{})
}

// LoginHandler matches username and password by exact string equality. A
// lookup failure is answered exactly like a credential mismatch so nothing
// internal leaks; the cause still goes to the log.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Users.FindByCredentials(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			h.Log.Error("login lookup failed", "err", err)
		}
		h.invalidLogin(w)
		return
	}

	session := &Session{
		Token:      uuid.New().String(),
		Username:   user.Username,
		IsLoggedIn: true,
		ExpiresAt:  time.Now().Add(sessionTTL),
	}
	if err := h.Sessions.Create(r.Context(), session); err != nil {
		h.Log.Error("failed to create session", "err", err)
		h.invalidLogin(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Secure,
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

// LogoutHandler tears the session down unconditionally and always ends up
// back home; a failed delete is logged, never surfaced.
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		if err := h.Sessions.DeleteByToken(r.Context(), cookie.Value); err != nil {
			h.Log.Error("failed to delete session", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) invalidLogin(w http.ResponseWriter) {
	h.Views.Render(w, http.StatusBadRequest, "login.html", map[string]any{"Error": "Invalid login"})
}
