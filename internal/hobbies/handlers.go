package hobbies

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/HobbyShelf/HS-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const (
	retryMessage = "Something went wrong. Please try again."
	dateLayout   = "2006-01-02"
)

type Handler struct {
	Repo  Repository
	Users users.Repository
	Views *views.Renderer
	Log   *slog.Logger
}

func NewHandler(repo Repository, userRepo users.Repository, v *views.Renderer, log *slog.Logger) *Handler {
	return &Handler{Repo: repo, Users: userRepo, Views: v, Log: log}
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		h.renderUsersListError(w, http.StatusNotFound, "User not found")
		return
	}

	user, ok := h.fetchUser(w, r, userID)
	if !ok {
		return
	}

	hs, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		h.Log.Error("failed to list hobbies", "user_id", userID, "err", err)
		h.Views.Render(w, http.StatusInternalServerError, "hobbies.html", map[string]any{
			"User":    user,
			"Hobbies": []Hobby{},
			"Error":   "Unable to load hobbies. Please try again.",
		})
		return
	}

	h.Views.Render(w, http.StatusOK, "hobbies.html", map[string]any{
		"User":    user,
		"Hobbies": hs,
	})
}

func (h *Handler) AddFormHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		h.renderUsersListError(w, http.StatusNotFound, "User not found")
		return
	}

	user, ok := h.fetchUser(w, r, userID)
	if !ok {
		return
	}

	h.Views.Render(w, http.StatusOK, "hobby_add.html", map[string]any{"User": user})
}

func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		h.renderUsersListError(w, http.StatusNotFound, "User not found")
		return
	}

	description := strings.TrimSpace(r.FormValue("hobbyDescription"))
	dateStr := r.FormValue("dateLearned")

	if description == "" || dateStr == "" {
		h.renderFormError(w, r, userID, http.StatusBadRequest,
			"Hobby and date learned are required", description, dateStr)
		return
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		h.renderFormError(w, r, userID, http.StatusBadRequest,
			"Date learned must be a valid date", description, dateStr)
		return
	}

	hobby := &Hobby{UserID: userID, HobbyDescription: description, DateLearned: date}
	if err := h.Repo.Create(r.Context(), hobby); err != nil {
		h.Log.Error("failed to create hobby", "user_id", userID, "err", err)
		h.renderFormError(w, r, userID, http.StatusInternalServerError,
			retryMessage, description, dateStr)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/displayHobbies/%d", userID), http.StatusFound)
}

func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userId"))
	if err != nil {
		h.renderUsersListError(w, http.StatusNotFound, "User not found")
		return
	}
	hobbyID, err := parseID(chi.URLParam(r, "hobbyId"))
	if err != nil {
		h.renderUsersListError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.Repo.DeleteByUserAndHobby(r.Context(), userID, hobbyID); err != nil {
		h.Log.Error("failed to delete hobby", "user_id", userID, "hobby_id", hobbyID, "err", err)

		user, uerr := h.Users.FindByID(r.Context(), userID)
		if uerr != nil {
			if errors.Is(uerr, gorm.ErrRecordNotFound) {
				h.renderUsersListError(w, http.StatusNotFound, "User not found")
				return
			}
			h.Log.Error("failed to refetch user", "user_id", userID, "err", uerr)
			h.renderUsersListError(w, http.StatusInternalServerError, retryMessage)
			return
		}

		hs, herr := h.Repo.ListByUser(r.Context(), userID)
		if herr != nil {
			h.Log.Error("failed to refetch hobbies", "user_id", userID, "err", herr)
			h.renderUsersListError(w, http.StatusInternalServerError, retryMessage)
			return
		}

		h.Views.Render(w, http.StatusInternalServerError, "hobbies.html", map[string]any{
			"User":    user,
			"Hobbies": hs,
			"Error":   "Unable to delete hobby. Please try again.",
		})
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/displayHobbies/%d", userID), http.StatusFound)
}

// fetchUser loads the owning user, writing the list-view 404/500 response
// itself when that fails.
func (h *Handler) fetchUser(w http.ResponseWriter, r *http.Request, userID uint) (*users.User, bool) {
	user, err := h.Users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderUsersListError(w, http.StatusNotFound, "User not found")
			return nil, false
		}
		h.Log.Error("failed to fetch user", "user_id", userID, "err", err)
		h.renderUsersListError(w, http.StatusInternalServerError, retryMessage)
		return nil, false
	}
	return user, true
}

// renderFormError refetches the owning user and re-renders the add form with
// the submitted values preserved; the user vanishing mid-flight cascades to
// the list view.
func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, userID uint, status int, msg, description, dateStr string) {
	user, ok := h.fetchUser(w, r, userID)
	if !ok {
		return
	}

	h.Views.Render(w, status, "hobby_add.html", map[string]any{
		"User":             user,
		"Error":            msg,
		"HobbyDescription": description,
		"DateLearned":      dateStr,
	})
}

func (h *Handler) renderUsersListError(w http.ResponseWriter, status int, msg string) {
	h.Views.Render(w, status, "users.html", map[string]any{"Users": []users.User{}, "Error": msg})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
