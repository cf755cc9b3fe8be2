package users

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/HobbyShelf/HS-Backend/internal/storage"
	"github.com/HobbyShelf/HS-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

const retryMessage = "Something went wrong. Please try again."

type Handler struct {
	Repo  Repository
	Store storage.Store
	Views *views.Renderer
	Log   *slog.Logger
}

func NewHandler(repo Repository, store storage.Store, v *views.Renderer, log *slog.Logger) *Handler {
	return &Handler{Repo: repo, Store: store, Views: v, Log: log}
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	us, err := h.Repo.All(r.Context())
	if err != nil {
		h.Log.Error("failed to list users", "err", err)
		h.renderListError(w, http.StatusInternalServerError, "Unable to load users. Please try again.")
		return
	}

	h.Views.Render(w, http.StatusOK, "users.html", map[string]any{"Users": us})
}

func (h *Handler) AddFormHandler(w http.ResponseWriter, r *http.Request) {
	h.Views.Render(w, http.StatusOK, "user_add.html", map[string]any{})
}

func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.Views.Render(w, http.StatusBadRequest, "user_add.html", map[string]any{
			"Error":    "Username and password are required",
			"Username": username,
		})
		return
	}

	var profileImage *string
	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		ref, err := h.Store.Save(r.Context(), header.Filename, file)
		if err != nil {
			h.Log.Error("failed to store profile image", "err", err)
			h.Views.Render(w, http.StatusInternalServerError, "user_add.html", map[string]any{
				"Error":    retryMessage,
				"Username": username,
			})
			return
		}
		profileImage = &ref
	}

	user := &User{Username: username, Password: password, ProfileImage: profileImage}
	if err := h.Repo.Create(r.Context(), user); err != nil {
		// Duplicate usernames land here; the raw error stays in the logs.
		h.Log.Error("failed to create user", "username", username, "err", err)
		h.Views.Render(w, http.StatusInternalServerError, "user_add.html", map[string]any{
			"Error":    retryMessage,
			"Username": username,
		})
		return
	}

	http.Redirect(w, r, "/users", http.StatusFound)
}

func (h *Handler) EditFormHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderListError(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderListError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("failed to fetch user", "id", id, "err", err)
		h.renderListError(w, http.StatusInternalServerError, retryMessage)
		return
	}

	h.Views.Render(w, http.StatusOK, "user_edit.html", map[string]any{"User": user})
}

func (h *Handler) EditHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.renderListError(w, http.StatusNotFound, "User not found")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		// Refetch so the form re-renders with current display state.
		h.renderEditError(w, r, id, http.StatusBadRequest, "Username and password are required")
		return
	}

	var profileImage *string
	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		ref, err := h.Store.Save(r.Context(), header.Filename, file)
		if err != nil {
			h.Log.Error("failed to store profile image", "id", id, "err", err)
			h.renderEditError(w, r, id, http.StatusInternalServerError, retryMessage)
			return
		}
		profileImage = &ref
	} else if existing := r.FormValue("existingImage"); existing != "" {
		profileImage = &existing
	}

	affected, err := h.Repo.Update(r.Context(), &User{
		ID:           id,
		Username:     username,
		Password:     password,
		ProfileImage: profileImage,
	})
	if err != nil {
		h.Log.Error("failed to update user", "id", id, "err", err)
		h.renderEditError(w, r, id, http.StatusInternalServerError, retryMessage)
		return
	}
	if affected == 0 {
		h.renderListError(w, http.StatusNotFound, "User not found")
		return
	}

	http.Redirect(w, r, "/users", http.StatusFound)
}

// DeleteHandler answers failures with a JSON body, unlike every other route
// in the app. Documented source behavior, kept as-is.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, "Failed to delete user")
		return
	}

	if err := h.Repo.Delete(r.Context(), id); err != nil {
		h.Log.Error("failed to delete user", "id", id, "err", err)
		writeJSONError(w, "Failed to delete user")
		return
	}

	http.Redirect(w, r, "/users", http.StatusFound)
}

// renderEditError refetches the user and re-renders the edit form. When the
// refetch itself fails the response falls back to the list view.
func (h *Handler) renderEditError(w http.ResponseWriter, r *http.Request, id uint, status int, msg string) {
	user, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.renderListError(w, http.StatusNotFound, "User not found")
			return
		}
		h.Log.Error("failed to refetch user", "id", id, "err", err)
		h.renderListError(w, http.StatusInternalServerError, retryMessage)
		return
	}

	h.Views.Render(w, status, "user_edit.html", map[string]any{"User": user, "Error": msg})
}

func (h *Handler) renderListError(w http.ResponseWriter, status int, msg string) {
	h.Views.Render(w, status, "users.html", map[string]any{"Users": []User{}, "Error": msg})
}

func writeJSONError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
