package users_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/HobbyShelf/HS-Backend/internal/users"
	"github.com/HobbyShelf/HS-Backend/internal/views"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockRepository is a mock implementation of users.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) All(ctx context.Context) ([]users.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]users.User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) FindByCredentials(ctx context.Context, username, password string) (*users.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, user *users.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeStore records saved filenames and returns a fixed reference.
type fakeStore struct {
	ref   string
	err   error
	saved []string
}

func (s *fakeStore) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	s.saved = append(s.saved, originalFilename)
	if s.err != nil {
		return "", s.err
	}
	return s.ref, nil
}

func newRouter(t *testing.T, repo *MockRepository, store *fakeStore) *chi.Mux {
	t.Helper()
	v, err := views.New()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := users.NewHandler(repo, store, v, logger)

	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func postForm(r http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListHandler(t *testing.T) {
	repo := new(MockRepository)
	img := "/images/uploads/greg.png"
	repo.On("All", mock.Anything).Return([]users.User{
		{ID: 1, Username: "greg", ProfileImage: &img},
		{ID: 2, Username: "sara"},
	}, nil)

	r := newRouter(t, repo, &fakeStore{})
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "greg")
	assert.Contains(t, rec.Body.String(), "sara")
	repo.AssertExpectations(t)
}

func TestListHandler_QueryFailureIsSoft(t *testing.T) {
	repo := new(MockRepository)
	repo.On("All", mock.Anything).Return(nil, errors.New("connection refused"))

	r := newRouter(t, repo, &fakeStore{})
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unable to load users")
	// Raw database error must never reach the page.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAddHandler_MissingUsername(t *testing.T) {
	repo := new(MockRepository)
	r := newRouter(t, repo, &fakeStore{})

	rec := postForm(r, "/addUser", url.Values{"username": {""}, "password": {"x"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password are required")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddHandler_NoFileInsertsNullImage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.Username == "greg2" && u.Password == "x" && u.ProfileImage == nil
	})).Return(nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/addUser", url.Values{"username": {"greg2"}, "password": {"x"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	repo.AssertExpectations(t)
}

func TestAddHandler_WithFileStoresReference(t *testing.T) {
	store := &fakeStore{ref: "/images/uploads/avatar.png"}
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.ProfileImage != nil && *u.ProfileImage == "/images/uploads/avatar.png"
	})).Return(nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("username", "greg2"))
	require.NoError(t, mw.WriteField("password", "x"))
	fw, err := mw.CreateFormFile("profileImage", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := newRouter(t, repo, store)
	req := httptest.NewRequest(http.MethodPost, "/addUser", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, []string{"avatar.png"}, store.saved)
	repo.AssertExpectations(t)
}

func TestAddHandler_InsertFailure(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New(`duplicate key value violates unique constraint "idx_users_username"`))

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/addUser", url.Values{"username": {"greg"}, "password": {"x"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "duplicate key")
}

func TestEditFormHandler_NotFound(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	r := newRouter(t, repo, &fakeStore{})
	req := httptest.NewRequest(http.MethodGet, "/editUser/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestEditHandler_ValidationRefetchesUser(t *testing.T) {
	repo := new(MockRepository)
	repo.On("FindByID", mock.Anything, uint(7)).Return(&users.User{ID: 7, Username: "greg"}, nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/editUser/7", url.Values{"username": {"greg"}, "password": {""}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Username and password are required")
	assert.Contains(t, rec.Body.String(), "greg")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestEditHandler_PreservesExistingImage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.ID == 7 && u.ProfileImage != nil && *u.ProfileImage == "/images/uploads/old.png"
	})).Return(int64(1), nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/editUser/7", url.Values{
		"username":      {"greg"},
		"password":      {"admin"},
		"existingImage": {"/images/uploads/old.png"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	repo.AssertExpectations(t)
}

func TestEditHandler_EmptyExistingImageWritesNull(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *users.User) bool {
		return u.ProfileImage == nil
	})).Return(int64(1), nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/editUser/7", url.Values{
		"username":      {"greg"},
		"password":      {"admin"},
		"existingImage": {""},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	repo.AssertExpectations(t)
}

func TestEditHandler_ZeroRowsAffected(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/editUser/99", url.Values{"username": {"gone"}, "password": {"x"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestEditHandler_UpdateFailureRefetchesForm(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Update", mock.Anything, mock.Anything).Return(int64(0), errors.New("deadlock detected"))
	repo.On("FindByID", mock.Anything, uint(7)).Return(&users.User{ID: 7, Username: "greg"}, nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/editUser/7", url.Values{"username": {"greg"}, "password": {"admin"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "deadlock")
	repo.AssertExpectations(t)
}

func TestDeleteHandler_RedirectsOnSuccess(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, uint(3)).Return(nil)

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/deleteUser/3", url.Values{})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	repo.AssertExpectations(t)
}

// Delete is the one route that answers failures as JSON instead of a
// rendered view.
func TestDeleteHandler_FailureIsJSON(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Delete", mock.Anything, uint(3)).Return(errors.New("boom"))

	r := newRouter(t, repo, &fakeStore{})
	rec := postForm(r, "/deleteUser/3", url.Values{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "Failed to delete user"}`, rec.Body.String())
}
