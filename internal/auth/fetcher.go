package auth

import (
	"context"

	"github.com/HobbyShelf/HS-Backend/internal/middleware"
)

// SessionInfo adapts the session store to the guard's fetcher interface.
type SessionInfo struct {
	Sessions SessionStore
}

func (si SessionInfo) FindSessionByToken(token string) (middleware.SessionData, error) {
	session, err := si.Sessions.FindByToken(context.Background(), token)
	if err != nil {
		return middleware.SessionData{}, err
	}

	return middleware.SessionData{
		Username:   session.Username,
		IsLoggedIn: session.IsLoggedIn,
		ExpiresAt:  session.ExpiresAt,
	}, nil
}
