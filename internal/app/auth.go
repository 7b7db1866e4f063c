package app

import (
	"context"

	"catalog/internal/cache"
	"catalog/internal/models"
)

// Session returns the active session, or nil when anonymous.
func (a *App) Session() *models.Session {
	return a.sessions.Current()
}

// Login authenticates against the users collection.
func (a *App) Login(ctx context.Context, email, password string) (models.Session, error) {
	return a.sessions.Login(ctx, email, password)
}

// Register creates a new account and signs it in. The users collection was
// mutated, so its cache key is invalidated.
func (a *App) Register(ctx context.Context, email, password, name string, role models.Role) (models.Session, error) {
	s, err := a.sessions.Register(ctx, email, password, name, role)
	if err != nil {
		return models.Session{}, err
	}
	a.cache.Invalidate(cache.CollectionKey(resourceUsers))
	return s, nil
}

// Logout returns to the anonymous state and clears the persisted session.
func (a *App) Logout(ctx context.Context) {
	a.sessions.Logout(ctx)
}
