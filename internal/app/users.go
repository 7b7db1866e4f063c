package app

import (
	"context"

	"catalog/internal/cache"
	"catalog/internal/models"
)

// UserDraft carries the caller-editable user fields for the create path.
type UserDraft struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// ListUsers returns the users collection through the cache.
func (a *App) ListUsers(ctx context.Context) ([]models.User, error) {
	entry, err := a.cache.Read(ctx, cache.CollectionKey(resourceUsers), func(ctx context.Context) (any, error) {
		return a.users.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	users, _ := entry.Data.([]models.User)
	return users, nil
}

// GetUser returns a single user through the cache.
func (a *App) GetUser(ctx context.Context, id string) (models.User, error) {
	entry, err := a.cache.Read(ctx, cache.RecordKey(resourceUsers, id), func(ctx context.Context) (any, error) {
		return a.users.Get(ctx, id)
	})
	if err != nil {
		return models.User{}, err
	}
	user, _ := entry.Data.(models.User)
	return user, nil
}

// CreateUser allocates the next user id, submits the record, and invalidates
// the affected cache keys.
func (a *App) CreateUser(ctx context.Context, draft UserDraft) (models.User, error) {
	id, err := a.alloc.NextUserID(ctx)
	if err != nil {
		return models.User{}, err
	}

	created, err := a.users.Create(ctx, models.User{
		ID:       id,
		Name:     draft.Name,
		Email:    draft.Email,
		Password: draft.Password,
		Role:     draft.Role,
	})
	if err != nil {
		return models.User{}, err
	}

	a.cache.InvalidateRecord(resourceUsers, created.ID)
	return created, nil
}

// UpdateUser replaces a user record and invalidates the affected cache keys.
func (a *App) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	updated, err := a.users.Update(ctx, user.ID, user)
	if err != nil {
		return models.User{}, err
	}
	a.cache.InvalidateRecord(resourceUsers, user.ID)
	return updated, nil
}

// DeleteUser removes a user and invalidates the affected cache keys.
func (a *App) DeleteUser(ctx context.Context, id string) error {
	if err := a.users.Remove(ctx, id); err != nil {
		return err
	}
	a.cache.InvalidateRecord(resourceUsers, id)
	return nil
}
