package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"catalog/internal/ident"
	"catalog/internal/models"
)

// ErrInvalidCredentials is returned by Login when no user record matches the
// email and password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegistrationError wraps the resource-client failure that aborted a
// registration.
type RegistrationError struct {
	Cause error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed: %v", e.Cause)
}

func (e *RegistrationError) Unwrap() error { return e.Cause }

// UserDirectory is the slice of the resource client the manager needs.
type UserDirectory interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
}

// Manager owns the single client session. It exposes state and transitions
// but makes no authorization decisions: role-gated surfaces read the session
// role themselves.
type Manager struct {
	users    UserDirectory
	store    Store
	verifier CredentialVerifier
	logger   *zap.Logger

	mu      sync.RWMutex
	current *models.Session
}

// NewManager creates a manager in the Anonymous state.
func NewManager(users UserDirectory, store Store, verifier CredentialVerifier, logger *zap.Logger) *Manager {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		users:    users,
		store:    store,
		verifier: verifier,
		logger:   logger,
	}
}

// Current returns the active session, or nil when anonymous.
func (m *Manager) Current() *models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Login fetches the users collection and scans for the first record whose
// email matches exactly and whose password passes the verifier. On a match
// the session is activated and persisted; on no match the state stays
// Anonymous and ErrInvalidCredentials is returned.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	users, err := m.users.List(ctx)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, u := range users {
		if u.Email == email && m.verifier.Verify(password, u.Password) {
			return m.activate(ctx, u)
		}
	}

	m.logger.Info("Login rejected", zap.String("email", email))
	return models.Session{}, ErrInvalidCredentials
}

// Register allocates an id against the users collection, submits the new
// record, and on success activates a session from the submitted data without
// re-fetching. Any resource-client failure surfaces as a RegistrationError
// and the state stays Anonymous.
func (m *Manager) Register(ctx context.Context, email, password, name string, role models.Role) (models.Session, error) {
	users, err := m.users.List(ctx)
	if err != nil {
		return models.Session{}, &RegistrationError{Cause: err}
	}
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	id, err := ident.NextStringID(ids)
	if err != nil {
		return models.Session{}, &RegistrationError{Cause: err}
	}

	user := models.User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: password,
		Role:     role,
	}
	if _, err := m.users.Create(ctx, user); err != nil {
		return models.Session{}, &RegistrationError{Cause: err}
	}

	return m.activate(ctx, user)
}

// Logout unconditionally returns to Anonymous and clears the persisted slot.
// It always succeeds; a storage failure is logged, not surfaced.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("Failed to clear persisted session", zap.Error(err))
	}
	m.logger.Info("Logged out")
}

// Restore reads the persisted slot once at startup. A well-formed record is
// trusted without backend re-validation; an absent or malformed slot leaves
// the state Anonymous.
func (m *Manager) Restore(ctx context.Context) {
	user, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("Discarding malformed persisted session", zap.Error(err))
		return
	}
	if user == nil {
		return
	}

	s := models.SessionFor(*user)
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()
	m.logger.Info("Session restored", zap.String("email", s.Email), zap.String("role", string(s.Role)))
}

func (m *Manager) activate(ctx context.Context, u models.User) (models.Session, error) {
	s := models.SessionFor(u)
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	if err := m.store.Save(ctx, u); err != nil {
		m.logger.Warn("Failed to persist session", zap.Error(err))
	}
	m.logger.Info("Session activated", zap.String("email", s.Email), zap.String("role", string(s.Role)))
	return s, nil
}
