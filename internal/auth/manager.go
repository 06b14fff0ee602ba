// Package auth owns the session lifecycle: registration, login,
// logout, the persisted current-session snapshot, and profile updates.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
	"github.com/shaik1234567/TaskFlow-AI/pkg/crypto"
)

// Manager issues and validates bearer credentials. The snapshot store
// holds the current-session pointer in local mode; with a nil snapshot
// store (server mode) sessions live only in the token itself.
type Manager struct {
	users     UserStore
	snapshots store.Store
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewManager(users UserStore, snapshots store.Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		users:     users,
		snapshots: snapshots,
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// avatarURL derives an avatar deterministically from the display name.
func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}

// Register creates a user with a bcrypt-hashed password and opens a
// session for it. The email must not already be registered.
func (m *Manager) Register(ctx context.Context, name, email, password string) (models.Session, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Session{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Avatar:   avatarURL(name),
	}
	if err := m.users.Create(ctx, user); err != nil {
		return models.Session{}, err
	}
	return m.openSession(user)
}

// Login verifies the password against the stored hash and issues a
// fresh credential. Unknown email and wrong password are reported
// identically.
func (m *Manager) Login(ctx context.Context, email, password string) (models.Session, error) {
	user, found, err := m.users.FindByEmail(ctx, email)
	if err != nil {
		return models.Session{}, err
	}
	if !found {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return models.Session{}, apperrors.ErrInvalidCredentials
	}
	return m.openSession(user)
}

func (m *Manager) openSession(user models.User) (models.Session, error) {
	token, err := SignToken(m.secret, user.ID, user.Email, m.now(), m.ttl)
	if err != nil {
		return models.Session{}, fmt.Errorf("signing token: %w", err)
	}
	session := models.Session{User: user.Public(), Token: token}
	if m.snapshots != nil {
		if err := m.snapshots.Put(store.KeyCurrentUser, session.User); err != nil {
			return models.Session{}, err
		}
		// The token is encrypted at rest; the snapshot file is the one
		// place a live credential would otherwise sit in plaintext.
		sealed, err := crypto.Encrypt(token, string(m.secret))
		if err != nil {
			return models.Session{}, fmt.Errorf("sealing token: %w", err)
		}
		if err := m.snapshots.Put(store.KeyToken, sealed); err != nil {
			return models.Session{}, err
		}
	}
	return session, nil
}

// Logout clears the current-session snapshot. Calling it with no
// active session is fine.
func (m *Manager) Logout(_ context.Context) error {
	if m.snapshots == nil {
		return nil
	}
	if err := m.snapshots.Delete(store.KeyCurrentUser); err != nil {
		return err
	}
	return m.snapshots.Delete(store.KeyToken)
}

// CurrentSession reads the persisted session pointer. An expired or
// tampered credential yields no session rather than an error.
func (m *Manager) CurrentSession(_ context.Context) (*models.Session, error) {
	if m.snapshots == nil {
		return nil, nil
	}

	var user models.User
	foundUser, err := m.snapshots.Get(store.KeyCurrentUser, &user)
	if err != nil {
		return nil, err
	}
	var sealed string
	foundToken, err := m.snapshots.Get(store.KeyToken, &sealed)
	if err != nil {
		return nil, err
	}
	if !foundUser || !foundToken {
		return nil, nil
	}

	token, err := crypto.Decrypt(sealed, string(m.secret))
	if err != nil {
		return nil, nil
	}
	claims, err := parseTokenUnvalidated(m.secret, token)
	if err != nil {
		return nil, nil
	}
	if claims.ExpiresAt == nil || !m.now().Before(claims.ExpiresAt.Time) {
		return nil, nil
	}
	return &models.Session{User: user.Public(), Token: token}, nil
}

// GetUser looks a user up by id, without the password hash.
func (m *Manager) GetUser(ctx context.Context, id string) (models.User, error) {
	user, found, err := m.users.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, apperrors.ErrUserNotFound
	}
	return user.Public(), nil
}

// UpdateProfile merges the name into the stored record. Email is
// immutable, so everything else on the argument is ignored.
func (m *Manager) UpdateProfile(ctx context.Context, user models.User) (models.User, error) {
	stored, found, err := m.users.FindByID(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, apperrors.ErrUserNotFound
	}

	stored.Name = user.Name
	if err := m.users.Update(ctx, stored); err != nil {
		return models.User{}, err
	}

	if m.snapshots != nil {
		var current models.User
		if found, err := m.snapshots.Get(store.KeyCurrentUser, &current); err == nil && found && current.ID == stored.ID {
			if err := m.snapshots.Put(store.KeyCurrentUser, stored.Public()); err != nil {
				return models.User{}, err
			}
		}
	}
	return stored.Public(), nil
}
