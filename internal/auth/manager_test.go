package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
)

func newTestManager(t *testing.T) (*Manager, *store.FileStore) {
	t.Helper()
	kv, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewManager(NewStoreUsers(kv), kv, "test-secret", time.Hour), kv
}

func TestRegisterEstablishesSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	session, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "Alice", session.User.Name)
	assert.Equal(t, "alice@x.com", session.User.Email)
	assert.Contains(t, session.User.Avatar, "ui-avatars.com")
	assert.Empty(t, session.User.Password, "hash must not leave the manager")
	assert.NotEmpty(t, session.Token)

	current, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, session.User.ID, current.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	m, kv := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	_, err = m.Register(ctx, "Impostor", "alice@x.com", "other")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)

	var users []models.User
	_, err = kv.Get(store.KeyUsers, &users)
	require.NoError(t, err)
	assert.Len(t, users, 1, "failed registration must not add a user")
}

func TestLoginWrongPassword(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	_, err = m.Login(ctx, "alice@x.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	current, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current, "failed login must not establish a session")
}

func TestLoginUnknownEmail(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Login(context.Background(), "nobody@x.com", "pw123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginSucceeds(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)
	require.NoError(t, m.Logout(ctx))

	session, err := m.Login(ctx, "alice@x.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", session.User.Email)
	assert.NotEmpty(t, session.Token)
}

func TestLogoutIdempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))

	current, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestCurrentSessionRejectsExpiredToken(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	// Advance the clock past the token TTL.
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	current, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestUpdateProfileMergesNameOnly(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	session, err := m.Register(ctx, "Alice", "alice@x.com", "pw123")
	require.NoError(t, err)

	updated, err := m.UpdateProfile(ctx, models.User{
		ID:    session.User.ID,
		Name:  "Alice Cooper",
		Email: "hijack@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)
	assert.Equal(t, "alice@x.com", updated.Email, "email is immutable")

	current, err := m.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Alice Cooper", current.User.Name)

	// Password hash must survive the merge: login still works.
	_, err = m.Login(ctx, "alice@x.com", "pw123")
	require.NoError(t, err)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.UpdateProfile(context.Background(), models.User{ID: "missing", Name: "X"})
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
