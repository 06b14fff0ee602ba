package auth

import (
	"context"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
)

// UserStore is the persistence boundary for user records. Email
// uniqueness is enforced here, whatever the backend.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByID(ctx context.Context, id string) (models.User, bool, error)
	Create(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) error
}

// StoreUsers keeps the users collection as a single document in the
// key-value store (local mode).
type StoreUsers struct {
	kv store.Store
}

func NewStoreUsers(kv store.Store) *StoreUsers {
	return &StoreUsers{kv: kv}
}

func (s *StoreUsers) load() ([]models.User, error) {
	var users []models.User
	if _, err := s.kv.Get(store.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *StoreUsers) FindByEmail(_ context.Context, email string) (models.User, bool, error) {
	users, err := s.load()
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *StoreUsers) FindByID(_ context.Context, id string) (models.User, bool, error) {
	users, err := s.load()
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (s *StoreUsers) Create(_ context.Context, user models.User) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}
	return s.kv.Put(store.KeyUsers, append(users, user))
}

func (s *StoreUsers) Update(_ context.Context, user models.User) error {
	users, err := s.load()
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			return s.kv.Put(store.KeyUsers, users)
		}
	}
	return apperrors.ErrUserNotFound
}
