package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
)

// PostgresUsers stores user records in the users table (server mode).
type PostgresUsers struct {
	db *sql.DB
}

func NewPostgresUsers(db *sql.DB) *PostgresUsers {
	return &PostgresUsers{db: db}
}

func (s *PostgresUsers) scanOne(row *sql.Row) (models.User, bool, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Avatar)
	if err == sql.ErrNoRows {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return u, true, nil
}

func (s *PostgresUsers) FindByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, avatar FROM users WHERE email = $1", email))
}

func (s *PostgresUsers) FindByID(ctx context.Context, id string) (models.User, bool, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password, avatar FROM users WHERE id = $1", id))
}

func (s *PostgresUsers) Create(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password, avatar) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Name, user.Email, user.Password, user.Avatar)
	if err != nil {
		// 23505 = unique violation on the email column
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (s *PostgresUsers) Update(ctx context.Context, user models.User) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = $1 WHERE id = $2", user.Name, user.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
