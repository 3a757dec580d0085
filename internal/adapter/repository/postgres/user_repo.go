package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goextrato/internal/domain"
)

// UserRepository implements usecase.UserDirectory.
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new user repository
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

// DisplayName returns the account holder's registered name.
func (r *UserRepository) DisplayName(ctx context.Context, userID string) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `SELECT display_name FROM users WHERE id = $1`, userID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", domain.ErrNotFound
	}

	return name, err
}
