package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps options and user meta in the options and user_meta tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetOption(ctx context.Context, name string) (string, bool, error) {
	var v string
	err := s.pool.QueryRow(ctx, `SELECT option_value FROM options WHERE option_name = $1`, name).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}
	return v, true, nil
}

func (s *PostgresStore) SetOption(ctx context.Context, name, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO options (option_name, option_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (option_name) DO UPDATE
		  SET option_value = EXCLUDED.option_value,
		      updated_at = NOW()`,
		name, value)
	if err != nil {
		return fmt.Errorf("set option %s: %w", name, err)
	}
	return nil
}

func (s *PostgresStore) GetUserMeta(ctx context.Context, userID int, key string) (string, bool, error) {
	var v string
	err := s.pool.QueryRow(ctx,
		`SELECT meta_value FROM user_meta WHERE user_id = $1 AND meta_key = $2`, userID, key,
	).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get user meta %d/%s: %w", userID, key, err)
	}
	return v, true, nil
}

func (s *PostgresStore) SetUserMeta(ctx context.Context, userID int, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_meta (user_id, meta_key, meta_value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, meta_key) DO UPDATE
		  SET meta_value = EXCLUDED.meta_value,
		      updated_at = NOW()`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("set user meta %d/%s: %w", userID, key, err)
	}
	return nil
}
