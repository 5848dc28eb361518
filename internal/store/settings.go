package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetUserSetting returns one setting value, or "" when unset.
func (s *Store) GetUserSetting(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM blog_settings WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting: %w", err)
	}
	return value, nil
}

// SetUserSetting stores one setting value, replacing any previous one.
func (s *Store) SetUserSetting(ctx context.Context, userID, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO blog_settings (user_id, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, key) DO UPDATE
		 SET value = EXCLUDED.value, updated_at = NOW()`,
		userID, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}
