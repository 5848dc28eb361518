package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
)

// AddReferenceSource registers a reference URL for a user.
func (s *Store) AddReferenceSource(ctx context.Context, src *core.ReferenceSource) (*core.ReferenceSource, error) {
	var r core.ReferenceSource
	err := s.pool.QueryRow(ctx,
		`INSERT INTO blog_reference_urls (user_id, url, title, description, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING id, user_id, url, title, description, is_active, created_at`,
		src.UserID, src.URL, src.Title, src.Description,
	).Scan(&r.ID, &r.UserID, &r.URL, &r.Title, &r.Description, &r.Active, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add reference source: %w", err)
	}
	return &r, nil
}

// ListReferenceSources returns a user's active reference URLs, oldest first.
func (s *Store) ListReferenceSources(ctx context.Context, userID string) ([]core.ReferenceSource, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, url, title, description, is_active, created_at
		 FROM blog_reference_urls
		 WHERE user_id = $1 AND is_active
		 ORDER BY created_at`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("list reference sources: %w", err)
	}
	defer rows.Close()

	var sources []core.ReferenceSource
	for rows.Next() {
		var r core.ReferenceSource
		if err := rows.Scan(&r.ID, &r.UserID, &r.URL, &r.Title, &r.Description,
			&r.Active, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reference source: %w", err)
		}
		sources = append(sources, r)
	}
	return sources, rows.Err()
}

// UpdateReferenceSource applies a partial edit and returns the updated row.
func (s *Store) UpdateReferenceSource(ctx context.Context, id string, upd core.ReferenceUpdate) (*core.ReferenceSource, error) {
	var r core.ReferenceSource
	err := s.pool.QueryRow(ctx,
		`UPDATE blog_reference_urls
		 SET title = COALESCE($2, title),
		     description = COALESCE($3, description),
		     is_active = COALESCE($4, is_active)
		 WHERE id = $1
		 RETURNING id, user_id, url, title, description, is_active, created_at`,
		id, upd.Title, upd.Description, upd.Active,
	).Scan(&r.ID, &r.UserID, &r.URL, &r.Title, &r.Description, &r.Active, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update reference source: %w", err)
	}
	return &r, nil
}

// DeleteReferenceSource removes one registered reference URL.
func (s *Store) DeleteReferenceSource(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_reference_urls WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reference source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
