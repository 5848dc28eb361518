package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogforge/internal/core"
)

// SaveContent upserts the generated content for a project; one row per project.
func (s *Store) SaveContent(ctx context.Context, projectID, title, contentHTML string, tags []string) (*core.Content, error) {
	if tags == nil {
		tags = []string{}
	}
	var c core.Content
	err := s.pool.QueryRow(ctx,
		`INSERT INTO blog_contents (project_id, title, content_html, tags)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (project_id) DO UPDATE
		 SET title = EXCLUDED.title,
		     content_html = EXCLUDED.content_html,
		     tags = EXCLUDED.tags,
		     updated_at = NOW()
		 RETURNING id, project_id, title, content_html, tags, created_at, updated_at`,
		projectID, title, contentHTML, tags,
	).Scan(&c.ID, &c.ProjectID, &c.Title, &c.ContentHTML, &c.Tags, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save content: %w", err)
	}
	return &c, nil
}

// GetContent returns a project's generated content, or nil when none exists.
func (s *Store) GetContent(ctx context.Context, projectID string) (*core.Content, error) {
	var c core.Content
	err := s.pool.QueryRow(ctx,
		`SELECT id, project_id, title, content_html, tags, created_at, updated_at
		 FROM blog_contents WHERE project_id = $1`,
		projectID,
	).Scan(&c.ID, &c.ProjectID, &c.Title, &c.ContentHTML, &c.Tags, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	return &c, nil
}
