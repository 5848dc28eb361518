package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
)

// CreateProject inserts a new project in draft status.
func (s *Store) CreateProject(ctx context.Context, name, userID string) (*core.Project, error) {
	var p core.Project
	err := s.pool.QueryRow(ctx,
		`INSERT INTO blog_projects (name, user_id)
		 VALUES ($1, $2)
		 RETURNING id, name, user_id, status, ftp_path, created_at, updated_at`,
		name, userID,
	).Scan(&p.ID, &p.Name, &p.UserID, &p.Status, &p.FTPPath, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

// GetProject returns a project by id, or nil when it does not exist.
func (s *Store) GetProject(ctx context.Context, id string) (*core.Project, error) {
	var p core.Project
	err := s.pool.QueryRow(ctx,
		`SELECT p.id, p.name, p.user_id, p.status, p.ftp_path, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM blog_photos ph WHERE ph.project_id = p.id)
		 FROM blog_projects p WHERE p.id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.UserID, &p.Status, &p.FTPPath, &p.CreatedAt, &p.UpdatedAt, &p.PhotoCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListProjects returns all projects, most recent first.
func (s *Store) ListProjects(ctx context.Context) ([]core.Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, p.user_id, p.status, p.ftp_path, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM blog_photos ph WHERE ph.project_id = p.id)
		 FROM blog_projects p
		 ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []core.Project
	for rows.Next() {
		var p core.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.UserID, &p.Status, &p.FTPPath,
			&p.CreatedAt, &p.UpdatedAt, &p.PhotoCount); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProjectStatus moves a project through the generation lifecycle.
func (s *Store) UpdateProjectStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE blog_projects SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("update project status: %w", err)
	}
	return nil
}

// UpdateProjectFTPPath records the remote directory assigned to a project.
func (s *Store) UpdateProjectFTPPath(ctx context.Context, id, ftpPath string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE blog_projects SET ftp_path = $2, updated_at = NOW() WHERE id = $1`,
		id, ftpPath)
	if err != nil {
		return fmt.Errorf("update project ftp path: %w", err)
	}
	return nil
}

// DeleteProject removes a project; photos and content cascade.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
