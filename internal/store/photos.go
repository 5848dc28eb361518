package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"blogforge/internal/apperr"
	"blogforge/internal/core"
)

// AddPhoto records one uploaded photo.
func (s *Store) AddPhoto(ctx context.Context, photo *core.Photo) (*core.Photo, error) {
	var p core.Photo
	err := s.pool.QueryRow(ctx,
		`INSERT INTO blog_photos (project_id, filename, ftp_url, caption, category, display_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, project_id, filename, ftp_url, caption, category, display_order, created_at`,
		photo.ProjectID, photo.Filename, photo.FTPURL, photo.Caption, photo.Category, photo.DisplayOrder,
	).Scan(&p.ID, &p.ProjectID, &p.Filename, &p.FTPURL, &p.Caption, &p.Category, &p.DisplayOrder, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add photo: %w", err)
	}
	return &p, nil
}

// AddPhotosBatch records several uploaded photos in one round trip and
// returns the inserted rows in input order.
func (s *Store) AddPhotosBatch(ctx context.Context, photos []*core.Photo) ([]core.Photo, error) {
	batch := &pgx.Batch{}
	for _, photo := range photos {
		batch.Queue(
			`INSERT INTO blog_photos (project_id, filename, ftp_url, caption, category, display_order)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, project_id, filename, ftp_url, caption, category, display_order, created_at`,
			photo.ProjectID, photo.Filename, photo.FTPURL, photo.Caption, photo.Category, photo.DisplayOrder)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	inserted := make([]core.Photo, 0, len(photos))
	for i := range photos {
		var p core.Photo
		if err := br.QueryRow().Scan(&p.ID, &p.ProjectID, &p.Filename, &p.FTPURL,
			&p.Caption, &p.Category, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("add photo %d: %w", i, err)
		}
		inserted = append(inserted, p)
	}
	return inserted, nil
}

// GetPhoto returns one photo, or nil when it does not exist.
func (s *Store) GetPhoto(ctx context.Context, id string) (*core.Photo, error) {
	var p core.Photo
	err := s.pool.QueryRow(ctx,
		`SELECT id, project_id, filename, ftp_url, caption, category, display_order, created_at
		 FROM blog_photos WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.ProjectID, &p.Filename, &p.FTPURL, &p.Caption, &p.Category, &p.DisplayOrder, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return &p, nil
}

// ListPhotos returns a project's photos in display order.
func (s *Store) ListPhotos(ctx context.Context, projectID string) ([]core.Photo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, project_id, filename, ftp_url, caption, category, display_order, created_at
		 FROM blog_photos
		 WHERE project_id = $1
		 ORDER BY display_order, created_at`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []core.Photo
	for rows.Next() {
		var p core.Photo
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Filename, &p.FTPURL, &p.Caption,
			&p.Category, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// UpdatePhoto applies a partial edit and returns the updated row.
func (s *Store) UpdatePhoto(ctx context.Context, id string, upd core.PhotoUpdate) (*core.Photo, error) {
	var p core.Photo
	err := s.pool.QueryRow(ctx,
		`UPDATE blog_photos
		 SET caption = COALESCE($2, caption),
		     category = COALESCE($3, category),
		     display_order = COALESCE($4, display_order)
		 WHERE id = $1
		 RETURNING id, project_id, filename, ftp_url, caption, category, display_order, created_at`,
		id, upd.Caption, upd.Category, upd.DisplayOrder,
	).Scan(&p.ID, &p.ProjectID, &p.Filename, &p.FTPURL, &p.Caption, &p.Category, &p.DisplayOrder, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update photo: %w", err)
	}
	return &p, nil
}

// ReorderPhotos assigns display_order 1..n following the given id order.
// IDs from other projects are left untouched.
func (s *Store) ReorderPhotos(ctx context.Context, projectID string, photoIDs []string) error {
	batch := &pgx.Batch{}
	for i, photoID := range photoIDs {
		batch.Queue(
			`UPDATE blog_photos SET display_order = $3 WHERE id = $1 AND project_id = $2`,
			photoID, projectID, i+1)
	}
	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := range photoIDs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("reorder photo %d: %w", i, err)
		}
	}
	return nil
}

// SearchPhotos filters photos across projects, newest first, one page at a time.
func (s *Store) SearchPhotos(ctx context.Context, filter core.PhotoFilter) (*core.PhotoPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size < 1 {
		size = 20
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.Category != "" {
		conds = append(conds, "p.category = "+arg(filter.Category))
	}
	if filter.Keyword != "" {
		ph := arg("%" + filter.Keyword + "%")
		conds = append(conds, fmt.Sprintf("(p.caption ILIKE %s OR p.filename ILIKE %s)", ph, ph))
	}
	if filter.DateFrom != "" {
		conds = append(conds, "p.created_at >= "+arg(filter.DateFrom+"T00:00:00")+"::timestamptz")
	}
	if filter.DateTo != "" {
		conds = append(conds, "p.created_at <= "+arg(filter.DateTo+"T23:59:59")+"::timestamptz")
	}
	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM blog_photos p"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count photos: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.project_id, COALESCE(pr.name, ''), p.filename, p.ftp_url,
		        p.caption, p.category, p.display_order, p.created_at
		 FROM blog_photos p
		 LEFT JOIN blog_projects pr ON pr.id = p.project_id`+
			where+" ORDER BY p.created_at DESC LIMIT "+arg(size)+" OFFSET "+arg((page-1)*size),
		args...)
	if err != nil {
		return nil, fmt.Errorf("search photos: %w", err)
	}
	defer rows.Close()

	result := &core.PhotoPage{
		Photos:     []core.Photo{},
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
	if result.TotalPages < 1 {
		result.TotalPages = 1
	}
	for rows.Next() {
		var p core.Photo
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.ProjectName, &p.Filename, &p.FTPURL,
			&p.Caption, &p.Category, &p.DisplayOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		result.Photos = append(result.Photos, p)
	}
	return result, rows.Err()
}

// DeletePhoto removes one photo record.
func (s *Store) DeletePhoto(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
