package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
)

var _ repository.AttachmentRepository = (*AttachmentRepo)(nil)

// AttachmentRepo implementación de AttachmentRepository sobre PostgreSQL.
type AttachmentRepo struct {
	q Querier
}

// NewAttachmentRepository construye el adaptador de fotos pendientes.
func NewAttachmentRepository(q Querier) *AttachmentRepo {
	return &AttachmentRepo{q: q}
}

// Create registra una foto pendiente de subir.
func (r *AttachmentRepo) Create(att *entity.Attachment) error {
	query := `
		INSERT INTO attachments (id, unit_id, local_path, mime_type, uploaded, attempts, last_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		att.ID, att.UnitID, att.LocalPath, att.MIMEType,
		att.Uploaded, att.Attempts, nullable(att.LastError), att.CreatedAt, att.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// ListPending lista las fotos aún no subidas, las más antiguas primero.
func (r *AttachmentRepo) ListPending(limit int) ([]*entity.Attachment, error) {
	query := `
		SELECT id, unit_id, local_path, mime_type, uploaded, attempts, COALESCE(last_error, ''), created_at, updated_at
		FROM attachments WHERE NOT uploaded ORDER BY created_at LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending attachments: %w", err)
	}
	defer rows.Close()

	var result []*entity.Attachment
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(&a.ID, &a.UnitID, &a.LocalPath, &a.MIMEType,
			&a.Uploaded, &a.Attempts, &a.LastError, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan attachment: %w", err)
		}
		result = append(result, &a)
	}
	return result, rows.Err()
}

// MarkUploaded marca la foto como subida.
func (r *AttachmentRepo) MarkUploaded(id string) error {
	query := `
		UPDATE attachments SET uploaded = TRUE, last_error = NULL, updated_at = $2
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark attachment uploaded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark attachment uploaded: foto no encontrada")
	}
	return nil
}

// MarkFailed incrementa los intentos y guarda el último error.
func (r *AttachmentRepo) MarkFailed(id string, lastError string) error {
	query := `
		UPDATE attachments SET attempts = attempts + 1, last_error = $2, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, lastError, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("mark attachment failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark attachment failed: foto no encontrada")
	}
	return nil
}
