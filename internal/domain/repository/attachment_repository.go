package repository

import "github.com/jhoicas/Logistica-api/internal/domain/entity"

// AttachmentRepository define el puerto de persistencia para fotos de fardos
// pendientes de subir.
type AttachmentRepository interface {
	Create(att *entity.Attachment) error
	ListPending(limit int) ([]*entity.Attachment, error)
	MarkUploaded(id string) error
	MarkFailed(id string, lastError string) error
}
