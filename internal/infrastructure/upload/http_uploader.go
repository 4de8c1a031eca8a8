// Package upload implementa la subida de fotos de fardos al servidor remoto.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Logistica-api/internal/application/jobs"
	"github.com/jhoicas/Logistica-api/internal/domain/entity"
)

var _ jobs.Uploader = (*HTTPUploader)(nil)

// HTTPUploader sube fotos vía multipart POST al endpoint configurado.
type HTTPUploader struct {
	endpoint string
	client   *http.Client
}

// NewHTTPUploader construye el uploader. endpoint es la URL del servidor de fotos.
func NewHTTPUploader(endpoint string) *HTTPUploader {
	return &HTTPUploader{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Upload envía la foto del fardo leyendo el archivo local referenciado.
func (u *HTTPUploader) Upload(ctx context.Context, att *entity.Attachment) error {
	f, err := os.Open(att.LocalPath)
	if err != nil {
		return fmt.Errorf("abrir foto local: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("unit_id", att.UnitID); err != nil {
		return fmt.Errorf("armar multipart: %w", err)
	}
	part, err := w.CreateFormFile("photo", filepath.Base(att.LocalPath))
	if err != nil {
		return fmt.Errorf("armar multipart: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copiar foto: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &body)
	if err != nil {
		return fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("subir foto: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("subir foto: servidor respondió %d", resp.StatusCode)
	}
	return nil
}
