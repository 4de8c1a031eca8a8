package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Logistica-api/internal/domain/entity"
	"github.com/jhoicas/Logistica-api/internal/domain/repository"
	"github.com/jhoicas/Logistica-api/pkg/logger"
)

// Uploader sube una foto de fardo al endpoint remoto.
type Uploader interface {
	Upload(ctx context.Context, att *entity.Attachment) error
}

// PhotoUploader es el job de reintentos de subida de fotos. Es una tarea con
// ciclo de vida explícito (Start/Stop) propiedad del proceso, no un singleton
// que arranca solo. Consulta el ledger por adjuntos sin resolver; los fallos
// se registran y nunca bloquean el núcleo.
type PhotoUploader struct {
	repo     repository.AttachmentRepository
	uploader Uploader
	interval time.Duration
	batch    int
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPhotoUploader construye el job. interval es el período de sondeo.
func NewPhotoUploader(repo repository.AttachmentRepository, uploader Uploader, interval time.Duration, log *logger.Logger) *PhotoUploader {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &PhotoUploader{
		repo:     repo,
		uploader: uploader,
		interval: interval,
		batch:    10,
		log:      log,
	}
}

// Start lanza el loop de sondeo. Llamadas repetidas sin Stop son no-op.
func (j *PhotoUploader) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done = make(chan struct{})
	go j.run(ctx)
}

// Stop detiene el loop y espera a que el ciclo en curso termine.
func (j *PhotoUploader) Stop() {
	j.mu.Lock()
	cancel, done := j.cancel, j.done
	j.cancel = nil
	j.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (j *PhotoUploader) run(ctx context.Context) {
	defer close(j.done)
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.cycle(ctx)
		}
	}
}

// cycle procesa un lote de adjuntos pendientes.
func (j *PhotoUploader) cycle(ctx context.Context) {
	pending, err := j.repo.ListPending(j.batch)
	if err != nil {
		j.log.Error().Err(err).Msg("listar fotos pendientes")
		return
	}
	for _, att := range pending {
		if ctx.Err() != nil {
			return
		}
		if err := j.uploader.Upload(ctx, att); err != nil {
			j.log.Warn().Err(err).
				Str("attachment_id", att.ID).
				Str("unit_id", att.UnitID).
				Int("attempts", att.Attempts+1).
				Msg("subida de foto fallida, se reintentará")
			if err := j.repo.MarkFailed(att.ID, err.Error()); err != nil {
				j.log.Error().Err(err).Str("attachment_id", att.ID).Msg("marcar foto fallida")
			}
			continue
		}
		if err := j.repo.MarkUploaded(att.ID); err != nil {
			j.log.Error().Err(err).Str("attachment_id", att.ID).Msg("marcar foto subida")
			continue
		}
		j.log.Info().Str("attachment_id", att.ID).Str("unit_id", att.UnitID).Msg("foto subida")
	}
}
