// Package export gestiona los jobs de exportación a hoja de cálculo. La
// generación del archivo corre en un worker externo; aquí solo se crea el
// registro del job, se dispara la notificación y se consulta/barre el estado.
package export

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
	"github.com/jhoicas/LabStock-api/pkg/logger"
)

// UseCase casos de uso de exportación.
type UseCase struct {
	repo    repository.ExportJobRepository
	invoker WorkerInvoker
	timeout time.Duration // edad máxima de un pending antes del barrido
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. timeout limita cuánto puede vivir un
// job pending antes de que el barrido lo marque failed.
func NewUseCase(repo repository.ExportJobRepository, invoker WorkerInvoker, timeout time.Duration, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, invoker: invoker, timeout: timeout, log: log}
}

// Create crea el job en pending y notifica al worker sin esperar resultado.
// La pérdida de la notificación no estropea nada: el job queda visible en
// pending y el barrido lo cierra si nadie lo procesa a tiempo.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateExportRequest) (*dto.ExportJobResponse, error) {
	if in.Type != entity.ExportTypeInventory && in.Type != entity.ExportTypeMovements {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	job := &entity.ExportJob{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      in.Type,
		Status:    entity.ExportPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(job); err != nil {
		return nil, err
	}

	if uc.invoker != nil {
		if err := uc.invoker.Notify(ctx, job.ID, job.Type); err != nil {
			uc.log.Warn().Err(err).Str("job_id", job.ID).Msg("notificación al worker de exportación falló")
		}
	}

	return toExportResponse(job), nil
}

// GetByID devuelve el estado actual del job (polling del cliente).
func (uc *UseCase) GetByID(id string) (*dto.ExportJobResponse, error) {
	job, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return toExportResponse(job), nil
}

// SweepStale marca como failed los jobs pending más viejos que el timeout.
// Devuelve cuántos cerró. Lo invoca el scheduler cada hora.
func (uc *UseCase) SweepStale(now time.Time) (int, error) {
	n, err := uc.repo.FailStalePending(now.Add(-uc.timeout), "tiempo de espera agotado")
	if err != nil {
		return 0, err
	}
	if n > 0 {
		uc.log.Warn().Int("jobs", n).Msg("export jobs colgados marcados como failed")
	}
	return n, nil
}

func toExportResponse(j *entity.ExportJob) *dto.ExportJobResponse {
	if j == nil {
		return nil
	}
	return &dto.ExportJobResponse{
		ID:           j.ID,
		Type:         j.Type,
		Status:       j.Status,
		FileURL:      j.FileURL,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
