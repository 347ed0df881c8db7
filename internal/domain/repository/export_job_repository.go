package repository

import (
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// ExportJobRepository define el puerto de persistencia para ExportJob (DIP).
type ExportJobRepository interface {
	Create(job *entity.ExportJob) error
	GetByID(id string) (*entity.ExportJob, error)
	// FailStalePending marca como failed los jobs pending creados antes de
	// olderThan y devuelve cuántos cambió. Lo usa el barrido periódico para
	// que una notificación perdida no deje jobs colgados.
	FailStalePending(olderThan time.Time, errorMessage string) (int, error)
}
