package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

var _ repository.ExportJobRepository = (*ExportJobRepo)(nil)

// ExportJobRepo implementación del puerto ExportJobRepository sobre PostgreSQL.
type ExportJobRepo struct {
	q Querier
}

// NewExportJobRepository construye el adaptador de persistencia para export jobs.
func NewExportJobRepository(q Querier) *ExportJobRepo {
	return &ExportJobRepo{q: q}
}

// Create inserta un job en estado pending.
func (r *ExportJobRepo) Create(job *entity.ExportJob) error {
	query := `
		INSERT INTO export_jobs (id, user_id, type, status, file_url, error_message, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		job.ID, job.UserID, job.Type, job.Status, job.FileURL, job.ErrorMessage,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert export job: %w", err)
	}
	return nil
}

// GetByID obtiene un job por ID.
func (r *ExportJobRepo) GetByID(id string) (*entity.ExportJob, error) {
	query := `
		SELECT id, user_id, type, status, COALESCE(file_url, ''), COALESCE(error_message, ''), created_at, updated_at
		FROM export_jobs WHERE id = $1`
	var j entity.ExportJob
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&j.ID, &j.UserID, &j.Type, &j.Status, &j.FileURL, &j.ErrorMessage, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get export job: %w", err)
	}
	return &j, nil
}

// FailStalePending cierra jobs pending creados antes de olderThan.
func (r *ExportJobRepo) FailStalePending(olderThan time.Time, errorMessage string) (int, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE export_jobs SET status = 'failed', error_message = $2, updated_at = now()
		 WHERE status = 'pending' AND created_at < $1`,
		olderThan, errorMessage,
	)
	if err != nil {
		return 0, fmt.Errorf("fail stale export jobs: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}
