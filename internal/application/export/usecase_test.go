package export_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/application/export"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeJobRepo struct {
	jobs      map[string]*entity.ExportJob
	sweptWith time.Time
	sweptMsg  string
	sweptN    int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*entity.ExportJob{}}
}

func (f *fakeJobRepo) Create(job *entity.ExportJob) error {
	f.jobs[job.ID] = job
	return nil
}

func (f *fakeJobRepo) GetByID(id string) (*entity.ExportJob, error) {
	return f.jobs[id], nil
}

func (f *fakeJobRepo) FailStalePending(olderThan time.Time, errorMessage string) (int, error) {
	f.sweptWith = olderThan
	f.sweptMsg = errorMessage
	return f.sweptN, nil
}

type fakeInvoker struct {
	notified []string
	err      error
}

func (f *fakeInvoker) Notify(_ context.Context, jobID, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, jobID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_JobPendingYNotificaWorker(t *testing.T) {
	repo := newFakeJobRepo()
	invoker := &fakeInvoker{}
	uc := export.NewUseCase(repo, invoker, 15*time.Minute, nil)

	out, err := uc.Create(context.Background(), "u1", dto.CreateExportRequest{Type: entity.ExportTypeInventory})

	require.NoError(t, err)
	assert.Equal(t, entity.ExportPending, out.Status)
	assert.Equal(t, entity.ExportTypeInventory, out.Type)
	require.Len(t, invoker.notified, 1)
	assert.Equal(t, out.ID, invoker.notified[0])
	assert.Contains(t, repo.jobs, out.ID)
}

// La notificación al worker es best-effort: si falla, el job queda creado en
// pending igualmente.
func TestCreate_FalloDeNotificacionNoEstropeaElJob(t *testing.T) {
	repo := newFakeJobRepo()
	invoker := &fakeInvoker{err: errors.New("worker inaccesible")}
	uc := export.NewUseCase(repo, invoker, 15*time.Minute, nil)

	out, err := uc.Create(context.Background(), "u1", dto.CreateExportRequest{Type: entity.ExportTypeMovements})

	require.NoError(t, err)
	assert.Equal(t, entity.ExportPending, out.Status)
	assert.Contains(t, repo.jobs, out.ID)
}

func TestCreate_TipoInvalido(t *testing.T) {
	uc := export.NewUseCase(newFakeJobRepo(), &fakeInvoker{}, 15*time.Minute, nil)

	_, err := uc.Create(context.Background(), "u1", dto.CreateExportRequest{Type: "pdf"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_NoExistente(t *testing.T) {
	uc := export.NewUseCase(newFakeJobRepo(), &fakeInvoker{}, 15*time.Minute, nil)

	out, err := uc.GetByID("no-existe")

	require.NoError(t, err)
	assert.Nil(t, out)
}

// El barrido marca failed los pending más viejos que el timeout configurado.
func TestSweepStale_UsaElUmbralDelTimeout(t *testing.T) {
	repo := newFakeJobRepo()
	repo.sweptN = 3
	uc := export.NewUseCase(repo, &fakeInvoker{}, 15*time.Minute, nil)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	n, err := uc.SweepStale(now)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, now.Add(-15*time.Minute), repo.sweptWith)
	assert.NotEmpty(t, repo.sweptMsg)
}
