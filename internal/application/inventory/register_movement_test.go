package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/application/inventory"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un TxRunner sin transacción real que expone repos sobre
// mapas y registra si el callback terminó en error (rollback simulado).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	lots      map[string]*entity.Lot
	reagents  map[string]*entity.Reagent
	movements []*entity.StockMovement
}

type memTxRunner struct {
	store      *memStore
	rolledBack bool
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	lotRepo repository.LotRepository,
	reagentRepo repository.ReagentRepository,
) error) error {
	err := fn(&memMovRepo{r.store}, &memLotRepo{r.store}, &memReagentRepo{r.store})
	if err != nil {
		r.rolledBack = true
	}
	return err
}

type memMovRepo struct{ s *memStore }

func (m *memMovRepo) Create(mv *entity.StockMovement) error {
	m.s.movements = append(m.s.movements, mv)
	return nil
}

func (m *memMovRepo) ListByReagent(reagentID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, mv := range m.s.movements {
		if mv.ReagentID == reagentID {
			out = append(out, mv)
		}
	}
	return out, nil
}

type memLotRepo struct{ s *memStore }

func (m *memLotRepo) Create(l *entity.Lot) error { m.s.lots[l.ID] = l; return nil }
func (m *memLotRepo) GetByID(id string) (*entity.Lot, error) {
	return m.s.lots[id], nil
}
func (m *memLotRepo) Update(l *entity.Lot) error { m.s.lots[l.ID] = l; return nil }
func (m *memLotRepo) UpdateQuantity(lotID string, quantity int) error {
	m.s.lots[lotID].Quantity = quantity
	return nil
}
func (m *memLotRepo) ListByReagent(reagentID string) ([]*entity.Lot, error) { return nil, nil }
func (m *memLotRepo) ListExpiring(cutoff time.Time) ([]*entity.Lot, error)  { return nil, nil }
func (m *memLotRepo) SumActiveQuantity(reagentID string) (int, error) {
	total := 0
	for _, l := range m.s.lots {
		if l.ReagentID == reagentID && l.Active {
			total += l.Quantity
		}
	}
	return total, nil
}
func (m *memLotRepo) Deactivate(id string) error {
	m.s.lots[id].Active = false
	return nil
}

type memReagentRepo struct{ s *memStore }

func (m *memReagentRepo) Create(r *entity.Reagent) error               { m.s.reagents[r.ID] = r; return nil }
func (m *memReagentRepo) GetByID(id string) (*entity.Reagent, error)   { return m.s.reagents[id], nil }
func (m *memReagentRepo) GetByReference(string) (*entity.Reagent, error) { return nil, nil }
func (m *memReagentRepo) GetByBarcode(string) (*entity.Reagent, error)   { return nil, nil }
func (m *memReagentRepo) Update(r *entity.Reagent) error               { m.s.reagents[r.ID] = r; return nil }
func (m *memReagentRepo) UpdateTotalQuantity(reagentID string, total int) error {
	m.s.reagents[reagentID].TotalQuantity = total
	return nil
}
func (m *memReagentRepo) List(string, int, int) ([]*entity.Reagent, error) { return nil, nil }
func (m *memReagentRepo) ListActive() ([]*entity.Reagent, error)           { return nil, nil }
func (m *memReagentRepo) Deactivate(string) error                          { return nil }

func newStore() (*memStore, *memTxRunner) {
	s := &memStore{
		lots:     map[string]*entity.Lot{},
		reagents: map[string]*entity.Reagent{},
	}
	s.reagents["r1"] = &entity.Reagent{ID: "r1", Name: "Etanol", TotalQuantity: 5, MinimumStock: 2, Active: true}
	s.lots["l1"] = &entity.Lot{ID: "l1", ReagentID: "r1", LotNumber: "L-1", Quantity: 5, Active: true}
	return s, &memTxRunner{store: s}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestExecute_EntradaSumaAlLoteYAlTotal(t *testing.T) {
	s, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	out, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: entity.MovementEntrada, Quantity: 3, Reason: "recepción pedido",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, out.Quantity, "el delta de una entrada es positivo")
	assert.Equal(t, 8, out.LotQuantity)
	assert.Equal(t, 8, out.TotalQuantity)
	assert.Equal(t, 8, s.lots["l1"].Quantity)
	assert.Equal(t, 8, s.reagents["r1"].TotalQuantity)
	require.Len(t, s.movements, 1)
	assert.Equal(t, "u1", s.movements[0].UserID)
}

func TestExecute_SalidaRestaConSigno(t *testing.T) {
	s, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	out, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: entity.MovementSalida, Quantity: 2,
	})

	require.NoError(t, err)
	assert.Equal(t, -2, out.Quantity, "el delta de una salida es negativo")
	assert.Equal(t, 3, out.LotQuantity)
	assert.Equal(t, 3, s.reagents["r1"].TotalQuantity)
}

// Una salida mayor que la existencia del lote se rechaza y no deja rastro.
func TestExecute_SalidaExcesivaRechazada(t *testing.T) {
	s, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	_, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: entity.MovementSalida, Quantity: 6,
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, s.movements)
	assert.Equal(t, 5, s.lots["l1"].Quantity)
}

// Para ajuste, Quantity es la cantidad final deseada; el delta lleva el signo.
func TestExecute_AjusteFijaCantidadFinal(t *testing.T) {
	s, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	out, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: entity.MovementAjuste, Quantity: 2, Reason: "recuento físico",
	})

	require.NoError(t, err)
	assert.Equal(t, -3, out.Quantity)
	assert.Equal(t, 2, out.LotQuantity)
	assert.Equal(t, 2, s.reagents["r1"].TotalQuantity)
}

func TestExecute_LoteInexistente(t *testing.T) {
	_, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	_, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "no-existe", Type: entity.MovementEntrada, Quantity: 1,
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_TipoInvalido(t *testing.T) {
	_, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	_, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: "prestamo", Quantity: 1,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExecute_CantidadNegativaInvalida(t *testing.T) {
	_, tx := newStore()
	uc := inventory.NewRegisterMovementUseCase(tx)

	_, err := uc.Execute(context.Background(), "u1", dto.RegisterMovementRequest{
		LotID: "l1", Type: entity.MovementEntrada, Quantity: -1,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
