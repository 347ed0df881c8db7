package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación del puerto LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de persistencia para lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un nuevo lote.
func (r *LotRepo) Create(lot *entity.Lot) error {
	query := `
		INSERT INTO lots (id, reagent_id, lot_number, expiry_date, quantity, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ReagentID, lot.LotNumber, lot.ExpiryDate, lot.Quantity,
		lot.Active, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(id string) (*entity.Lot, error) {
	query := `
		SELECT id, reagent_id, lot_number, expiry_date, quantity, active, created_at, updated_at
		FROM lots WHERE id = $1`
	var l entity.Lot
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ReagentID, &l.LotNumber, &l.ExpiryDate, &l.Quantity, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

// Update actualiza número de lote y caducidad (la cantidad va por UpdateQuantity).
func (r *LotRepo) Update(lot *entity.Lot) error {
	query := `
		UPDATE lots SET lot_number = $2, expiry_date = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.LotNumber, lot.ExpiryDate, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	return nil
}

// UpdateQuantity actualiza solo la cantidad (usado por movimientos, dentro de tx).
func (r *LotRepo) UpdateQuantity(lotID string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET quantity = $2, updated_at = now() WHERE id = $1`,
		lotID, quantity,
	)
	if err != nil {
		return fmt.Errorf("update lot quantity: %w", err)
	}
	return nil
}

// ListByReagent lista los lotes activos de un reactivo, los más próximos a caducar primero.
func (r *LotRepo) ListByReagent(reagentID string) ([]*entity.Lot, error) {
	query := `
		SELECT id, reagent_id, lot_number, expiry_date, quantity, active, created_at, updated_at
		FROM lots WHERE reagent_id = $1 AND active = true
		ORDER BY expiry_date ASC NULLS LAST, created_at ASC`
	rows, err := r.q.Query(context.Background(), query, reagentID)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ReagentID, &l.LotNumber, &l.ExpiryDate, &l.Quantity,
			&l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListExpiring devuelve lotes activos con cantidad > 0 y caducidad no nula ≤ cutoff,
// con los campos del reactivo padre por join, orden ascendente por caducidad.
func (r *LotRepo) ListExpiring(cutoff time.Time) ([]*entity.Lot, error) {
	query := `
		SELECT l.id, l.reagent_id, l.lot_number, l.expiry_date, l.quantity, l.active, l.created_at, l.updated_at,
		       r.name, r.reference, r.unit
		FROM lots l
		JOIN reagents r ON r.id = l.reagent_id
		WHERE l.active = true AND l.quantity > 0 AND l.expiry_date IS NOT NULL AND l.expiry_date <= $1
		ORDER BY l.expiry_date ASC`
	rows, err := r.q.Query(context.Background(), query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list expiring lots: %w", err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		var l entity.Lot
		if err := rows.Scan(&l.ID, &l.ReagentID, &l.LotNumber, &l.ExpiryDate, &l.Quantity,
			&l.Active, &l.CreatedAt, &l.UpdatedAt,
			&l.ReagentName, &l.ReagentReference, &l.ReagentUnit); err != nil {
			return nil, fmt.Errorf("scan expiring lot: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SumActiveQuantity suma las cantidades de los lotes activos del reactivo.
func (r *LotRepo) SumActiveQuantity(reagentID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM lots WHERE reagent_id = $1 AND active = true`,
		reagentID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum lot quantities: %w", err)
	}
	return total, nil
}

// Deactivate borrado lógico del lote.
func (r *LotRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE lots SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate lot: %w", err)
	}
	return nil
}
