package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

var _ repository.ReagentRepository = (*ReagentRepo)(nil)

// barcode es NULLable en DB; se lee como cadena vacía.
const reagentColumns = `id, name, search_name, reference, COALESCE(barcode, ''), unit, unit_size, total_quantity, minimum_stock, location, active, created_at, updated_at`

// ReagentRepo implementación del puerto ReagentRepository sobre PostgreSQL (usable con pool o tx).
type ReagentRepo struct {
	q Querier
}

// NewReagentRepository construye el adaptador de persistencia para reactivos. Pasar pool o tx (Querier).
func NewReagentRepository(q Querier) *ReagentRepo {
	return &ReagentRepo{q: q}
}

// Create persiste un nuevo reactivo. TotalQuantity inicia en 0.
func (r *ReagentRepo) Create(reagent *entity.Reagent) error {
	query := `
		INSERT INTO reagents (id, name, search_name, reference, barcode, unit, unit_size, total_quantity, minimum_stock, location, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		reagent.ID, reagent.Name, reagent.SearchName, reagent.Reference, reagent.Barcode,
		reagent.Unit, reagent.UnitSize, reagent.TotalQuantity, reagent.MinimumStock,
		reagent.Location, reagent.Active, reagent.CreatedAt, reagent.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reagent: %w", err)
	}
	return nil
}

// GetByID obtiene un reactivo por ID.
func (r *ReagentRepo) GetByID(id string) (*entity.Reagent, error) {
	return r.getOne(`SELECT `+reagentColumns+` FROM reagents WHERE id = $1`, id)
}

// GetByReference obtiene un reactivo por código de catálogo.
func (r *ReagentRepo) GetByReference(reference string) (*entity.Reagent, error) {
	return r.getOne(`SELECT `+reagentColumns+` FROM reagents WHERE reference = $1`, reference)
}

// GetByBarcode obtiene un reactivo por código de barras (escaneo).
func (r *ReagentRepo) GetByBarcode(barcode string) (*entity.Reagent, error) {
	return r.getOne(`SELECT `+reagentColumns+` FROM reagents WHERE barcode = $1`, barcode)
}

func (r *ReagentRepo) getOne(query string, arg any) (*entity.Reagent, error) {
	var re entity.Reagent
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&re.ID, &re.Name, &re.SearchName, &re.Reference, &re.Barcode, &re.Unit, &re.UnitSize,
		&re.TotalQuantity, &re.MinimumStock, &re.Location, &re.Active, &re.CreatedAt, &re.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reagent: %w", err)
	}
	return &re, nil
}

// Update actualiza un reactivo existente. No permite modificar TotalQuantity (se maneja vía movimientos).
func (r *ReagentRepo) Update(reagent *entity.Reagent) error {
	query := `
		UPDATE reagents SET name = $2, search_name = $3, barcode = NULLIF($4, ''), unit = $5, unit_size = $6, minimum_stock = $7, location = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		reagent.ID, reagent.Name, reagent.SearchName, reagent.Barcode, reagent.Unit,
		reagent.UnitSize, reagent.MinimumStock, reagent.Location, reagent.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update reagent: %w", err)
	}
	return nil
}

// UpdateTotalQuantity actualiza solo el total denormalizado (usado por movimientos y lotes).
func (r *ReagentRepo) UpdateTotalQuantity(reagentID string, total int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE reagents SET total_quantity = $2, updated_at = now() WHERE id = $1`,
		reagentID, total,
	)
	if err != nil {
		return fmt.Errorf("update reagent total: %w", err)
	}
	return nil
}

// List lista reactivos activos con paginación y búsqueda opcional sobre el
// nombre normalizado o la referencia.
func (r *ReagentRepo) List(search string, limit, offset int) ([]*entity.Reagent, error) {
	query := `
		SELECT ` + reagentColumns + `
		FROM reagents
		WHERE active = true AND ($1 = '' OR search_name LIKE '%' || $1 || '%' OR reference ILIKE '%' || $1 || '%')
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reagents: %w", err)
	}
	defer rows.Close()
	return scanReagents(rows)
}

// ListActive devuelve todos los reactivos activos (cálculo de alertas).
func (r *ReagentRepo) ListActive() ([]*entity.Reagent, error) {
	query := `SELECT ` + reagentColumns + ` FROM reagents WHERE active = true ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list active reagents: %w", err)
	}
	defer rows.Close()
	return scanReagents(rows)
}

// Deactivate borrado lógico: los movimientos siguen referenciando el reactivo.
func (r *ReagentRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE reagents SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate reagent: %w", err)
	}
	return nil
}

func scanReagents(rows pgx.Rows) ([]*entity.Reagent, error) {
	var list []*entity.Reagent
	for rows.Next() {
		var re entity.Reagent
		if err := rows.Scan(&re.ID, &re.Name, &re.SearchName, &re.Reference, &re.Barcode, &re.Unit,
			&re.UnitSize, &re.TotalQuantity, &re.MinimumStock, &re.Location, &re.Active,
			&re.CreatedAt, &re.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reagent: %w", err)
		}
		list = append(list, &re)
	}
	return list, rows.Err()
}
