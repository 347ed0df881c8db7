package repository

import (
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para Lot (DIP).
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	Update(lot *entity.Lot) error
	UpdateQuantity(lotID string, quantity int) error
	ListByReagent(reagentID string) ([]*entity.Lot, error)
	// ListExpiring devuelve lotes activos con cantidad > 0 y fecha de caducidad
	// no nula ≤ cutoff, con los campos del reactivo padre poblados por join y
	// orden ascendente por fecha de caducidad.
	ListExpiring(cutoff time.Time) ([]*entity.Lot, error)
	// SumActiveQuantity suma las cantidades de los lotes activos de un reactivo.
	SumActiveQuantity(reagentID string) (int, error)
	Deactivate(id string) error
}
