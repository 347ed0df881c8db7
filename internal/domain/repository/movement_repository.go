package repository

import "github.com/jhoicas/LabStock-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para StockMovement (DIP).
// Los movimientos son inmutables: solo inserción y lectura.
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByReagent(reagentID string, limit, offset int) ([]*entity.StockMovement, error)
}
