package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// RegisterMovementUseCase registra entradas, salidas y ajustes de stock.
// Todo ocurre en una transacción: insertar el movimiento, actualizar la
// cantidad del lote y recalcular el total del reactivo. Una salida nunca
// puede dejar el lote en negativo.
type RegisterMovementUseCase struct {
	tx TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(tx TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{tx: tx}
}

// Execute aplica el movimiento. Para entrada/salida, in.Quantity es la
// magnitud; para ajuste, la cantidad final deseada del lote.
func (uc *RegisterMovementUseCase) Execute(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.LotID == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var out dto.MovementResponse
	err := uc.tx.Run(ctx, func(
		movRepo repository.MovementRepository,
		lotRepo repository.LotRepository,
		reagentRepo repository.ReagentRepository,
	) error {
		lot, err := lotRepo.GetByID(in.LotID)
		if err != nil {
			return err
		}
		if lot == nil || !lot.Active {
			return domain.ErrNotFound
		}

		var delta int
		switch in.Type {
		case entity.MovementEntrada:
			delta = in.Quantity
		case entity.MovementSalida:
			if in.Quantity > lot.Quantity {
				return domain.ErrInsufficientStock
			}
			delta = -in.Quantity
		case entity.MovementAjuste:
			delta = in.Quantity - lot.Quantity
		default:
			return domain.ErrInvalidInput
		}

		newQty := lot.Quantity + delta
		if newQty < 0 {
			return domain.ErrInsufficientStock
		}

		movement := &entity.StockMovement{
			ID:        uuid.New().String(),
			ReagentID: lot.ReagentID,
			LotID:     lot.ID,
			UserID:    userID,
			Type:      in.Type,
			Quantity:  delta,
			Reason:    in.Reason,
			CreatedAt: time.Now(),
		}
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if err := lotRepo.UpdateQuantity(lot.ID, newQty); err != nil {
			return err
		}
		total, err := lotRepo.SumActiveQuantity(lot.ReagentID)
		if err != nil {
			return err
		}
		if err := reagentRepo.UpdateTotalQuantity(lot.ReagentID, total); err != nil {
			return err
		}

		out = dto.MovementResponse{
			ID:            movement.ID,
			ReagentID:     movement.ReagentID,
			LotID:         movement.LotID,
			UserID:        movement.UserID,
			Type:          movement.Type,
			Quantity:      movement.Quantity,
			Reason:        movement.Reason,
			CreatedAt:     movement.CreatedAt,
			LotQuantity:   newQty,
			TotalQuantity: total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
