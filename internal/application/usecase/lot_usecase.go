package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// LotUseCase casos de uso para lotes. La cantidad de un lote solo cambia
// vía movimientos; aquí se gestionan número de lote y caducidad.
type LotUseCase struct {
	lotRepo     repository.LotRepository
	reagentRepo repository.ReagentRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(lotRepo repository.LotRepository, reagentRepo repository.ReagentRepository) *LotUseCase {
	return &LotUseCase{lotRepo: lotRepo, reagentRepo: reagentRepo}
}

// Create registra un lote de un reactivo existente. La cantidad inicial se
// suma al total del reactivo.
func (uc *LotUseCase) Create(reagentID string, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	reagent, err := uc.reagentRepo.GetByID(reagentID)
	if err != nil {
		return nil, err
	}
	if reagent == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	lot := &entity.Lot{
		ID:         uuid.New().String(),
		ReagentID:  reagentID,
		LotNumber:  in.LotNumber,
		ExpiryDate: in.ExpiryDate,
		Quantity:   in.Quantity,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.lotRepo.Create(lot); err != nil {
		return nil, err
	}
	if err := uc.syncReagentTotal(reagentID); err != nil {
		return nil, err
	}
	return toLotResponse(lot, now), nil
}

// Update modifica número de lote o caducidad (no la cantidad).
func (uc *LotUseCase) Update(id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, nil
	}
	if in.LotNumber != nil {
		lot.LotNumber = *in.LotNumber
	}
	if in.ExpiryDate != nil {
		lot.ExpiryDate = in.ExpiryDate
	}
	lot.UpdatedAt = time.Now()
	if err := uc.lotRepo.Update(lot); err != nil {
		return nil, err
	}
	return toLotResponse(lot, time.Now()), nil
}

// ListByReagent lista los lotes de un reactivo.
func (uc *LotUseCase) ListByReagent(reagentID string) ([]dto.LotResponse, error) {
	list, err := uc.lotRepo.ListByReagent(reagentID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	items := make([]dto.LotResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLotResponse(l, now))
	}
	return items, nil
}

// ListExpiring lista lotes activos no agotados que caducan dentro de la
// ventana de warning, orden ascendente por caducidad.
func (uc *LotUseCase) ListExpiring() ([]dto.LotResponse, error) {
	now := time.Now()
	cutoff := now.AddDate(0, 0, alerts.WarningDays)
	list, err := uc.lotRepo.ListExpiring(cutoff)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLotResponse(l, now))
	}
	return items, nil
}

// Delete desactiva un lote y recalcula el total del reactivo.
func (uc *LotUseCase) Delete(id string) error {
	lot, err := uc.lotRepo.GetByID(id)
	if err != nil {
		return err
	}
	if lot == nil {
		return domain.ErrNotFound
	}
	if err := uc.lotRepo.Deactivate(id); err != nil {
		return err
	}
	return uc.syncReagentTotal(lot.ReagentID)
}

func (uc *LotUseCase) syncReagentTotal(reagentID string) error {
	total, err := uc.lotRepo.SumActiveQuantity(reagentID)
	if err != nil {
		return err
	}
	return uc.reagentRepo.UpdateTotalQuantity(reagentID, total)
}

func toLotResponse(l *entity.Lot, today time.Time) *dto.LotResponse {
	if l == nil {
		return nil
	}
	cls := alerts.ClassifyExpiry(l.ExpiryDate, today)
	return &dto.LotResponse{
		ID:           l.ID,
		ReagentID:    l.ReagentID,
		ReagentName:  l.ReagentName,
		LotNumber:    l.LotNumber,
		ExpiryDate:   l.ExpiryDate,
		Quantity:     l.Quantity,
		ExpiryStatus: string(cls.Status),
		DaysUntil:    cls.DaysUntil,
		Active:       l.Active,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}
