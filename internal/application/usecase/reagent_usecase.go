package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
	"github.com/jhoicas/LabStock-api/pkg/normalize"
)

// ReagentUseCase casos de uso CRUD para reactivos. TotalQuantity se maneja
// vía movimientos, nunca por edición directa.
type ReagentUseCase struct {
	repo repository.ReagentRepository
}

// NewReagentUseCase construye el caso de uso.
func NewReagentUseCase(repo repository.ReagentRepository) *ReagentUseCase {
	return &ReagentUseCase{repo: repo}
}

// Create crea un reactivo. La referencia de catálogo es única.
func (uc *ReagentUseCase) Create(in dto.CreateReagentRequest) (*dto.ReagentResponse, error) {
	existing, _ := uc.repo.GetByReference(in.Reference)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.MinimumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	reagent := &entity.Reagent{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SearchName:    normalize.SearchKey(in.Name),
		Reference:     in.Reference,
		Barcode:       in.Barcode,
		Unit:          in.Unit,
		UnitSize:      in.UnitSize,
		TotalQuantity: 0,
		MinimumStock:  in.MinimumStock,
		Location:      in.Location,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(reagent); err != nil {
		return nil, err
	}
	return toReagentResponse(reagent), nil
}

// GetByID obtiene un reactivo por ID.
func (uc *ReagentUseCase) GetByID(id string) (*dto.ReagentResponse, error) {
	reagent, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reagent == nil {
		return nil, nil
	}
	return toReagentResponse(reagent), nil
}

// GetByBarcode resuelve un reactivo escaneado por su código de barras.
func (uc *ReagentUseCase) GetByBarcode(barcode string) (*dto.ReagentResponse, error) {
	if barcode == "" {
		return nil, domain.ErrInvalidInput
	}
	reagent, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if reagent == nil {
		return nil, nil
	}
	return toReagentResponse(reagent), nil
}

// Update actualiza un reactivo. No permite modificar TotalQuantity (se maneja vía movimientos).
func (uc *ReagentUseCase) Update(id string, in dto.UpdateReagentRequest) (*dto.ReagentResponse, error) {
	reagent, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reagent == nil {
		return nil, nil
	}
	if in.Name != nil {
		reagent.Name = *in.Name
		reagent.SearchName = normalize.SearchKey(*in.Name)
	}
	if in.Barcode != nil {
		reagent.Barcode = *in.Barcode
	}
	if in.Unit != nil {
		reagent.Unit = *in.Unit
	}
	if in.UnitSize != nil {
		reagent.UnitSize = *in.UnitSize
	}
	if in.MinimumStock != nil {
		if *in.MinimumStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		reagent.MinimumStock = *in.MinimumStock
	}
	if in.Location != nil {
		reagent.Location = *in.Location
	}
	reagent.UpdatedAt = time.Now()
	if err := uc.repo.Update(reagent); err != nil {
		return nil, err
	}
	return toReagentResponse(reagent), nil
}

// List lista reactivos con paginación y búsqueda opcional (insensible a acentos).
func (uc *ReagentUseCase) List(search string, limit, offset int) (*dto.ReagentListResponse, error) {
	list, err := uc.repo.List(normalize.SearchKey(search), limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReagentResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReagentResponse(r))
	}
	return &dto.ReagentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete desactiva un reactivo (borrado lógico: los movimientos lo referencian).
func (uc *ReagentUseCase) Delete(id string) error {
	return uc.repo.Deactivate(id)
}

func toReagentResponse(r *entity.Reagent) *dto.ReagentResponse {
	if r == nil {
		return nil
	}
	stock := alerts.ClassifyStock(r.TotalQuantity, r.MinimumStock)
	return &dto.ReagentResponse{
		ID:            r.ID,
		Name:          r.Name,
		Reference:     r.Reference,
		Barcode:       r.Barcode,
		Unit:          r.Unit,
		UnitSize:      r.UnitSize,
		TotalQuantity: r.TotalQuantity,
		MinimumStock:  r.MinimumStock,
		Location:      r.Location,
		StockStatus:   string(stock.Status),
		StockColor:    stock.Color,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
