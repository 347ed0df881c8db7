package repository

import "github.com/jhoicas/LabStock-api/internal/domain/entity"

// ReagentRepository define el puerto de persistencia para Reagent (DIP).
type ReagentRepository interface {
	Create(reagent *entity.Reagent) error
	GetByID(id string) (*entity.Reagent, error)
	GetByReference(reference string) (*entity.Reagent, error)
	GetByBarcode(barcode string) (*entity.Reagent, error)
	Update(reagent *entity.Reagent) error
	UpdateTotalQuantity(reagentID string, total int) error
	List(search string, limit, offset int) ([]*entity.Reagent, error)
	ListActive() ([]*entity.Reagent, error)
	Deactivate(id string) error
}
