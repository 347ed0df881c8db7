package report

import (
	"context"

	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// InventoryPDFGenerator genera el PDF del estado de inventario.
// Implementado en infrastructure/pdf con Maroto.
type InventoryPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, reagents []*entity.Reagent, part alerts.AlertPartition) ([]byte, error)
}
