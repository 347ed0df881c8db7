package report

import (
	"context"
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// UseCase genera el informe PDF del inventario: tabla de reactivos con su
// estado de stock y lotes en ventana de caducidad.
type UseCase struct {
	reagentRepo repository.ReagentRepository
	lotRepo     repository.LotRepository
	generator   InventoryPDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(reagentRepo repository.ReagentRepository, lotRepo repository.LotRepository, generator InventoryPDFGenerator) *UseCase {
	return &UseCase{reagentRepo: reagentRepo, lotRepo: lotRepo, generator: generator}
}

// GenerateInventoryPDF devuelve los bytes del PDF del estado actual.
func (uc *UseCase) GenerateInventoryPDF(ctx context.Context) ([]byte, error) {
	now := time.Now()
	reagents, err := uc.reagentRepo.ListActive()
	if err != nil {
		return nil, err
	}
	lots, err := uc.lotRepo.ListExpiring(now.AddDate(0, 0, alerts.WarningDays))
	if err != nil {
		return nil, err
	}
	part := alerts.Partition(reagents, lots, now)
	return uc.generator.GenerateInventoryPDF(ctx, reagents, part)
}
