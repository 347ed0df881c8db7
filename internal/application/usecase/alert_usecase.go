package usecase

import (
	"time"

	"github.com/jhoicas/LabStock-api/internal/application/dto"
	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

// AlertUseCase calcula la partición de alertas en vivo para el dashboard.
// El digest diario usa la misma clasificación vía internal/application/digest.
type AlertUseCase struct {
	reagentRepo repository.ReagentRepository
	lotRepo     repository.LotRepository
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(reagentRepo repository.ReagentRepository, lotRepo repository.LotRepository) *AlertUseCase {
	return &AlertUseCase{reagentRepo: reagentRepo, lotRepo: lotRepo}
}

// Current devuelve la partición de alertas calculada sobre el estado actual.
func (uc *AlertUseCase) Current() (*dto.AlertsResponse, error) {
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

	out := &dto.AlertsResponse{
		Summary: dto.AlertSummary{
			LowStockCount:     len(part.LowStock),
			OutOfStockCount:   len(part.OutOfStock),
			ExpiredCount:      len(part.ExpiredLots),
			ExpiringSoonCount: len(part.ExpiringSoon),
			TotalAlerts:       part.Total(),
		},
		OutOfStock:   make([]dto.ReagentResponse, 0, len(part.OutOfStock)),
		LowStock:     make([]dto.ReagentResponse, 0, len(part.LowStock)),
		ExpiredLots:  make([]dto.LotResponse, 0, len(part.ExpiredLots)),
		ExpiringSoon: make([]dto.LotResponse, 0, len(part.ExpiringSoon)),
	}
	for _, r := range part.OutOfStock {
		out.OutOfStock = append(out.OutOfStock, *toReagentResponse(r))
	}
	for _, r := range part.LowStock {
		out.LowStock = append(out.LowStock, *toReagentResponse(r))
	}
	for _, l := range part.ExpiredLots {
		out.ExpiredLots = append(out.ExpiredLots, *toLotResponse(l, now))
	}
	for _, l := range part.ExpiringSoon {
		out.ExpiringSoon = append(out.ExpiringSoon, *toLotResponse(l, now))
	}
	return out, nil
}
