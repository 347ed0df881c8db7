// Package alerts implementa la clasificación pura de inventario en categorías
// de alerta (servicio de dominio, sin efectos secundarios ni dependencias).
//
// Reglas de stock:     out ⇔ cantidad ≤ 0; low ⇔ 0 < cantidad ≤ mínimo; ok resto.
// Reglas de caducidad: expired ⇔ caduca estrictamente antes de hoy;
//
//	critical ⇔ 0–7 días; warning ⇔ 8–30 días; ok resto; none ⇔ sin fecha.
//
// Los días se cuentan sobre fechas calendario con la hora en cero, como
// techo de (caducidad − hoy) en días enteros.
package alerts

import (
	"sort"
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// StockStatus resultado de clasificar la existencia de un reactivo.
type StockStatus string

// ExpiryStatus resultado de clasificar la caducidad de un lote.
type ExpiryStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
	StockOut StockStatus = "out"

	ExpiryNone     ExpiryStatus = "none"
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryCritical ExpiryStatus = "critical"
	ExpiryWarning  ExpiryStatus = "warning"
	ExpiryOK       ExpiryStatus = "ok"
)

// Umbrales de caducidad en días (inclusivos).
const (
	CriticalDays = 7
	WarningDays  = 30
)

// StockClassification estado de stock con su color de presentación.
type StockClassification struct {
	Status StockStatus
	Color  string // red, amber, green — para el dashboard
}

// ExpiryClassification estado de caducidad con los días restantes.
// DaysUntil es nil cuando el lote no tiene fecha de caducidad; puede ser
// negativo para lotes ya caducados.
type ExpiryClassification struct {
	Status    ExpiryStatus
	DaysUntil *int
}

// AlertPartition salida de Partition: los cuatro grupos de alertas activas.
// ExpiringSoon va siempre ordenado ascendente por fecha de caducidad; los
// demás conservan el orden de entrada.
type AlertPartition struct {
	OutOfStock   []*entity.Reagent
	LowStock     []*entity.Reagent
	ExpiredLots  []*entity.Lot
	ExpiringSoon []*entity.Lot
}

// Total cantidad de alertas en la partición.
func (p AlertPartition) Total() int {
	return len(p.OutOfStock) + len(p.LowStock) + len(p.ExpiredLots) + len(p.ExpiringSoon)
}

// ClassifyStock clasifica la existencia frente al umbral mínimo. Función
// total: una cantidad negativa (fuera de contrato) se trata como agotado.
func ClassifyStock(quantity, minimumStock int) StockClassification {
	switch {
	case quantity <= 0:
		return StockClassification{Status: StockOut, Color: "red"}
	case quantity <= minimumStock:
		return StockClassification{Status: StockLow, Color: "amber"}
	default:
		return StockClassification{Status: StockOK, Color: "green"}
	}
}

// ClassifyExpiry clasifica la caducidad de un lote respecto a today.
// Ambas fechas se normalizan a medianoche antes de restar; el resultado es
// techo de la diferencia en días. expired tiene precedencia sobre critical.
func ClassifyExpiry(expiryDate *time.Time, today time.Time) ExpiryClassification {
	if expiryDate == nil {
		return ExpiryClassification{Status: ExpiryNone}
	}
	days := daysUntil(*expiryDate, today)
	cls := ExpiryClassification{DaysUntil: &days}
	switch {
	case days < 0:
		cls.Status = ExpiryExpired
	case days <= CriticalDays:
		cls.Status = ExpiryCritical
	case days <= WarningDays:
		cls.Status = ExpiryWarning
	default:
		cls.Status = ExpiryOK
	}
	return cls
}

// Partition separa reactivos y lotes en los cuatro grupos de alerta.
// Solo considera reactivos activos y lotes activos con cantidad > 0 y fecha
// de caducidad presente; los lotes caducan "pronto" dentro de la ventana de
// warning (hoy..30 días).
func Partition(reagents []*entity.Reagent, lots []*entity.Lot, today time.Time) AlertPartition {
	var p AlertPartition

	for _, r := range reagents {
		if !r.Active {
			continue
		}
		switch ClassifyStock(r.TotalQuantity, r.MinimumStock).Status {
		case StockOut:
			p.OutOfStock = append(p.OutOfStock, r)
		case StockLow:
			p.LowStock = append(p.LowStock, r)
		}
	}

	for _, l := range lots {
		if !l.Active || l.Quantity <= 0 || l.ExpiryDate == nil {
			continue
		}
		switch ClassifyExpiry(l.ExpiryDate, today).Status {
		case ExpiryExpired:
			p.ExpiredLots = append(p.ExpiredLots, l)
		case ExpiryCritical, ExpiryWarning:
			p.ExpiringSoon = append(p.ExpiringSoon, l)
		}
	}

	// Orden ascendente por caducidad: el lote más urgente encabeza el digest.
	sort.SliceStable(p.ExpiringSoon, func(i, j int) bool {
		return p.ExpiringSoon[i].ExpiryDate.Before(*p.ExpiringSoon[j].ExpiryDate)
	})

	return p
}

// daysUntil devuelve techo((expiry − today) / 1 día) con ambas fechas a medianoche UTC.
func daysUntil(expiry, today time.Time) int {
	e := midnight(expiry)
	t := midnight(today)
	diff := e.Sub(t)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
