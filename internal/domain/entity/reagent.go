package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reagent representa un reactivo del catálogo del laboratorio (no un lote físico).
// TotalQuantity es la suma denormalizada de las cantidades de sus lotes activos;
// se recalcula al registrar movimientos. Nunca es negativa (CHECK en DB).
type Reagent struct {
	ID            string
	Name          string
	SearchName    string // nombre normalizado sin diacríticos, para búsqueda
	Reference     string // código de catálogo del fabricante
	Barcode       string // código de barras del envase (vacío = sin código)
	Unit          string // mL, g, unidades...
	UnitSize      decimal.Decimal // contenido por envase (ej. 500 mL)
	TotalQuantity int     // envases en existencia
	MinimumStock  int     // umbral de alerta de stock bajo
	Location      string  // nevera 2, estante B3...
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
