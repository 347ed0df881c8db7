package entity

import "time"

// Lot representa un lote fechado de un reactivo, con su propia cantidad y caducidad.
// Un lote con Quantity 0 queda fuera del alertado de caducidad (ya agotado).
type Lot struct {
	ID         string
	ReagentID  string
	LotNumber  string
	ExpiryDate *time.Time // nil = sin fecha de caducidad
	Quantity   int        // envases de este lote, nunca negativo
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Campos del reactivo padre, poblados en consultas con join (solo lectura).
	ReagentName      string
	ReagentReference string
	ReagentUnit      string
}
