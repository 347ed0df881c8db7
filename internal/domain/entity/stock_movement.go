package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementEntrada = "entrada"
	MovementSalida  = "salida"
	MovementAjuste  = "ajuste"
)

// StockMovement registra una entrada, salida o ajuste sobre un lote.
// Es inmutable: la traza de auditoría nunca se edita ni borra.
type StockMovement struct {
	ID        string
	ReagentID string
	LotID     string
	UserID    string
	Type      string // entrada, salida, ajuste
	Quantity  int    // delta aplicado al lote (con signo)
	Reason    string
	CreatedAt time.Time
}
