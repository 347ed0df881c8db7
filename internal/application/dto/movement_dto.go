package dto

import "time"

// RegisterMovementRequest entrada para registrar un movimiento de stock.
// Quantity es positiva; el signo lo determina Type (salida resta).
// Para ajuste, Quantity es la cantidad final deseada del lote.
type RegisterMovementRequest struct {
	LotID    string `json:"lot_id" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=entrada salida ajuste"`
	Quantity int    `json:"quantity" validate:"min=0"`
	Reason   string `json:"reason"`
}

// MovementResponse salida de un movimiento registrado.
type MovementResponse struct {
	ID        string    `json:"id"`
	ReagentID string    `json:"reagent_id"`
	LotID     string    `json:"lot_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"` // delta aplicado, con signo
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Estado resultante tras aplicar el movimiento.
	LotQuantity   int `json:"lot_quantity"`
	TotalQuantity int `json:"total_quantity"`
}

// MovementHistoryItem entrada del historial de movimientos de un reactivo.
type MovementHistoryItem struct {
	ID        string    `json:"id"`
	LotID     string    `json:"lot_id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
