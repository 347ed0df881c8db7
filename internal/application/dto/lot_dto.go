package dto

import "time"

// CreateLotRequest entrada para registrar un lote de un reactivo.
type CreateLotRequest struct {
	LotNumber  string     `json:"lot_number" validate:"required,min=1,max=100"`
	ExpiryDate *time.Time `json:"expiry_date"` // opcional; formato RFC 3339 o fecha
	Quantity   int        `json:"quantity" validate:"min=0"`
}

// UpdateLotRequest entrada para actualizar un lote.
type UpdateLotRequest struct {
	LotNumber  *string    `json:"lot_number" validate:"omitempty,min=1,max=100"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

// LotResponse salida de un lote, con su clasificación de caducidad.
type LotResponse struct {
	ID           string     `json:"id"`
	ReagentID    string     `json:"reagent_id"`
	ReagentName  string     `json:"reagent_name,omitempty"`
	LotNumber    string     `json:"lot_number"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	Quantity     int        `json:"quantity"`
	ExpiryStatus string     `json:"expiry_status"` // none, expired, critical, warning, ok
	DaysUntil    *int       `json:"days_until,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
