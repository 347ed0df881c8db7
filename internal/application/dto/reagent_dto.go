package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReagentRequest entrada para crear un reactivo.
type CreateReagentRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Reference    string          `json:"reference" validate:"required,min=1,max=100"`
	Barcode      string          `json:"barcode"`
	Unit         string          `json:"unit" validate:"required"`
	UnitSize     decimal.Decimal `json:"unit_size"`
	MinimumStock int             `json:"minimum_stock" validate:"min=0"`
	Location     string          `json:"location"`
}

// UpdateReagentRequest entrada para actualizar un reactivo.
// TotalQuantity no se actualiza aquí: se recalcula vía movimientos.
type UpdateReagentRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Barcode      *string          `json:"barcode"`
	Unit         *string          `json:"unit"`
	UnitSize     *decimal.Decimal `json:"unit_size"`
	MinimumStock *int             `json:"minimum_stock" validate:"omitempty,min=0"`
	Location     *string          `json:"location"`
}

// ReagentResponse salida de un reactivo, con su clasificación de stock.
type ReagentResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Reference     string          `json:"reference"`
	Barcode       string          `json:"barcode,omitempty"`
	Unit          string          `json:"unit"`
	UnitSize      decimal.Decimal `json:"unit_size"`
	TotalQuantity int             `json:"total_quantity"`
	MinimumStock  int             `json:"minimum_stock"`
	Location      string          `json:"location,omitempty"`
	StockStatus   string          `json:"stock_status"` // ok, low, out
	StockColor    string          `json:"stock_color"`  // green, amber, red
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ReagentListResponse lista paginada de reactivos.
type ReagentListResponse struct {
	Items []ReagentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
