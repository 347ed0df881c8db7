package dto

import "time"

// CreateExportRequest entrada para solicitar una exportación.
type CreateExportRequest struct {
	Type string `json:"type" validate:"required,oneof=inventory movements"`
}

// ExportJobResponse estado de un job de exportación.
type ExportJobResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"` // pending, completed, failed
	FileURL      string    `json:"file_url,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
