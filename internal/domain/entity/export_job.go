package entity

import "time"

// Estados y tipos de un ExportJob.
const (
	ExportPending   = "pending"
	ExportCompleted = "completed"
	ExportFailed    = "failed"

	ExportTypeInventory = "inventory"
	ExportTypeMovements = "movements"
)

// ExportJob representa una exportación a hoja de cálculo delegada a un worker
// externo. Este servicio crea el job, notifica al worker (best-effort) y
// consulta el estado; el worker escribe file_url al completar.
type ExportJob struct {
	ID           string
	UserID       string
	Type         string // inventory, movements
	Status       string // pending, completed, failed
	FileURL      string // URL firmada del archivo, cuando completed
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
