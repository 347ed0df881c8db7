package entity

import "time"

// Estados de entrega de un AlertNotification.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// AlertNotification registra un intento de envío del digest a un suscriptor.
// Es inmutable tras crearse; su único uso posterior es el dedup de una vez
// por día UTC (solo los registros con Status "sent" cuentan para el dedup).
type AlertNotification struct {
	ID                string
	UserID            string
	LowStockCount     int
	OutOfStockCount   int
	ExpiredCount      int
	ExpiringSoonCount int
	Status            string // sent, failed
	ErrorMessage      string // texto del error del proveedor de correo, si falló
	SentAt            time.Time
}
