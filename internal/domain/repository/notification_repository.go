package repository

import (
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para AlertNotification (DIP).
type NotificationRepository interface {
	Create(notification *entity.AlertNotification) error
	// ExistsSentSince indica si el usuario ya tiene un registro con status
	// "sent" y sent_at ≥ since. Los registros "failed" no cuentan: el
	// suscriptor sigue elegible para reintento dentro del mismo día.
	ExistsSentSince(userID string, since time.Time) (bool, error)
}
