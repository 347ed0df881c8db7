package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create inserta el registro de un intento de envío (inmutable).
func (r *NotificationRepo) Create(n *entity.AlertNotification) error {
	query := `
		INSERT INTO alert_notifications (id, user_id, low_stock_count, out_of_stock_count, expired_count, expiring_soon_count, status, error_message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.UserID, n.LowStockCount, n.OutOfStockCount, n.ExpiredCount,
		n.ExpiringSoonCount, n.Status, n.ErrorMessage, n.SentAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ExistsSentSince chequeo de existencia para el dedup diario: solo cuentan
// los registros con status "sent".
func (r *NotificationRepo) ExistsSentSince(userID string, since time.Time) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (
			SELECT 1 FROM alert_notifications
			WHERE user_id = $1 AND status = 'sent' AND sent_at >= $2
			LIMIT 1
		)`,
		userID, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check notification dedup: %w", err)
	}
	return exists, nil
}
