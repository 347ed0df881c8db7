package digest

import (
	"context"
	"time"

	"github.com/jhoicas/LabStock-api/internal/domain/entity"
)

// SubscriberStore provee los suscriptores elegibles del digest
// (activos y con receive_alerts = true).
type SubscriberStore interface {
	ListSubscribers() ([]*entity.User, error)
}

// ReagentSource provee los reactivos activos. Satisfecho por el repo PostgreSQL.
type ReagentSource interface {
	ListActive() ([]*entity.Reagent, error)
}

// LotSource provee los lotes activos no agotados con caducidad ≤ cutoff,
// orden ascendente por caducidad. Satisfecho por el repo PostgreSQL.
type LotSource interface {
	ListExpiring(cutoff time.Time) ([]*entity.Lot, error)
}

// NotificationStore persiste registros de envío y resuelve el dedup diario.
type NotificationStore interface {
	Create(notification *entity.AlertNotification) error
	ExistsSentSince(userID string, since time.Time) (bool, error)
}

// Message correo estructurado a entregar.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// MailSender entrega un mensaje o devuelve un error con texto legible.
// Se inyecta siempre como dependencia, nunca como singleton global, para
// que los tests sustituyan un fake sin estado compartido.
type MailSender interface {
	Send(ctx context.Context, msg Message) error
}
