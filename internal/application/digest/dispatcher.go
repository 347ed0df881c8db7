// Package digest orquesta el envío diario del resumen de alertas de
// inventario: carga suscriptores, clasifica el inventario una sola vez,
// y entrega como máximo un correo por suscriptor por día UTC.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/LabStock-api/internal/domain/alerts"
	"github.com/jhoicas/LabStock-api/internal/domain/entity"
	"github.com/jhoicas/LabStock-api/pkg/logger"
)

// Result resumen de una ejecución del dispatcher.
type Result struct {
	Sent        int
	TotalAlerts int
}

// Dispatcher ejecuta una corrida del digest. Todas las dependencias entran
// por constructor; no hay estado global ni reintentos internos (el reintento
// natural es la corrida programada del día siguiente, filtrada por el dedup
// que solo cuenta registros "sent").
type Dispatcher struct {
	subscribers SubscriberStore
	reagents    ReagentSource
	lots        LotSource
	notifs      NotificationStore
	mail        MailSender
	log         *logger.Logger
}

// NewDispatcher construye el dispatcher.
func NewDispatcher(
	subscribers SubscriberStore,
	reagents ReagentSource,
	lots LotSource,
	notifs NotificationStore,
	mail MailSender,
	log *logger.Logger,
) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		subscribers: subscribers,
		reagents:    reagents,
		lots:        lots,
		notifs:      notifs,
		mail:        mail,
		log:         log,
	}
}

// Run ejecuta una corrida del digest para el día de today.
//
// Un fallo al cargar suscriptores o datos de inventario aborta la corrida
// completa. Un fallo de entrega a un suscriptor queda aislado: se registra
// como "failed" (con el texto del error) y la corrida continúa; ese
// suscriptor sigue elegible para reenvío dentro del mismo día.
func (d *Dispatcher) Run(ctx context.Context, today time.Time) (Result, error) {
	var res Result

	// 1. Suscriptores elegibles. Sin suscriptores no hay más trabajo.
	subs, err := d.subscribers.ListSubscribers()
	if err != nil {
		return res, fmt.Errorf("cargar suscriptores: %w", err)
	}
	if len(subs) == 0 {
		return res, nil
	}

	// 2. Datos compartidos: una sola carga por corrida, de solo lectura para
	// todos los suscriptores (las alertas de inventario no dependen de quién
	// las recibe).
	reagents, err := d.reagents.ListActive()
	if err != nil {
		return res, fmt.Errorf("cargar reactivos: %w", err)
	}
	lots, err := d.lots.ListExpiring(today.AddDate(0, 0, alerts.WarningDays))
	if err != nil {
		return res, fmt.Errorf("cargar lotes por caducar: %w", err)
	}

	// 3–4. Clasificación única. Sin alertas no se escribe ni envía nada.
	part := alerts.Partition(reagents, lots, today)
	res.TotalAlerts = part.Total()
	if res.TotalAlerts == 0 {
		return res, nil
	}

	subject := buildSubject(res.TotalAlerts)
	htmlBody, textBody := renderBody(part, today)
	since := utcMidnight(today)

	// 5. Por suscriptor: dedup, componer, enviar, registrar resultado.
	for _, sub := range subs {
		already, err := d.notifs.ExistsSentSince(sub.ID, since)
		if err != nil {
			d.log.Error().Err(err).Str("user_id", sub.ID).Msg("dedup check falló; suscriptor omitido")
			continue
		}
		if already {
			d.log.Debug().Str("user_id", sub.ID).Msg("digest ya enviado hoy, se omite")
			continue
		}

		notification := &entity.AlertNotification{
			ID:                uuid.New().String(),
			UserID:            sub.ID,
			LowStockCount:     len(part.LowStock),
			OutOfStockCount:   len(part.OutOfStock),
			ExpiredCount:      len(part.ExpiredLots),
			ExpiringSoonCount: len(part.ExpiringSoon),
			SentAt:            time.Now().UTC(),
		}

		err = d.mail.Send(ctx, Message{
			To:      sub.Email,
			ToName:  sub.Name,
			Subject: subject,
			HTML:    renderGreeting(sub.Name) + htmlBody,
			Text:    textGreeting(sub.Name) + textBody,
		})
		if err != nil {
			notification.Status = entity.NotificationFailed
			notification.ErrorMessage = err.Error()
			if perr := d.notifs.Create(notification); perr != nil {
				d.log.Error().Err(perr).Str("user_id", sub.ID).Msg("no se pudo registrar el fallo de envío")
			}
			d.log.Warn().Err(err).Str("email", sub.Email).Msg("envío de digest falló")
			continue
		}

		notification.Status = entity.NotificationSent
		if perr := d.notifs.Create(notification); perr != nil {
			// El correo ya salió: se cuenta como enviado aunque el registro
			// falle. El dedup del día queda sin red para este suscriptor.
			d.log.Error().Err(perr).Str("user_id", sub.ID).Msg("no se pudo registrar el envío")
		}
		res.Sent++
	}

	d.log.Info().Int("sent", res.Sent).Int("total_alerts", res.TotalAlerts).Msg("digest completado")
	return res, nil
}

// utcMidnight devuelve el inicio del día UTC de t (límite inferior del dedup).
func utcMidnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
