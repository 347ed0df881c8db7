// Package mail implementa el puerto MailSender contra una API transaccional
// estilo Resend. El cliente se inyecta en el dispatcher; nunca es un
// singleton de paquete.
package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/domain"
	"github.com/jhoicas/LabStock-api/pkg/config"
)

var _ digest.MailSender = (*ResendClient)(nil)

// ResendClient cliente HTTP del proveedor de correo.
type ResendClient struct {
	http *resty.Client
	from string
}

// apiError cuerpo de error de la API.
type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// sendRequest cuerpo del POST /emails.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// NewResendClient construye el cliente. Con APIKey vacío el cliente se crea
// igualmente pero Send devuelve ErrMailNotConfigured: el digest registra el
// fallo por suscriptor en lugar de tumbar el arranque.
func NewResendClient(cfg config.MailConfig) *ResendClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}
	from := cfg.FromEmail
	if cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.FromEmail)
	}
	return &ResendClient{http: client, from: from}
}

// Send entrega un mensaje. Un status no-2xx se convierte en error con el
// mensaje legible del proveedor (ese texto acaba en el registro "failed").
func (c *ResendClient) Send(ctx context.Context, msg digest.Message) error {
	if c.http.Token == "" {
		return domain.ErrMailNotConfigured
	}
	to := msg.To
	if msg.ToName != "" {
		to = fmt.Sprintf("%s <%s>", msg.ToName, msg.To)
	}

	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendRequest{
			From:    c.from,
			To:      []string{to},
			Subject: msg.Subject,
			HTML:    msg.HTML,
			Text:    msg.Text,
		}).
		SetError(&apiErr).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return fmt.Errorf("mail: %s (%s)", apiErr.Message, apiErr.Name)
		}
		return fmt.Errorf("mail: http %d", resp.StatusCode())
	}
	return nil
}
