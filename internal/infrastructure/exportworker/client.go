// Package exportworker notifica al worker externo de exportación. La llamada
// es best-effort: el worker también puede descubrir jobs pending por su
// cuenta, y el barrido periódico cierra los que nadie procese.
package exportworker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jhoicas/LabStock-api/internal/application/export"
)

var _ export.WorkerInvoker = (*Client)(nil)

// Client invocador HTTP del worker.
type Client struct {
	http *resty.Client
	url  string
}

// NewClient construye el invocador. url vacío deshabilita la notificación.
func NewClient(url string) *Client {
	return &Client{
		http: resty.New().SetTimeout(10 * time.Second),
		url:  url,
	}
}

// Notify avisa al worker de un job nuevo. No espera a que el job termine.
func (c *Client) Notify(ctx context.Context, jobID, jobType string) error {
	if c.url == "" {
		return nil
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"job_id": jobID, "type": jobType}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("export worker: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("export worker: http %d", resp.StatusCode())
	}
	return nil
}
