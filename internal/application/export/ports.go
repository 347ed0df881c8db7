package export

import "context"

// WorkerInvoker notifica al worker externo que hay un job por procesar.
// El contrato es best-effort: un error de notificación no falla la creación
// del job (el barrido periódico rescata jobs colgados).
type WorkerInvoker interface {
	Notify(ctx context.Context, jobID, jobType string) error
}
