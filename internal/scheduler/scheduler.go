// Package scheduler programa las tareas periódicas internas: el digest
// diario de alertas y el barrido de export jobs colgados. El digest también
// puede dispararlo un cron externo vía /api/cron/alert-digest; el dedup
// diario hace que ambas vías convivan sin duplicar correos.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/LabStock-api/internal/application/digest"
	"github.com/jhoicas/LabStock-api/internal/application/export"
	"github.com/jhoicas/LabStock-api/pkg/config"
	"github.com/jhoicas/LabStock-api/pkg/logger"
)

// Scheduler envuelve el cron interno del proceso.
type Scheduler struct {
	cron     *cron.Cron
	digest   *digest.Dispatcher
	exportUC *export.UseCase
	cfg      config.CronConfig
	log      *logger.Logger
}

// New construye el scheduler.
func New(d *digest.Dispatcher, exportUC *export.UseCase, cfg config.CronConfig, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:     cron.New(),
		digest:   d,
		exportUC: exportUC,
		cfg:      cfg,
		log:      log,
	}
}

// Start registra las tareas y arranca el cron.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.cfg.DigestSpec, s.runDigest); err != nil {
		s.log.Error().Err(err).Str("spec", s.cfg.DigestSpec).Msg("no se pudo programar el digest")
	}
	if _, err := s.cron.AddFunc(s.cfg.SweepSpec, s.sweepExports); err != nil {
		s.log.Error().Err(err).Str("spec", s.cfg.SweepSpec).Msg("no se pudo programar el barrido de exports")
	}
	s.cron.Start()
	s.log.Info().Str("digest", s.cfg.DigestSpec).Str("sweep", s.cfg.SweepSpec).Msg("scheduler iniciado")
}

// Stop detiene el cron y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	res, err := s.digest.Run(ctx, time.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("corrida programada del digest falló")
		return
	}
	s.log.Info().Int("sent", res.Sent).Int("total_alerts", res.TotalAlerts).Msg("corrida programada del digest")
}

func (s *Scheduler) sweepExports() {
	if _, err := s.exportUC.SweepStale(time.Now()); err != nil {
		s.log.Error().Err(err).Msg("barrido de export jobs falló")
	}
}
