// Package scheduler ejecuta el escaneo periódico de estoque bajo.
package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/stockledger-api/pkg/logger"
)

const jobTimeout = 2 * time.Minute

// LowStockJob escaneo que devuelve cuántos saldos quedaron por debajo del mínimo.
type LowStockJob interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler agenda LowStockJob según una expresión cron estándar (5 campos, o descriptores @every/@daily).
// Una expresión vacía deja el scheduler desactivado.
type Scheduler struct {
	cron *cron.Cron
	expr string
	job  LowStockJob
	log  *logger.Logger
}

// Validate comprueba la expresión sin arrancar nada. Vacía es válida (scheduler desactivado).
func Validate(expr string) error {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	_, err := cron.ParseStandard(expr)
	return err
}

// New crea el scheduler; no arranca nada hasta Start.
func New(expr string, job LowStockJob, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron: cron.New(),
		expr: strings.TrimSpace(expr),
		job:  job,
		log:  log.Component("scheduler"),
	}
}

// Enabled indica si hay expresión configurada.
func (s *Scheduler) Enabled() bool { return s.expr != "" }

// Start registra el job y arranca el cron. Devuelve error si la expresión es inválida.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.log.Info().Msg("escaneo de estoque bajo desactivado")
		return nil
	}
	if _, err := s.cron.AddFunc(s.expr, s.runOnce); err != nil {
		return err
	}
	s.log.Info().Str("cron", s.expr).Msg("iniciando scheduler")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine un job en curso.
func (s *Scheduler) Stop() {
	if !s.Enabled() {
		return
	}
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.job.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("escaneo de estoque bajo")
		return
	}
	s.log.Info().Int("items", n).Msg("escaneo de estoque bajo completado")
}
