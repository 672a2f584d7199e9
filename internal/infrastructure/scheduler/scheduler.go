// Package scheduler ejecuta los trabajos periódicos (cron, UTC).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

// JobFunc trabajo periódico; devuelve cuántas filas afectó.
type JobFunc func(ctx context.Context) (int64, error)

// Job trabajo con nombre y expresión cron.
type Job struct {
	Name string
	Spec string
	Run  JobFunc
}

// Scheduler envoltorio de robfig/cron con recuperación de pánicos y log por ejecución.
type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration
}

// New construye el scheduler en UTC.
func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		log:     log.Component("scheduler"),
		timeout: 5 * time.Minute,
	}
}

// Register añade los trabajos. Una expresión inválida aborta el registro.
func (s *Scheduler) Register(jobs ...Job) error {
	for _, j := range jobs {
		j := j
		if _, err := s.cron.AddFunc(j.Spec, func() { s.runJob(j) }); err != nil {
			return fmt.Errorf("scheduler: programar %s (%q): %w", j.Name, j.Spec, err)
		}
		s.log.Info().Str("job", j.Name).Str("spec", j.Spec).Msg("trabajo programado")
	}
	return nil
}

// Start arranca el cron en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene el cron y espera a los trabajos en curso o a que ctx venza.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler: trabajos en curso no terminaron a tiempo")
	}
}

func (s *Scheduler) runJob(j Job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("job", j.Name).Msg("trabajo en pánico")
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := j.Run(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", j.Name).Msg("trabajo falló")
		return
	}
	s.log.Info().Str("job", j.Name).Int64("affected", n).Dur("elapsed", time.Since(start)).Msg("trabajo completado")
}
