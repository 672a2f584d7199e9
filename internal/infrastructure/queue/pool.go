package queue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

const popTimeout = 5 * time.Second

// Pool workers que consumen la cola de correos.
type Pool struct {
	rdb    *redis.Client
	queue  string
	sender ports.MailSender
	log    *logger.Logger
	wg     sync.WaitGroup
}

// NewPool construye el pool de workers.
func NewPool(rdb *redis.Client, queue string, sender ports.MailSender, log *logger.Logger) *Pool {
	if log == nil {
		log = logger.Nop()
	}
	return &Pool{rdb: rdb, queue: queue, sender: sender, log: log.Component("worker")}
}

// Start lanza n goroutines bloqueadas en BRPOP; terminan al cancelar ctx.
func (p *Pool) Start(ctx context.Context, n int) {
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.log.Info().Int("workers", n).Str("queue", p.queue).Msg("pool de workers iniciado")
}

// Wait bloquea hasta que todos los workers terminan.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for {
		if ctx.Err() != nil {
			p.log.Info().Int("worker", id).Msg("worker detenido")
			return
		}
		// Espera hasta popTimeout y vuelve a comprobar ctx.
		result, err := p.rdb.BRPop(ctx, popTimeout, p.queue).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
				p.log.Warn().Err(err).Int("worker", id).Msg("brpop falló")
				time.Sleep(time.Second)
			}
			continue
		}
		if len(result) < 2 {
			continue
		}
		p.process(ctx, result[0], result[1])
	}
}

// process decodifica y ejecuta un trabajo. Los errores se registran; el trabajo no se reencola.
func (p *Pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		p.log.Error().Err(err).Str("queue", queue).Msg("job ilegible")
		return
	}
	switch job.Type {
	case JobEmail:
		var msg ports.MailMessage
		if err := json.Unmarshal(job.Payload, &msg); err != nil {
			p.log.Error().Err(err).Str("queue", queue).Msg("payload de correo ilegible")
			return
		}
		if err := p.sender.Send(ctx, msg); err != nil {
			p.log.Error().Err(err).Str("to", msg.To).Msg("envío de correo falló")
			return
		}
		p.log.Info().Str("to", msg.To).Msg("correo enviado")
	default:
		p.log.Warn().Str("type", job.Type).Str("queue", queue).Msg("tipo de job desconocido")
	}
}
