package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
)

// JobEmail tipo de trabajo de envío de correo.
const JobEmail = "email"

// Job sobre genérico de los trabajos encolados.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher encola correos en una lista de Redis; el pool de workers los consume con BRPOP.
// Sin cliente Redis envía en línea con el sender.
type Dispatcher struct {
	rdb    *redis.Client
	queue  string
	sender ports.MailSender
}

// NewDispatcher construye el dispatcher. rdb puede ser nil (envío síncrono).
func NewDispatcher(rdb *redis.Client, queue string, sender ports.MailSender) *Dispatcher {
	return &Dispatcher{rdb: rdb, queue: queue, sender: sender}
}

var _ ports.MailDispatcher = (*Dispatcher)(nil)

// Dispatch encola el correo o lo envía directamente si no hay Redis.
func (d *Dispatcher) Dispatch(ctx context.Context, msg ports.MailMessage) error {
	if d.rdb == nil {
		return d.sender.Send(ctx, msg)
	}
	encoded, err := encodeJob(JobEmail, msg)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, d.queue, encoded).Err(); err != nil {
		return fmt.Errorf("queue: lpush %s: %w", d.queue, err)
	}
	return nil
}

func encodeJob(jobType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("queue: codificar payload: %w", err)
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return nil, fmt.Errorf("queue: codificar job: %w", err)
	}
	return encoded, nil
}
