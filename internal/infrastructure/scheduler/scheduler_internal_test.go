package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

func newTestScheduler(buf *bytes.Buffer) *Scheduler {
	return New(logger.New(logger.Config{Output: buf, Level: "debug"}))
}

func TestRegister_ExpresionInvalida(t *testing.T) {
	s := newTestScheduler(&bytes.Buffer{})
	err := s.Register(Job{Name: "roto", Spec: "cada lunes", Run: func(context.Context) (int64, error) { return 0, nil }})
	assert.Error(t, err)

	require.NoError(t, s.Register(Job{Name: "ok", Spec: "*/15 * * * *", Run: func(context.Context) (int64, error) { return 0, nil }}))
	assert.Len(t, s.cron.Entries(), 1)
}

func TestRunJob_RegistraResultado(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScheduler(&buf)

	s.runJob(Job{Name: "expire", Run: func(context.Context) (int64, error) { return 3, nil }})
	assert.Contains(t, buf.String(), `"affected":3`)

	s.runJob(Job{Name: "overdue", Run: func(context.Context) (int64, error) { return 0, errors.New("db caída") }})
	assert.Contains(t, buf.String(), "trabajo falló")
}

func TestRunJob_RecuperaPanico(t *testing.T) {
	var buf bytes.Buffer
	s := newTestScheduler(&buf)

	assert.NotPanics(t, func() {
		s.runJob(Job{Name: "boom", Run: func(context.Context) (int64, error) { panic("boom") }})
	})
	assert.Contains(t, buf.String(), "trabajo en pánico")
}

func TestStartStop(t *testing.T) {
	s := newTestScheduler(&bytes.Buffer{})
	s.Start()
	s.Stop(context.Background())
}
