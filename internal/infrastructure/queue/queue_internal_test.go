package queue

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

type fakeSender struct {
	sent []ports.MailMessage
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg ports.MailMessage) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func TestDispatch_SinRedisEnviaEnLinea(t *testing.T) {
	s := &fakeSender{}
	d := NewDispatcher(nil, "q", s)

	require.NoError(t, d.Dispatch(context.Background(), ports.MailMessage{To: "a@b.com", Subject: "Hola"}))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Hola", s.sent[0].Subject)

	s.err = errors.New("smtp caído")
	assert.Error(t, d.Dispatch(context.Background(), ports.MailMessage{To: "a@b.com"}))
}

func TestProcess_JobDeCorreo(t *testing.T) {
	s := &fakeSender{}
	var buf bytes.Buffer
	p := NewPool(nil, "q", s, logger.New(logger.Config{Output: &buf}))

	raw, err := encodeJob(JobEmail, ports.MailMessage{To: "ana@sm.io", Subject: "Invitación", Text: "enlace"})
	require.NoError(t, err)

	p.process(context.Background(), "q", string(raw))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "ana@sm.io", s.sent[0].To)
	assert.Equal(t, "enlace", s.sent[0].Text)
}

func TestProcess_JobsInvalidos(t *testing.T) {
	s := &fakeSender{}
	var buf bytes.Buffer
	p := NewPool(nil, "q", s, logger.New(logger.Config{Output: &buf}))

	p.process(context.Background(), "q", "{no-json")
	assert.Contains(t, buf.String(), "job ilegible")

	raw, err := encodeJob("sms", map[string]string{"to": "+57"})
	require.NoError(t, err)
	p.process(context.Background(), "q", string(raw))
	assert.Contains(t, buf.String(), "tipo de job desconocido")

	assert.Empty(t, s.sent)
}
