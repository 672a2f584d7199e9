package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/jhoicas/stellarmotion-erp/internal/application/ports"
	"github.com/jhoicas/stellarmotion-erp/pkg/config"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"
)

type sendFunc func(addr string, auth smtp.Auth, e *email.Email) error

// Mailer envía correos por SMTP. Sin host configurado solo registra el envío.
type Mailer struct {
	cfg  config.SMTPConfig
	log  *logger.Logger
	send sendFunc
}

// NewMailer construye el mailer SMTP.
func NewMailer(cfg config.SMTPConfig, log *logger.Logger) *Mailer {
	if log == nil {
		log = logger.Nop()
	}
	return &Mailer{
		cfg: cfg,
		log: log,
		send: func(addr string, auth smtp.Auth, e *email.Email) error {
			return e.Send(addr, auth)
		},
	}
}

var _ ports.MailSender = (*Mailer)(nil)

// Send envía el mensaje. ctx solo se consulta antes de conectar.
func (m *Mailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.To == "" {
		return fmt.Errorf("mailer: destinatario vacío")
	}
	if !m.cfg.Enabled() {
		m.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("mailer: SMTP no configurado, correo descartado")
		return nil
	}

	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, auth, e); err != nil {
		return fmt.Errorf("mailer: enviar a %s: %w", msg.To, err)
	}
	m.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mailer: correo enviado")
	return nil
}
