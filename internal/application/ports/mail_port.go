package ports

import "context"

// MailMessage correo saliente ya renderizado.
type MailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// MailDispatcher define el puerto de salida para el envío de correos.
// La implementación puede encolar (Redis) o enviar en línea (SMTP).
type MailDispatcher interface {
	Dispatch(ctx context.Context, msg MailMessage) error
}

// MailSender envía un correo de forma síncrona. Lo usan los workers de la cola.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}
