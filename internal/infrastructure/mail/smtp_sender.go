package mail

import (
	"context"
	"crypto/tls"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"gopkg.in/gomail.v2"
)

var _ masterdata.EmailSender = (*SMTPSender)(nil)

// SMTPConfig datos del servidor de correo saliente.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	// InsecureTLS omite la verificación del certificado (solo para servidores locales de prueba).
	InsecureTLS bool
}

// dialer permite reemplazar el envío real en tests.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender envía correos de texto plano vía SMTP.
type SMTPSender struct {
	from   string
	dialer dialer
}

// NewSMTPSender construye el adaptador de correo.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	if cfg.InsecureTLS {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &SMTPSender{from: cfg.From, dialer: d}
}

// Send arma el mensaje y lo entrega. gomail no acepta contexto; se respeta la cancelación previa.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// NoopSender descarta los correos; se usa cuando las notificaciones están deshabilitadas.
type NoopSender struct{}

// Send no hace nada.
func (NoopSender) Send(context.Context, string, string, string) error { return nil }
