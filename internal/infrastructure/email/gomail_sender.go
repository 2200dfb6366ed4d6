// Package email implementa el envío de correos por SMTP con gomail.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/huggingsoft/backoffice-api/internal/application/auth"
	"github.com/huggingsoft/backoffice-api/pkg/config"
)

var _ auth.MailSender = (*GomailSender)(nil)

// GomailSender envía correos transaccionales vía SMTP.
type GomailSender struct {
	cfg config.MailConfig
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.MailConfig) *GomailSender {
	return &GomailSender{cfg: cfg}
}

// SendPasswordReset envía el correo de restablecimiento con el enlace.
func (s *GomailSender) SendPasswordReset(toAddress, toName, resetLink string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.FromAddress, s.cfg.FromName)
	m.SetAddressHeader("To", toAddress, toName)
	m.SetHeader("Subject", "Restablecimiento de contraseña")
	m.SetBody("text/html", fmt.Sprintf(`
		<p>Hola %s,</p>
		<p>Recibimos una solicitud para restablecer tu contraseña. Para continuar, abre este enlace:</p>
		<p><a href="%s">%s</a></p>
		<p>Si no solicitaste el cambio, ignora este correo; tu contraseña sigue siendo la misma.</p>
	`, toName, resetLink, resetLink))

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo de restablecimiento: %w", err)
	}
	return nil
}
