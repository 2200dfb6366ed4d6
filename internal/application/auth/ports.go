package auth

// MailSender puerto de envío de correo. La implementación real usa SMTP;
// los tests usan un fake en memoria.
type MailSender interface {
	SendPasswordReset(toAddress, toName, resetLink string) error
}
