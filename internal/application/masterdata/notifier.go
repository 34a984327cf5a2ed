package masterdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// WelcomeMessage datos del personal nuevo para el correo de bienvenida.
type WelcomeMessage struct {
	UserName   string
	FullName   string
	Email      string
	Role       string
	BranchName string
}

// PostCommitNotifier envía los correos de bienvenida después de un commit exitoso.
// Cada falla se registra en el log y se ignora: nunca cambia el resultado de la importación.
// El correo nunca incluye la contraseña inicial.
type PostCommitNotifier struct {
	sender  EmailSender
	appName string
	log     zerolog.Logger
}

// NewPostCommitNotifier construye el notificador.
func NewPostCommitNotifier(sender EmailSender, appName string, log zerolog.Logger) *PostCommitNotifier {
	return &PostCommitNotifier{sender: sender, appName: appName, log: log}
}

// NotifyWelcome envía un correo por mensaje, en secuencia. Devuelve cuántos se enviaron y cuántos fallaron.
func (n *PostCommitNotifier) NotifyWelcome(ctx context.Context, msgs []WelcomeMessage) (sent, failed int) {
	for _, m := range msgs {
		subject, body := n.compose(m)
		if err := n.sender.Send(ctx, m.Email, subject, body); err != nil {
			failed++
			recordNotification(false)
			n.log.Error().Err(err).Str("user", m.UserName).Str("email", m.Email).Msg("envío de bienvenida fallido")
			continue
		}
		sent++
		recordNotification(true)
	}
	return sent, failed
}

func (n *PostCommitNotifier) compose(m WelcomeMessage) (string, string) {
	subject := fmt.Sprintf("Bienvenido a %s", n.appName)
	var b strings.Builder
	fmt.Fprintf(&b, "Hola %s,\n\n", m.FullName)
	fmt.Fprintf(&b, "Se creó tu cuenta en %s con el rol %s en la sucursal %s.\n", n.appName, m.Role, m.BranchName)
	fmt.Fprintf(&b, "Usuario: %s\n\n", m.UserName)
	b.WriteString("Solicita la contraseña inicial al administrador de tu sucursal, inicia sesión y cámbiala en tu primer ingreso.\n")
	return subject, b.String()
}
