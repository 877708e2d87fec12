package email

import "context"

// WelcomeSubject is the subject line of the welcome email.
const WelcomeSubject = "¡Bienvenido a Usuarios API!"

// SendWelcomeEmail greets a freshly registered usuario.
func (c *Client) SendWelcomeEmail(ctx context.Context, to, nombre string) error {
	data := map[string]string{
		"Nombre": nombre,
	}

	return c.SendEmail(ctx, to, WelcomeSubject, TemplateWelcome, data)
}
