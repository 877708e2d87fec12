package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/usuarios-api/internal/config"
	"github.com/deppfellow/usuarios-api/internal/lib/email"
)

// InitHandlers builds the dependencies job handlers need.
// Without a Resend API key the sender stays nil.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Integration.EmailEnabled() {
		j.logger.Warn().Msg("Resend API key not provided, welcome emails disabled")
		return
	}
	j.sender = email.NewClient(cfg, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	if j.sender == nil {
		j.logger.Warn().
			Str("type", "welcome").
			Str("to", p.To).
			Msg("Email disabled, dropping welcome email task")
		return nil
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.sender.SendWelcomeEmail(ctx, p.To, p.Nombre); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}
