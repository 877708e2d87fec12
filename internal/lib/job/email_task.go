package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload of the welcome email task.
type WelcomeEmailPayload struct {
	To     string `json:"to"`
	Nombre string `json:"nombre"`
}

// NewWelcomeEmailTask builds the welcome email task: up to 3 retries on
// the default queue, killed after 30s.
func NewWelcomeEmailTask(to, nombre string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:     to,
		Nombre: nombre,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
