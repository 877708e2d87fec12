package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/usuarios-api/internal/config"
)

type fakeSender struct {
	to, nombre string
	calls      int
	err        error
}

func (f *fakeSender) SendWelcomeEmail(_ context.Context, to, nombre string) error {
	f.calls++
	f.to, f.nombre = to, nombre
	return f.err
}

func newTestJobService(sender WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, sender: sender}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("ana@example.com", "Ana")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ana@example.com", Nombre: "Ana"}, p)
}

func TestHandleWelcomeEmailTask_Sends(t *testing.T) {
	sender := &fakeSender{}
	j := newTestJobService(sender)

	task, err := NewWelcomeEmailTask("ana@example.com", "Ana")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, "ana@example.com", sender.to)
	assert.Equal(t, "Ana", sender.nombre)
}

func TestHandleWelcomeEmailTask_SendFailureIsRetried(t *testing.T) {
	boom := errors.New("resend down")
	j := newTestJobService(&fakeSender{err: boom})

	task, err := NewWelcomeEmailTask("ana@example.com", "Ana")
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestJobService(&fakeSender{})

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleWelcomeEmailTask_NoSender(t *testing.T) {
	j := newTestJobService(nil)

	task, err := NewWelcomeEmailTask("ana@example.com", "Ana")
	require.NoError(t, err)

	assert.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
}

func TestInitHandlers_EmailDisabled(t *testing.T) {
	j := newTestJobService(nil)
	logger := zerolog.Nop()

	j.InitHandlers(&config.Config{}, &logger)
	assert.Nil(t, j.sender)

	j.InitHandlers(&config.Config{Integration: config.IntegrationConfig{ResendAPIKey: "re_test"}}, &logger)
	assert.NotNil(t, j.sender)
}

func TestStart_FailureClosesClient(t *testing.T) {
	logger := zerolog.Nop()
	cfg := &config.Config{Redis: config.RedisConfig{Address: "127.0.0.1:1"}}
	j := NewJobService(&logger, cfg)

	require.NoError(t, j.Start())
	defer j.server.Shutdown()

	// A second start is rejected by asynq.
	require.Error(t, j.Start())

	// The client was already closed by the failed start.
	assert.Error(t, j.Client.Close())
}
