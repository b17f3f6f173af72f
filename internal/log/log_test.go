package log_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emilford/bindery/internal/log"
	"github.com/emilford/bindery/internal/pubsub"
)

func TestLogWritesAndPublishesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	cleanup, err := log.Init(path)
	require.NoError(t, err)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := log.NewListener(ctx)
	require.NotNil(t, listener)

	log.Debug(log.CatInput, "command", "name", "insert_text")

	msg := listener.Listen()()
	event, ok := msg.(log.LogEvent)
	require.True(t, ok, "msg should be a log event")
	require.Equal(t, pubsub.LogEntryEvent, event.Type)
	require.Contains(t, event.Payload, "[DEBUG] [input] command name=insert_text")

	log.ErrorErr(log.CatConfig, "reload failed", errors.New("boom"), "path", path)

	msg = listener.Listen()()
	event, ok = msg.(log.LogEvent)
	require.True(t, ok)
	require.Equal(t, pubsub.LogEntryEvent, event.Type)
	require.Contains(t, event.Payload, "[ERROR] [config] reload failed")
	require.Contains(t, event.Payload, "error=boom")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "name=insert_text")
	require.Contains(t, string(data), "error=boom")
}
