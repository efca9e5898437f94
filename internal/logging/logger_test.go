package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON_RespeitaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, "warn")
	ctx := context.Background()

	log.Info(ctx, "ignorado")
	log.Warn(ctx, "aviso", "k", "v")

	linhas := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, linhas, 1)

	var entrada map[string]any
	require.NoError(t, json.Unmarshal([]byte(linhas[0]), &entrada))
	assert.Equal(t, "WARN", entrada["level"])
	assert.Equal(t, "aviso", entrada["msg"])
	assert.Equal(t, "v", entrada["k"])
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	l := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.With("req_id", "123").Debug(context.Background(), "ola", "a", 1)

	out := buf.String()
	for _, s := range []string{"level=DEBUG", "msg=ola", "req_id=123", "a=1"} {
		assert.Contains(t, out, s)
	}
}

func TestParseNivel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseNivel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseNivel("error"))
	assert.Equal(t, slog.LevelInfo, parseNivel(""))
}
