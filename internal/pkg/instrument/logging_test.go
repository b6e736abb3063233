package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNewLogger_MasksAndDecorates(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, LoggerOptions{
		ServiceName: "mailer",
		MaskFields:  []string{" App_Password ", "authorization", ""},
	})

	ctx := SetCorrelationID(context.Background(), "cid-1")
	logger.InfoContext(ctx, "request received",
		"app_password", "hunter2",
		"body", `{"receiver_email":"a@b.co","authorization":"Bearer x"}`,
		"headers", map[string]string{"Authorization": "Bearer y", "Accept": "*/*"},
	)

	line := decodeLine(t, buf)
	assert.Equal(t, "request received", line["msg"])
	assert.Equal(t, "INFO", line["severity"])
	assert.Equal(t, "cid-1", line["_cID"])
	assert.Equal(t, "mailer", line["service"])
	assert.Contains(t, line, "ts")
	assert.Equal(t, "***", line["app_password"])
	assert.JSONEq(t, `{"receiver_email":"a@b.co","authorization":"***"}`, line["body"].(string))
	assert.Equal(t, map[string]any{"Authorization": "***", "Accept": "*/*"}, line["headers"])
}

func TestNewLogger_WithAttrsKeepsDecoration(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf, LoggerOptions{ServiceName: "mailer", MaskFields: []string{"password"}}).With("password", "secret", "component", "relay")

	logger.Info("hello")

	line := decodeLine(t, buf)
	assert.Equal(t, "***", line["password"])
	assert.Equal(t, "relay", line["component"])
	assert.Equal(t, "mailer", line["service"])
	assert.NotContains(t, line, "_cID")
}

func TestMaskValue(t *testing.T) {
	keys := BuildMaskKeys([]string{"secret"})
	in := map[string]any{
		"Secret": "x",
		"list":   []any{map[string]any{"secret": "y", "ok": 1.0}},
	}

	assert.Equal(t, map[string]any{
		"Secret": "***",
		"list":   []any{map[string]any{"secret": "***", "ok": 1.0}},
	}, MaskValue(in, keys))
}

func TestNew_Disabled(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	ins, err := New(context.Background(), nil)
	require.NoError(t, err)

	_, span := ins.Tracer("test").Start(context.Background(), "op")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, ins.Shutdown(context.Background()))
}

func TestNew_LevelAndOutput(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	_, err := New(context.Background(), &Config{ServiceName: "mailer", LogLevel: "warn", Output: buf})
	require.NoError(t, err)

	slog.Info("dropped")
	assert.Zero(t, buf.Len())

	slog.Warn("kept", "password", "x")
	line := decodeLine(t, buf)
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "WARN", line["severity"])
	assert.Equal(t, "x", line["password"])
}

func TestConfig_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, (&Config{}).level())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "loud"}).level())
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).level())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "ERROR"}).level())
}

func TestCorrelationID(t *testing.T) {
	assert.Empty(t, GetCorrelationID(context.Background()))
	assert.Equal(t, "abc", GetCorrelationID(SetCorrelationID(context.Background(), "abc")))
}
