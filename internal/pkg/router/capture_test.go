package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeekBody_RestoresStream(t *testing.T) {
	payload := `{"receiver_email":"a@b.co"}`
	r := httptest.NewRequest(http.MethodPost, "/send-email", strings.NewReader(payload))

	assert.Equal(t, payload, string(peekBody(r)))

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(rest))
}

func TestPeekBody_Large(t *testing.T) {
	payload := strings.Repeat("x", maxCapturedBody+10)
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))

	assert.Len(t, peekBody(r), maxCapturedBody)

	rest, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Len(t, rest, len(payload))
}

func TestCappedBuffer_Write(t *testing.T) {
	var buf cappedBuffer

	n, err := buf.Write([]byte(strings.Repeat("a", maxCapturedBody-2)))
	require.NoError(t, err)
	assert.Equal(t, maxCapturedBody-2, n)
	assert.False(t, buf.truncated)

	n, err = buf.Write([]byte("bcdef"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.True(t, buf.truncated)
	assert.Equal(t, maxCapturedBody, buf.Len())
	assert.True(t, strings.HasSuffix(buf.String(), "bc"))

	n, err = buf.Write([]byte("more"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, maxCapturedBody, buf.Len())
}

func TestCappedBuffer_MultiWriter(t *testing.T) {
	var (
		capped cappedBuffer
		full   strings.Builder
	)
	payload := strings.Repeat("z", maxCapturedBody*2)

	written, err := io.Copy(io.MultiWriter(&capped, &full), strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), written)
	assert.Equal(t, payload, full.String())
	assert.Equal(t, maxCapturedBody, capped.Len())
}

func TestLoggable(t *testing.T) {
	keys := map[string]struct{}{"app_password": {}}

	assert.Nil(t, loggable(nil, false, keys))
	assert.Equal(t, map[string]any{"app_password": "***", "to": "a"},
		loggable([]byte(`{"app_password":"x","to":"a"}`), false, keys))
	assert.Equal(t, "plain", loggable([]byte("plain"), false, keys))
	assert.Equal(t, "<binary body omitted>", loggable([]byte{0xff, 0xfe}, false, keys))
	assert.Equal(t, map[string]any{"body": "cut", "truncated": true}, loggable([]byte("cut"), true, keys))
}

func TestRecorder(t *testing.T) {
	rec := &recorder{ResponseWriter: httptest.NewRecorder()}
	assert.Equal(t, http.StatusOK, rec.statusCode())

	rec.WriteHeader(http.StatusAccepted)
	rec.WriteHeader(http.StatusTeapot)
	_, err := rec.Write([]byte(strings.Repeat("y", maxCapturedBody+1)))
	require.NoError(t, err)

	assert.Equal(t, http.StatusAccepted, rec.statusCode())
	assert.Equal(t, maxCapturedBody+1, rec.written)
	assert.Equal(t, maxCapturedBody, rec.body.Len())
	assert.True(t, rec.body.truncated)
}

func TestMaskHeaders(t *testing.T) {
	h := http.Header{"Authorization": {"Bearer x"}, "Accept": {"*/*"}}

	masked := maskHeaders(h, map[string]struct{}{"authorization": {}})

	assert.Equal(t, []string{"***"}, masked["Authorization"])
	assert.Equal(t, []string{"*/*"}, masked["Accept"])
	assert.Equal(t, []string{"Bearer x"}, h["Authorization"])
	assert.Equal(t, h, maskHeaders(h, nil))
}
