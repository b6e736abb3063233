package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/gomailer/internal/pkg/config"
	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)
	t.Cleanup(func() { cfg.Close() })

	ro := NewRouter(Config{Config: cfg, UUID: fixedID("generated-cid")})
	ro.GET("/", func(*Request) (any, error) {
		return map[string]string{"status": "running"}, nil
	})
	ro.POST("/send-email", func(r *Request) (any, error) {
		switch r.URL.Query().Get("mode") {
		case "invalid":
			return nil, goerror.NewInvalidInput("Missing required fields", "", "missing_fields", []string{"subject"})
		case "raw":
			return nil, errors.New("dial tcp: secret internals")
		case "panic":
			panic("boom")
		case "empty":
			return nil, nil
		}
		return map[string]string{"status": "success"}, nil
	})
	ro.GET("/broken", func(*Request) (any, error) { return nil, nil }, func(http.Handler) http.Handler {
		return http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("middleware boom") })
	})

	return ro
}

func serve(ro http.Handler, method, target string, header http.Header) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, strings.NewReader(`{"app_password":"x"}`))
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	ro.ServeHTTP(rec, req)

	var body map[string]any
	//nolint:errcheck // some responses have no body
	json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestRouter_Responses(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name:       "ok",
			method:     http.MethodGet,
			target:     "/",
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"status": "running"},
		},
		{
			name:       "unknown route",
			method:     http.MethodGet,
			target:     "/nope",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "Endpoint not found", "message": "The requested endpoint does not exist"},
		},
		{
			name:       "trailing slash is not redirected",
			method:     http.MethodPost,
			target:     "/send-email/",
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "Endpoint not found", "message": "The requested endpoint does not exist"},
		},
		{
			name:       "wrong method",
			method:     http.MethodGet,
			target:     "/send-email",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   map[string]any{"error": "Method not allowed", "message": "The HTTP method is not allowed for this endpoint"},
		},
		{
			name:       "business error with fields",
			method:     http.MethodPost,
			target:     "/send-email?mode=invalid",
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "Missing required fields", "missing_fields": []any{"subject"}},
		},
		{
			name:       "unexpected error is hidden",
			method:     http.MethodPost,
			target:     "/send-email?mode=raw",
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"error":   "Internal server error",
				"message": "An unexpected error occurred while processing your request",
			},
		},
		{
			name:       "handler panic",
			method:     http.MethodPost,
			target:     "/send-email?mode=panic",
			wantStatus: http.StatusInternalServerError,
			wantBody: map[string]any{
				"error":   "Internal server error",
				"message": "An unexpected error occurred while processing your request",
			},
		},
		{
			name:       "panic outside handler",
			method:     http.MethodGet,
			target:     "/broken",
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "Internal server error", "message": "An unexpected error occurred"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := serve(ro, tt.method, tt.target, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestRouter_NoContent(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	rec, _ := serve(ro, http.MethodPost, "/send-email?mode=empty", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_MethodNotAllowedListsAllow(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	rec, _ := serve(ro, http.MethodDelete, "/send-email", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
}

func TestRouter_HeadFollowsGet(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	rec, _ := serve(ro, http.MethodHead, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec, _ = serve(ro, http.MethodHead, "/send-email", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "OPTIONS, POST", rec.Header().Get("Allow"))

	rec, _ = serve(ro, http.MethodOptions, "/", nil)
	assert.Equal(t, "GET, HEAD, OPTIONS", rec.Header().Get("Allow"))
}

func TestRouter_Maintenance(t *testing.T) {
	ro := newTestRouter(t, `
app:
  maintenance:
    endpoints: [/send-email]
`)

	rec, body := serve(ro, http.MethodPost, "/send-email", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, map[string]any{"error": "Service unavailable", "message": "service is under maintenance"}, body)

	rec, _ = serve(ro, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CorrelationID(t *testing.T) {
	ro := newTestRouter(t, "app: {name: test}")

	tests := []struct {
		name   string
		header http.Header
		want   string
	}{
		{name: "generated", want: "generated-cid"},
		{name: "correlation header", header: http.Header{HeaderCorrelationID: {" abc "}}, want: "abc"},
		{name: "request header", header: http.Header{HeaderRequestID: {"req-1"}}, want: "req-1"},
		{name: "header injection", header: http.Header{HeaderCorrelationID: {"a\r\nb"}}, want: "generated-cid"},
		{name: "too long", header: http.Header{HeaderCorrelationID: {strings.Repeat("x", 200)}}, want: strings.Repeat("x", 128)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(ro, http.MethodGet, "/", tt.header)
			assert.Equal(t, tt.want, rec.Header().Get(HeaderCorrelationID))
		})
	}
}

func TestChain_Order(t *testing.T) {
	var calls []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls = append(calls, "handler") }), mw("a"), mw("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "handler"}, calls)
}

func TestRealIP(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		remote string
		want   string
	}{
		{name: "true client ip", header: http.Header{"True-Client-Ip": {"1.1.1.1"}}, remote: "9.9.9.9:1", want: "1.1.1.1"},
		{name: "forwarded chain", header: http.Header{"X-Forwarded-For": {"2.2.2.2, 10.0.0.1"}}, remote: "9.9.9.9:1", want: "2.2.2.2"},
		{name: "invalid header falls back", header: http.Header{"X-Real-Ip": {"nope"}}, remote: "9.9.9.9:1", want: "9.9.9.9"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header = tt.header
			if r.Header == nil {
				r.Header = http.Header{}
			}
			r.RemoteAddr = tt.remote

			assert.Equal(t, tt.want, realIP(r))
		})
	}
}
