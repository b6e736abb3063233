package serverless

import (
	"bytes"
	"context"
	"encoding/base64"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

// Proxy adapts an http.Handler to API Gateway proxy integrations.
type Proxy struct {
	handler http.Handler
}

// NewProxy wraps h.
func NewProxy(h http.Handler) *Proxy {
	return &Proxy{handler: h}
}

// Handle serves one proxy event. It only returns an error when the event
// cannot be turned into an HTTP request at all.
func (p *Proxy) Handle(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := NewRequest(ctx, ev)
	if err != nil {
		slog.ErrorContext(ctx, "serverless: invalid proxy event", "path", ev.Path, "error", err)
		return JSONResponse(http.StatusBadRequest, `{"error":"Invalid request"}`), nil
	}

	w := newResponseWriter()
	w.discardBody = req.Method == http.MethodHead
	p.handler.ServeHTTP(w, req)

	return w.proxyResponse(), nil
}

// NewRequest converts a proxy event into an *http.Request bound to ctx.
func NewRequest(ctx context.Context, ev events.APIGatewayProxyRequest) (*http.Request, error) {
	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, err
		}
		body = decoded
	}

	path := ev.Path
	if path == "" {
		path = "/"
	}

	u := &url.URL{Path: path, RawQuery: query(ev).Encode()}

	method := ev.HTTPMethod
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	for key, values := range headers(ev) {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	req.Host = req.Header.Get("Host")
	req.RequestURI = u.RequestURI()
	if ip := ev.RequestContext.Identity.SourceIP; ip != "" {
		req.RemoteAddr = net.JoinHostPort(ip, "0")
	}

	return req, nil
}

// JSONResponse builds a proxy response carrying a JSON body.
func JSONResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}

func query(ev events.APIGatewayProxyRequest) url.Values {
	q := url.Values{}
	if len(ev.MultiValueQueryStringParameters) > 0 {
		for k, vs := range ev.MultiValueQueryStringParameters {
			q[k] = append(q[k], vs...)
		}
		return q
	}

	for k, v := range ev.QueryStringParameters {
		q.Set(k, v)
	}
	return q
}

func headers(ev events.APIGatewayProxyRequest) http.Header {
	h := http.Header{}
	if len(ev.MultiValueHeaders) > 0 {
		for k, vs := range ev.MultiValueHeaders {
			for _, v := range vs {
				h.Add(k, v)
			}
		}
		return h
	}

	for k, v := range ev.Headers {
		h.Set(k, v)
	}
	return h
}

type responseWriter struct {
	header      http.Header
	status      int
	body        bytes.Buffer
	discardBody bool
}

func newResponseWriter() *responseWriter {
	return &responseWriter{header: http.Header{}}
}

func (w *responseWriter) Header() http.Header {
	return w.header
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.discardBody {
		return len(p), nil
	}
	return w.body.Write(p)
}

func (w *responseWriter) proxyResponse() events.APIGatewayProxyResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}

	resp := events.APIGatewayProxyResponse{
		StatusCode:        status,
		Headers:           make(map[string]string, len(w.header)),
		MultiValueHeaders: make(map[string][]string, len(w.header)),
	}

	for k, vs := range w.header {
		if len(vs) == 0 {
			continue
		}
		resp.Headers[k] = vs[0]
		resp.MultiValueHeaders[k] = vs
	}

	body := w.body.Bytes()
	if isTextual(w.header.Get("Content-Type"), body) {
		resp.Body = string(body)
	} else {
		resp.Body = base64.StdEncoding.EncodeToString(body)
		resp.IsBase64Encoded = true
	}

	return resp
}

func isTextual(contentType string, body []byte) bool {
	if len(body) == 0 {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return utf8.Valid(body)
	}

	switch {
	case strings.HasPrefix(mediaType, "text/"),
		strings.HasSuffix(mediaType, "json"),
		strings.HasSuffix(mediaType, "xml"),
		mediaType == "application/javascript":
		return true
	default:
		return false
	}
}
