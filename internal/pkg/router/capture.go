package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/shandysiswandi/gomailer/internal/pkg/instrument"
)

// maxCapturedBody bounds how much of a request or response body is logged.
const maxCapturedBody = 32 << 10

// cappedBuffer keeps the first maxCapturedBody bytes written to it.
type cappedBuffer struct {
	bytes.Buffer
	truncated bool
}

// Write accepts all of p and reports len(p); bytes past the cap are dropped.
func (b *cappedBuffer) Write(p []byte) (int, error) {
	n := len(p)
	room := maxCapturedBody - b.Len()
	if n > room {
		b.truncated = true
		p = p[:max(room, 0)]
	}
	b.Buffer.Write(p)
	return n, nil
}

// recorder captures what a handler writes so it can be logged afterwards.
type recorder struct {
	http.ResponseWriter
	status  int
	written int
	body    cappedBuffer
	err     error
}

func (w *recorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *recorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	//nolint:errcheck // cappedBuffer never fails
	w.body.Write(p)

	n, err := w.ResponseWriter.Write(p)
	w.written += n
	return n, err
}

// SetError lets the router hand the handler error to the observability layer.
func (w *recorder) SetError(err error) {
	w.err = err
}

func (w *recorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// peekBody reads up to maxCapturedBody bytes of r.Body and puts them back in
// front of the remaining stream.
func peekBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}

	//nolint:errcheck // logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, maxCapturedBody))
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	return head
}

// loggable renders a captured body for the log: masked JSON when it parses,
// text when it is valid UTF-8, a placeholder otherwise.
func loggable(body []byte, truncated bool, maskKeys map[string]struct{}) any {
	if len(body) == 0 {
		return nil
	}

	var out any
	var v any
	switch {
	case json.Unmarshal(body, &v) == nil:
		out = instrument.MaskValue(v, maskKeys)
	case utf8.Valid(body):
		out = string(body)
	default:
		out = "<binary body omitted>"
	}

	if truncated {
		return map[string]any{"body": out, "truncated": true}
	}
	return out
}

func maskHeaders(h http.Header, maskKeys map[string]struct{}) http.Header {
	if len(maskKeys) == 0 {
		return h
	}

	out := h.Clone()
	for key := range out {
		if _, found := maskKeys[strings.ToLower(key)]; found {
			out[key] = []string{"***"}
		}
	}
	return out
}
