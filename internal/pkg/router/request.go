package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gomailer/internal/pkg/goerror"
)

// maxBodyBytes caps how much of a request body DecodeObject will read.
const maxBodyBytes = 1 << 20 // 1MB

const (
	labelBodyTooLarge   = "Request body too large"
	messageBodyTooLarge = "Request body must not exceed 1MB"
)

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// IsJSON reports whether the Content-Type header declares a JSON payload,
// either application/json or a structured syntax suffix such as
// application/problem+json.
func (r *Request) IsJSON() bool {
	if r == nil || r.Request == nil {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// DecodeObject decodes the body as a single non-empty JSON object. Malformed
// JSON, trailing data, arrays, scalars, null and {} are all rejected with an
// invalid format error labelled label. A body over 1MB is rejected with a
// payload too large error instead.
func (r *Request) DecodeObject(label string) (map[string]any, error) {
	if r == nil || r.Request == nil || r.Body == nil {
		return nil, goerror.NewInvalidFormat(label)
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, decodeError(err, label)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, decodeError(err, label)
	}

	if len(obj) == 0 {
		return nil, goerror.NewInvalidFormat(label)
	}

	return obj, nil
}

func decodeError(err error, label string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return goerror.NewBusiness(labelBodyTooLarge, messageBodyTooLarge, goerror.CodePayloadTooLarge)
	}

	return goerror.NewInvalidFormat(label)
}
