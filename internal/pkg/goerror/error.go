package goerror

import (
	"fmt"
	"maps"
	"net/http"
)

// Type classifies errors into high-level buckets used by the application.
type Type int

const (
	// TypeServer represents server-side failures.
	TypeServer Type = iota
	// TypeBusiness represents business rule violations.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// String returns the string representation of the error type.
func (t Type) String() string {
	switch t {
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeServer:
		return "ERROR_TYPE_SERVER"
	default:
		return "ERROR_TYPE_UNKNOWN"
	}
}

// Code is a stable identifier used for mapping errors to HTTP status codes.
type Code int

const (
	// CodeInternal represents an internal or unspecified error.
	CodeInternal Code = iota
	// CodeInvalidFormat indicates invalid request format.
	CodeInvalidFormat
	// CodeInvalidInput indicates invalid request input.
	CodeInvalidInput
	// CodeUnauthorized indicates authentication failure.
	CodeUnauthorized
	// CodeBadGateway indicates an upstream provider failure.
	CodeBadGateway
	// CodeUnavailable indicates the service refuses work temporarily.
	CodeUnavailable
	// CodePayloadTooLarge indicates a request body over the accepted size.
	CodePayloadTooLarge
)

// String returns the string representation of the error code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeBadGateway:
		return "ERROR_CODE_BAD_GATEWAY"
	case CodeUnavailable:
		return "ERROR_CODE_UNAVAILABLE"
	case CodePayloadTooLarge:
		return "ERROR_CODE_PAYLOAD_TOO_LARGE"
	case CodeInternal:
		return "ERROR_CODE_INTERNAL"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

const (
	labelInternal      = "Internal server error"
	messageInternal    = "An unexpected error occurred while processing your request"
	labelConfiguration = "Server configuration error"
)

// Error is a structured error used across the application.
//
// It can wrap an underlying error while also carrying the public label
// rendered as the "error" field, an optional human readable message, extra
// response fields, a high-level type and a stable error code.
type Error struct {
	err     error
	label   string
	msg     string
	errType Type
	code    Code
	fields  map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}

	if e.msg != "" {
		return e.label + ": " + e.msg
	}

	if e.label != "" {
		return e.label
	}

	return "Unknown error"
}

// String returns a verbose representation of the error for debugging/logging.
func (e *Error) String() string {
	return fmt.Sprintf(
		"Error Type: %s, Code: %s, Label: %s, Message: %s, Underlying Error: %v",
		e.errType.String(),
		e.code.String(),
		e.label,
		e.msg,
		e.err,
	)
}

// Label returns the public error label.
func (e *Error) Label() string {
	return e.label
}

// Msg returns the user-facing error message, if set.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns extra response fields, if any.
func (e *Error) Fields() map[string]any {
	return e.fields
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status code.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeBadGateway:
		return http.StatusBadGateway
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Body renders the JSON envelope for the error.
func (e *Error) Body() map[string]any {
	body := make(map[string]any, len(e.fields)+2)
	maps.Copy(body, e.fields)
	body["error"] = e.label
	if e.msg != "" {
		body["message"] = e.msg
	}

	return body
}

func new(err error, label, msg string, et Type, code Code) *Error {
	return &Error{err: err, label: label, msg: msg, errType: et, code: code}
}

// NewServer creates a server-type error wrapping err. Details of err are
// never exposed to the caller.
func NewServer(err error) error {
	return new(err, labelInternal, messageInternal, TypeServer, CodeInternal)
}

// NewConfiguration reports missing or invalid server side configuration.
func NewConfiguration(msg string) error {
	return new(nil, labelConfiguration, msg, TypeServer, CodeInternal)
}

// NewBusiness creates a business-type error with a label, message and code.
func NewBusiness(label, msg string, code Code) error {
	return new(nil, label, msg, TypeBusiness, code)
}

// NewInvalidFormat creates a validation error for a malformed request.
func NewInvalidFormat(label string) error {
	return new(nil, label, "", TypeValidation, CodeInvalidFormat)
}

// NewInvalidInput creates a validation error. kv holds extra response fields
// as key/value pairs; a trailing key without value is ignored.
func NewInvalidInput(label, msg string, kv ...any) error {
	e := new(nil, label, msg, TypeValidation, CodeInvalidInput)

	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		if e.fields == nil {
			e.fields = make(map[string]any)
		}
		e.fields[key] = kv[i+1]
	}

	return e
}
