// Package validator provides a small validation abstraction for request
// structs.
//
// Business code depends on the Validator interface; the concrete
// implementation wraps go-playground/validator v10 and reports violations in
// struct field order together with the rule that failed, so callers can tell
// a missing value apart from a malformed one.
package validator
