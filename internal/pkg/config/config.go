package config

import (
	"io"
	"time"
)

// Config defines the methods used to read configuration values.
//
// Implementations handle retrieval and type conversion and fall back to the
// zero value (or a registered default) when a key is absent.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray retrieves the value associated with key as a slice of strings.
	// Values are stored with format <element1>,<element2>,...; blank
	// elements are dropped.
	GetArray(key string) []string
}
