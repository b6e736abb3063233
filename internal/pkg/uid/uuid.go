package uid

import "github.com/google/uuid"

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}

// UUID generates RFC 4122 UUID strings.
type UUID struct {
	random bool
}

// NewUUID returns a time-ordered (v7) UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// NewRandomUUID returns a generator of purely random (v4) UUIDs. The output
// carries no information about time, host or payload.
func NewRandomUUID() *UUID {
	return &UUID{random: true}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	if u.random {
		return uuid.NewString()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString() // fallback: uuidV4
	}
	return id.String()
}
