// Package uuid wraps ID generation behind an interface so callers that stamp
// race and batch IDs can be tested with fixed values.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces unique string IDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator is the production Generator, backed by random v4 UUIDs
type GoogleUUIDGenerator struct{}

// New returns a fresh v4 UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates the production Generator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
