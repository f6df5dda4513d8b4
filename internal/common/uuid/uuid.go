// Package uuid abstracts identifier generation for game documents and
// ledger records so tests can pin the IDs a service hands out.
package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/Ogoter374s/BusfahrerV2-sub001/internal/common/uuid UUID

// UUID provides unique identifiers
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates random version 4 UUIDs
type DefaultUUID struct{}

// New creates a DefaultUUID
func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new random identifier
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
