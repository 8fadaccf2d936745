// Package results persists race outcomes for later analysis
package results

import (
	"context"
	"time"

	"github.com/mwolters/athletesim/internal/race"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=mockresults -source=repository.go

// Record is one stored race outcome and its batch membership
type Record struct {
	ID        string       `json:"id"` // race ID
	BatchID   string       `json:"batch_id"`
	Seed      int64        `json:"seed"`
	Result    *race.Result `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
}

// Repository stores race records
type Repository interface {
	// Save persists a record, overwriting any previous record with the same ID
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by race ID
	Get(ctx context.Context, id string) (*Record, error)

	// ListByBatch returns every record saved under a batch ID, in save order
	ListByBatch(ctx context.Context, batchID string) ([]*Record, error)
}
