package results

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/mwolters/athletesim/internal/errors"
)

// inMemoryRepository implements Repository with process-local storage.
// Used by tests and by runs that don't need persistence.
type inMemoryRepository struct {
	mu      sync.RWMutex
	records map[string][]byte
	batches map[string][]string
}

// NewInMemoryRepository creates an empty in-memory results repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		records: make(map[string][]byte),
		batches: make(map[string][]string),
	}
}

func (r *inMemoryRepository) Save(ctx context.Context, rec *Record) error {
	if rec == nil {
		return errors.InvalidArgument("record cannot be nil")
	}
	if rec.ID == "" {
		return errors.InvalidArgument("record ID cannot be empty")
	}

	// Store serialized so callers can't mutate saved records
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "failed to serialize record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.records[rec.ID]
	r.records[rec.ID] = data
	if rec.BatchID != "" && !existed {
		r.batches[rec.BatchID] = append(r.batches[rec.BatchID], rec.ID)
	}
	return nil
}

func (r *inMemoryRepository) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, errors.InvalidArgument("record ID cannot be empty")
	}

	r.mu.RLock()
	data, ok := r.records[id]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.NotFoundf("result %s not found", id)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize record")
	}
	return &rec, nil
}

func (r *inMemoryRepository) ListByBatch(ctx context.Context, batchID string) ([]*Record, error) {
	if batchID == "" {
		return nil, errors.InvalidArgument("batch ID cannot be empty")
	}

	r.mu.RLock()
	ids := append([]string(nil), r.batches[batchID]...)
	r.mu.RUnlock()

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
