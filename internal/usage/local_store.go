package usage

import (
	"context"
	"encoding/json"
	"fmt"
)

// implements Store as a JSON blob in local key/value storage
type LocalStore struct {
	kv  KV
	key string
}

// creates a store keeping the record under LocalStorageKey
func NewLocalStore(kv KV) *LocalStore {
	return &LocalStore{kv: kv, key: LocalStorageKey}
}

func (s *LocalStore) Kind() string {
	return "local"
}

// reads and decodes the stored record. fields missing from the stored object
// take their default values; a value that is not a JSON object yields
// ErrMalformedRecord.
func (s *LocalStore) Load(ctx context.Context) (Record, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read local storage: %w", err)
	}

	if !ok {
		return Record{}, false, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Record{}, false, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	record, _ := recordFromMetadata(fields)
	return record, true, nil
}

// encodes and writes the record
func (s *LocalStore) Save(ctx context.Context, record Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal usage record: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return fmt.Errorf("failed to write local storage: %w", err)
	}

	return nil
}
