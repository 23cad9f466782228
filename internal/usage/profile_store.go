package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"
)

// implements Store on top of a signed-in user's profile metadata
type ProfileStore struct {
	profile Profile
}

// creates a store reading and writing the usage keys of a profile
func NewProfileStore(profile Profile) *ProfileStore {
	return &ProfileStore{profile: profile}
}

func (s *ProfileStore) Kind() string {
	return "profile"
}

// reads the usage keys from the profile metadata.
// missing or mistyped fields fall back to the default record's values.
func (s *ProfileStore) Load(ctx context.Context) (Record, bool, error) {
	metadata, err := s.profile.Metadata(ctx)
	if err != nil {
		return Record{}, false, fmt.Errorf("failed to read profile metadata: %w", err)
	}

	record, found := recordFromMetadata(metadata)
	return record, found, nil
}

// writes the usage keys into the profile metadata, keeping unrelated keys
func (s *ProfileStore) Save(ctx context.Context, record Record) error {
	metadata, err := s.profile.Metadata(ctx)
	if err != nil {
		return fmt.Errorf("failed to read profile metadata: %w", err)
	}

	updated := make(map[string]any, len(metadata)+2)
	maps.Copy(updated, metadata)
	updated[metadataTierKey] = string(record.Tier)
	updated[metadataRemainingKey] = record.RemainingTokens

	if err := s.profile.UpdateMetadata(ctx, updated); err != nil {
		return fmt.Errorf("failed to update profile metadata: %w", err)
	}

	return nil
}

// builds a record from metadata. found is false when neither key is present.
func recordFromMetadata(metadata map[string]any) (Record, bool) {
	record := DefaultRecord()
	found := false

	if raw, ok := metadata[metadataTierKey]; ok {
		found = true
		if s, ok := raw.(string); ok {
			record.Tier = ParseTier(s)
		}
	}

	if raw, ok := metadata[metadataRemainingKey]; ok {
		found = true
		if n, ok := intFromJSON(raw); ok {
			record.RemainingTokens = n
		}
	}

	return record.normalize(), found
}

// converts the numeric shapes produced by JSON decoders into an int
func intFromJSON(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int64ToInt(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		// -MinInt is the first float past MaxInt; MaxInt itself is not representable
		if n < float64(math.MinInt) || n >= -float64(math.MinInt) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int64ToInt(i)
	default:
		return 0, false
	}
}

func int64ToInt(n int64) (int, bool) {
	if n < math.MinInt || n > math.MaxInt {
		return 0, false
	}
	return int(n), true
}
