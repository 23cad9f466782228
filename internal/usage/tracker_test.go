package usage

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profile held in memory, the way the auth provider would hand it over
type memoryProfile struct {
	metadata  map[string]any
	readErr   error
	updateErr error
	updates   int
}

func newMemoryProfile(metadata map[string]any) *memoryProfile {
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &memoryProfile{metadata: metadata}
}

func (p *memoryProfile) Metadata(_ context.Context) (map[string]any, error) {
	if p.readErr != nil {
		return nil, p.readErr
	}

	out := make(map[string]any, len(p.metadata))
	for k, v := range p.metadata {
		out[k] = v
	}

	return out, nil
}

func (p *memoryProfile) UpdateMetadata(_ context.Context, metadata map[string]any) error {
	if p.updateErr != nil {
		return p.updateErr
	}

	p.updates++
	p.metadata = metadata
	return nil
}

func loadedTracker(t *testing.T, store Store, signedIn bool) *Tracker {
	t.Helper()

	tracker := NewTracker(store, signedIn)
	require.NoError(t, tracker.Load(context.Background()))
	return tracker
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		prompt   string
		signedIn bool
		record   Record
		want     Signal
		wantLeft int
	}{
		{"empty prompt", "", true, Record{TierFree, 3}, SignalIgnored, 3},
		{"whitespace prompt", "  \t\n ", true, Record{TierFree, 3}, SignalIgnored, 3},
		{"whitespace prompt with exhausted quota", "   ", true, Record{TierFree, 0}, SignalIgnored, 0},
		{"empty prompt while anonymous", "", false, Record{TierFree, 3}, SignalIgnored, 3},
		{"anonymous", "build a blog", false, Record{TierFree, 3}, SignalMustAuthenticate, 3},
		{"anonymous with exhausted quota", "build a blog", false, Record{TierFree, 0}, SignalMustAuthenticate, 0},
		{"free exhausted", "build a blog", true, Record{TierFree, 0}, SignalQuotaExhausted, 0},
		{"free with tokens", "build a blog", true, Record{TierFree, 2}, SignalAccepted, 1},
		{"pro with zero tokens", "build a blog", true, Record{TierPro, 0}, SignalAccepted, 0},
		{"enterprise with tokens", "build a blog", true, Record{TierEnterprise, 5}, SignalAccepted, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.prompt, tt.signedIn, tt.record)

			assert.Equal(t, tt.want, got.Signal)
			assert.Equal(t, tt.wantLeft, got.Record.RemainingTokens)
			assert.Equal(t, tt.record.Tier, got.Record.Tier)

			if tt.want == SignalAccepted {
				assert.Equal(t, tt.prompt, got.Prompt)
			} else {
				assert.Empty(t, got.Prompt)
			}
		})
	}
}

func TestOutcomeErr(t *testing.T) {
	assert.ErrorIs(t, Outcome{Signal: SignalIgnored}.Err(), ErrEmptyPrompt)
	assert.ErrorIs(t, Outcome{Signal: SignalMustAuthenticate}.Err(), ErrNotAuthenticated)
	assert.ErrorIs(t, Outcome{Signal: SignalQuotaExhausted}.Err(), ErrQuotaExhausted)
	assert.NoError(t, Outcome{Signal: SignalAccepted}.Err())
}

func TestDisplayPolicy(t *testing.T) {
	tests := []struct {
		record    Record
		quotaLow  bool
		unlimited bool
	}{
		{Record{TierFree, 3}, false, false},
		{Record{TierFree, 2}, false, false},
		{Record{TierFree, 1}, true, false},
		{Record{TierFree, 0}, true, false},
		{Record{TierPro, 0}, false, true},
		{Record{TierEnterprise, 1}, false, true},
	}

	for _, tt := range tests {
		view := tt.record.View()
		assert.Equal(t, tt.quotaLow, view.QuotaLow, "quota low for %+v", tt.record)
		assert.Equal(t, tt.unlimited, view.Unlimited, "unlimited for %+v", tt.record)
		assert.Equal(t, tt.record.RemainingTokens, view.RemainingTokens)
	}
}

func TestTracker_DefaultsWhenNothingStored(t *testing.T) {
	tracker := loadedTracker(t, NewProfileStore(newMemoryProfile(nil)), true)

	assert.Equal(t, DefaultRecord(), tracker.Record())
	assert.True(t, tracker.Loaded())
}

func TestTracker_SubmitDecrementsAndPersists(t *testing.T) {
	ctx := context.Background()
	profile := newMemoryProfile(map[string]any{"tier": "free", "remainingTokens": float64(2)})
	tracker := loadedTracker(t, NewProfileStore(profile), true)

	outcome, err := tracker.Submit(ctx, "Create an online store for sustainable fashion")
	require.NoError(t, err)

	assert.Equal(t, SignalAccepted, outcome.Signal)
	assert.Equal(t, "Create an online store for sustainable fashion", outcome.Prompt)
	assert.Equal(t, 1, tracker.Record().RemainingTokens)

	// the next load sees the written record
	reloaded := loadedTracker(t, NewProfileStore(profile), true)
	if diff := cmp.Diff(Record{TierFree, 1}, reloaded.Record()); diff != "" {
		t.Errorf("reloaded record mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_ThreeSubmissionsThenExhausted(t *testing.T) {
	ctx := context.Background()
	profile := newMemoryProfile(nil)
	tracker := loadedTracker(t, NewProfileStore(profile), true)

	for i := 0; i < DefaultRemainingTokens; i++ {
		outcome, err := tracker.Submit(ctx, "Make a vibrant landing page for my app")
		require.NoError(t, err)
		require.Equal(t, SignalAccepted, outcome.Signal, "submission %d", i+1)
	}

	assert.Equal(t, Record{TierFree, 0}, tracker.Record())

	outcome, err := tracker.Submit(ctx, "one more")
	require.NoError(t, err)
	assert.Equal(t, SignalQuotaExhausted, outcome.Signal)
	assert.Equal(t, DefaultRemainingTokens, profile.updates, "refused submission must not write")

	reloaded := loadedTracker(t, NewProfileStore(profile), true)
	assert.Equal(t, Record{TierFree, 0}, reloaded.Record())
}

func TestTracker_RefusalsNeverWrite(t *testing.T) {
	ctx := context.Background()

	t.Run("exhausted", func(t *testing.T) {
		profile := newMemoryProfile(map[string]any{"tier": "free", "remainingTokens": 0})
		tracker := loadedTracker(t, NewProfileStore(profile), true)

		outcome, err := tracker.Submit(ctx, "build it")
		require.NoError(t, err)
		assert.Equal(t, SignalQuotaExhausted, outcome.Signal)
		assert.Zero(t, profile.updates)
	})

	t.Run("anonymous", func(t *testing.T) {
		kv := NewMemoryKV()
		require.NoError(t, NewLocalStore(kv).Save(ctx, Record{TierFree, 2}))
		tracker := loadedTracker(t, NewLocalStore(kv), false)

		outcome, err := tracker.Submit(ctx, "build it")
		require.NoError(t, err)
		assert.Equal(t, SignalMustAuthenticate, outcome.Signal)

		raw, _, _ := kv.Get(ctx, LocalStorageKey)
		assert.JSONEq(t, `{"tier":"free","remainingTokens":2}`, raw)
	})

	t.Run("empty prompt", func(t *testing.T) {
		profile := newMemoryProfile(map[string]any{"tier": "free", "remainingTokens": 3})
		tracker := loadedTracker(t, NewProfileStore(profile), true)

		outcome, err := tracker.Submit(ctx, " ")
		require.NoError(t, err)
		assert.Equal(t, SignalIgnored, outcome.Signal)
		assert.Zero(t, profile.updates)
		assert.Equal(t, 3, tracker.Record().RemainingTokens)
	})
}

func TestTracker_PaidTiersNeverBlocked(t *testing.T) {
	ctx := context.Background()

	for _, tier := range []Tier{TierPro, TierEnterprise} {
		for _, remaining := range []int{0, 1, 50} {
			profile := newMemoryProfile(map[string]any{"tier": string(tier), "remainingTokens": remaining})
			tracker := loadedTracker(t, NewProfileStore(profile), true)

			outcome, err := tracker.Submit(ctx, "portfolio")
			require.NoError(t, err)
			assert.Equal(t, SignalAccepted, outcome.Signal, "tier %s remaining %d", tier, remaining)
			assert.GreaterOrEqual(t, outcome.Record.RemainingTokens, 0)
		}
	}
}

func TestTracker_SaveFailureStillAccepts(t *testing.T) {
	profile := newMemoryProfile(nil)
	profile.updateErr = errors.New("connection refused")
	tracker := loadedTracker(t, NewProfileStore(profile), true)

	outcome, err := tracker.Submit(context.Background(), "tech blog")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile store")
	assert.Equal(t, SignalAccepted, outcome.Signal)
	assert.Equal(t, 2, tracker.Record().RemainingTokens)
}

func TestTracker_LoadFailureKeepsDefault(t *testing.T) {
	profile := newMemoryProfile(nil)
	profile.readErr = errors.New("timeout")
	tracker := NewTracker(NewProfileStore(profile), true)

	err := tracker.Load(context.Background())

	require.Error(t, err)
	assert.False(t, tracker.Loaded())
	assert.Equal(t, DefaultRecord(), tracker.Record())
}
