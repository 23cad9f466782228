package usage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFixture struct {
	profiles map[string]*memoryProfile
	locals   map[string]*MemoryKV
	mu       sync.Mutex
}

func newResolverFixture() (*Resolver, *resolverFixture) {
	f := &resolverFixture{
		profiles: make(map[string]*memoryProfile),
		locals:   make(map[string]*MemoryKV),
	}

	resolver := NewResolver(
		func(userID string) Profile {
			f.mu.Lock()
			defer f.mu.Unlock()

			p, ok := f.profiles[userID]
			if !ok {
				p = newMemoryProfile(nil)
				f.profiles[userID] = p
			}
			return &lockedProfile{p: p, mu: &f.mu}
		},
		func(_ context.Context, sessionID string) (KV, error) {
			f.mu.Lock()
			defer f.mu.Unlock()

			kv, ok := f.locals[sessionID]
			if !ok {
				kv = NewMemoryKV()
				f.locals[sessionID] = kv
			}
			return kv, nil
		},
	)

	return resolver, f
}

// guards a memoryProfile shared between goroutines
type lockedProfile struct {
	p  *memoryProfile
	mu *sync.Mutex
}

func (l *lockedProfile) Metadata(ctx context.Context) (map[string]any, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.Metadata(ctx)
}

func (l *lockedProfile) UpdateMetadata(ctx context.Context, m map[string]any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.p.UpdateMetadata(ctx, m)
}

func TestResolver_SelectsStoreByIdentity(t *testing.T) {
	resolver, _ := newResolverFixture()
	ctx := context.Background()

	store, err := resolver.StoreFor(ctx, Identity{UserID: "user-1", SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, "profile", store.Kind())

	store, err = resolver.StoreFor(ctx, Identity{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, "local", store.Kind())

	store, err = resolver.StoreFor(ctx, Identity{})
	require.NoError(t, err)
	assert.Equal(t, "local", store.Kind())
}

func TestResolver_AnonymousLoadsLocalRecord(t *testing.T) {
	resolver, f := newResolverFixture()
	ctx := context.Background()

	kv := NewMemoryKV()
	require.NoError(t, NewLocalStore(kv).Save(ctx, Record{TierPro, 8}))
	f.locals["s-1"] = kv

	tracker, err := resolver.Open(ctx, Identity{SessionID: "s-1"})
	require.NoError(t, err)
	assert.Equal(t, Record{TierPro, 8}, tracker.Record())
	assert.False(t, tracker.SignedIn())
}

func TestResolver_MalformedLocalRecordFallsBack(t *testing.T) {
	resolver, f := newResolverFixture()
	ctx := context.Background()

	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, LocalStorageKey, "[]garbage"))
	f.locals["s-1"] = kv

	tracker, err := resolver.Open(ctx, Identity{SessionID: "s-1"})

	assert.ErrorIs(t, err, ErrMalformedRecord)
	require.NotNil(t, tracker)
	assert.Equal(t, DefaultRecord(), tracker.Record())
}

func TestResolver_SubmitReportsMalformedRecord(t *testing.T) {
	resolver, f := newResolverFixture()
	ctx := context.Background()

	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, LocalStorageKey, "{not json"))
	f.locals["s-1"] = kv

	outcome, err := resolver.Submit(ctx, Identity{SessionID: "s-1"}, "Build a recipe site")

	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.NotErrorIs(t, err, ErrSaveFailed)
	assert.Equal(t, SignalMustAuthenticate, outcome.Signal)
	assert.Equal(t, DefaultRecord(), outcome.Record)
}

func TestResolver_SubmitReportsSaveFailure(t *testing.T) {
	profile := newMemoryProfile(map[string]any{"tier": "free", "remainingTokens": 2})
	profile.updateErr = errors.New("connection refused")

	resolver := NewResolver(
		func(string) Profile { return profile },
		func(context.Context, string) (KV, error) { return NewMemoryKV(), nil },
	)

	outcome, err := resolver.Submit(context.Background(), Identity{UserID: "user-1"}, "Build a recipe site")

	assert.ErrorIs(t, err, ErrSaveFailed)
	assert.NotErrorIs(t, err, ErrMalformedRecord)
	assert.Equal(t, SignalAccepted, outcome.Signal)
	assert.Equal(t, Record{TierFree, 1}, outcome.Record)
}

func TestResolver_LocalSourceFailure(t *testing.T) {
	resolver := NewResolver(
		func(string) Profile { return newMemoryProfile(nil) },
		func(context.Context, string) (KV, error) { return nil, errors.New("session expired") },
	)

	_, err := resolver.Open(context.Background(), Identity{SessionID: "gone"})
	assert.Error(t, err)
}

func TestResolver_SubmitExample(t *testing.T) {
	resolver, _ := newResolverFixture()
	ctx := context.Background()
	id := Identity{UserID: "user-1"}

	tracker, err := resolver.Open(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, Record{TierFree, 3}, tracker.Record())

	for i := 0; i < 3; i++ {
		outcome, err := resolver.Submit(ctx, id, "Design a futuristic portfolio for my digital art")
		require.NoError(t, err)
		assert.Equal(t, SignalAccepted, outcome.Signal)
	}

	outcome, err := resolver.Submit(ctx, id, "Design a futuristic portfolio for my digital art")
	require.NoError(t, err)
	assert.Equal(t, SignalQuotaExhausted, outcome.Signal)
	assert.Equal(t, Record{TierFree, 0}, outcome.Record)
}

func TestResolver_ConcurrentSubmitsNeverOverspend(t *testing.T) {
	resolver, _ := newResolverFixture()
	ctx := context.Background()
	id := Identity{UserID: "user-1"}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			outcome, err := resolver.Submit(ctx, id, "store")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if outcome.Signal == SignalAccepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, DefaultRemainingTokens, accepted)
	assert.Zero(t, resolver.locks.size(), "locks should be released")
}
