package usage

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// returns the profile of a signed-in user
type ProfileSource func(userID string) Profile

// returns the local key/value storage of an anonymous session
type LocalSource func(ctx context.Context, sessionID string) (KV, error)

// picks the backing store for an identity and serializes submissions
// per identity within this process
type Resolver struct {
	profiles ProfileSource
	locals   LocalSource
	locks    *keyedMutex
}

// creates a resolver over the two store sources
func NewResolver(profiles ProfileSource, locals LocalSource) *Resolver {
	return &Resolver{
		profiles: profiles,
		locals:   locals,
		locks:    newKeyedMutex(),
	}
}

// returns the store an identity's record lives in. signed-in users always use
// their profile; anonymous visitors without a session get throwaway storage.
func (r *Resolver) StoreFor(ctx context.Context, id Identity) (Store, error) {
	if id.SignedIn() {
		return NewProfileStore(r.profiles(id.UserID)), nil
	}

	if id.SessionID == "" {
		return NewLocalStore(NewMemoryKV()), nil
	}

	kv, err := r.locals(ctx, id.SessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage for session: %w", err)
	}

	return NewLocalStore(kv), nil
}

// selects the store and loads the record. a malformed stored record leaves
// the default in place and is reported alongside the usable tracker.
func (r *Resolver) Open(ctx context.Context, id Identity) (*Tracker, error) {
	store, err := r.StoreFor(ctx, id)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker(store, id.SignedIn())
	if err := tracker.Load(ctx); err != nil {
		if errors.Is(err, ErrMalformedRecord) {
			return tracker, err
		}

		return nil, err
	}

	return tracker, nil
}

// loads, evaluates and persists one submission as a single step for the
// identity. concurrent submissions from the same identity run one at a time.
// a malformed stored record is evaluated as the default and its error is
// joined with any save error, so the outcome is usable whenever Signal is set.
func (r *Resolver) Submit(ctx context.Context, id Identity, prompt string) (Outcome, error) {
	unlock := r.locks.Lock(id.Key())
	defer unlock()

	tracker, loadErr := r.Open(ctx, id)
	if tracker == nil {
		return Outcome{}, loadErr
	}

	outcome, err := tracker.Submit(ctx, prompt)
	return outcome, errors.Join(loadErr, err)
}

// a set of mutexes created on demand and dropped when unused
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

// locks key and returns the matching unlock
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// number of keys currently held or waited on
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
