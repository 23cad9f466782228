// package usage tracks how many free prompt submissions a visitor has left.
// a record is read from the signed-in user's profile metadata or, for
// anonymous visitors, from their local key/value storage, and written back
// to the same place after every accepted submission.
package usage

import (
	"context"
	"errors"
)

// represents a subscription level
type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

const (
	// submissions granted to a visitor with no stored record
	DefaultRemainingTokens = 3

	// fixed key for the record in local key/value storage
	LocalStorageKey = "usage"

	// profile metadata keys
	metadataTierKey      = "tier"
	metadataRemainingKey = "remainingTokens"
)

// returns true if the tier is one of the known tiers
func (t Tier) IsValid() bool {
	switch t {
	case TierFree, TierPro, TierEnterprise:
		return true
	default:
		return false
	}
}

// parses a tier name, falling back to free for anything unknown
func ParseTier(s string) Tier {
	t := Tier(s)
	if !t.IsValid() {
		return TierFree
	}

	return t
}

// the persisted usage state of one visitor
type Record struct {
	Tier            Tier `json:"tier"`
	RemainingTokens int  `json:"remainingTokens"`
}

// returns the record used when nothing has been stored yet
func DefaultRecord() Record {
	return Record{
		Tier:            TierFree,
		RemainingTokens: DefaultRemainingTokens,
	}
}

// true when the tier enforces a quota
func (r Record) Enforced() bool {
	return r.Tier == TierFree
}

// true when the free quota is used up
func (r Record) Exhausted() bool {
	return r.Enforced() && r.RemainingTokens <= 0
}

// true when the quota-low banner should be shown
func (r Record) QuotaLow() bool {
	return r.Enforced() && r.RemainingTokens <= 1
}

// true when the unlimited-access indicator should be shown
func (r Record) Unlimited() bool {
	return !r.Enforced()
}

// returns the record after one accepted submission.
// the counter is never taken below zero.
func (r Record) Consume() Record {
	next := r
	if next.RemainingTokens > 0 {
		next.RemainingTokens--
	}

	return next
}

// returns a copy with an unknown tier replaced by free and a negative
// counter raised to zero
func (r Record) normalize() Record {
	r.Tier = ParseTier(string(r.Tier))
	if r.RemainingTokens < 0 {
		r.RemainingTokens = 0
	}

	return r
}

// the derived display state sent to clients
type View struct {
	Tier            Tier `json:"tier"`
	RemainingTokens int  `json:"remaining_tokens"`
	Unlimited       bool `json:"unlimited"`
	QuotaLow        bool `json:"quota_low"`
}

// returns the display state for a record
func (r Record) View() View {
	return View{
		Tier:            r.Tier,
		RemainingTokens: r.RemainingTokens,
		Unlimited:       r.Unlimited(),
		QuotaLow:        r.QuotaLow(),
	}
}

// who is submitting: a signed-in user, an anonymous visitor, or both unset
type Identity struct {
	UserID    string
	SessionID string
}

// true when the visitor is authenticated
func (i Identity) SignedIn() bool {
	return i.UserID != ""
}

// returns a stable key for per-identity bookkeeping
func (i Identity) Key() string {
	if i.SignedIn() {
		return "user:" + i.UserID
	}

	return "session:" + i.SessionID
}

// persists a usage record in one backing store
type Store interface {
	// returns the stored record and whether one was found
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, record Record) error
	// short name used in logs and metrics
	Kind() string
}

// the per-user metadata blob owned by the authentication provider
type Profile interface {
	Metadata(ctx context.Context) (map[string]any, error)
	UpdateMetadata(ctx context.Context, metadata map[string]any) error
}

// browser-local style key/value storage for anonymous visitors
type KV interface {
	// returns the value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// hands out anonymous session ids: returns sessionID when it is still usable,
// otherwise a fresh one
type SessionIssuer interface {
	Ensure(ctx context.Context, sessionID string) (string, error)
}

// result of evaluating a submission
type Signal string

const (
	SignalIgnored          Signal = "ignored"
	SignalMustAuthenticate Signal = "must_authenticate"
	SignalQuotaExhausted   Signal = "quota_exhausted"
	SignalAccepted         Signal = "accepted"
)

// what a submission produced
type Outcome struct {
	Signal Signal
	// the submitted prompt, set only when accepted
	Prompt string
	// record after the submission (unchanged unless accepted)
	Record Record
}

// returns the sentinel error for refused submissions, nil otherwise
func (o Outcome) Err() error {
	switch o.Signal {
	case SignalIgnored:
		return ErrEmptyPrompt
	case SignalMustAuthenticate:
		return ErrNotAuthenticated
	case SignalQuotaExhausted:
		return ErrQuotaExhausted
	default:
		return nil
	}
}

var (
	ErrEmptyPrompt      = errors.New("prompt is empty")
	ErrNotAuthenticated = errors.New("sign in required to submit prompts")
	ErrQuotaExhausted   = errors.New("free prompt limit reached")
	ErrMalformedRecord  = errors.New("malformed usage record")
	ErrSaveFailed       = errors.New("failed to save usage")
)
