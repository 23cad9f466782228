package usage

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("website-builder/usage")

// decides what a submission does without touching any store.
// the returned record is the one to persist when the signal is accepted.
func Evaluate(prompt string, signedIn bool, current Record) Outcome {
	if strings.TrimSpace(prompt) == "" {
		return Outcome{Signal: SignalIgnored, Record: current}
	}

	if !signedIn {
		return Outcome{Signal: SignalMustAuthenticate, Record: current}
	}

	if current.Exhausted() {
		return Outcome{Signal: SignalQuotaExhausted, Record: current}
	}

	return Outcome{
		Signal: SignalAccepted,
		Prompt: prompt,
		Record: current.Consume(),
	}
}

// holds one visitor's usage record and the store it was read from
type Tracker struct {
	store    Store
	signedIn bool
	record   Record
	loaded   bool
}

// creates a tracker over a store. the record starts at the default until Load.
func NewTracker(store Store, signedIn bool) *Tracker {
	return &Tracker{
		store:    store,
		signedIn: signedIn,
		record:   DefaultRecord(),
	}
}

// reads the record from the store. on error the default record stays in
// place and the error is returned so the caller can decide what to do.
func (t *Tracker) Load(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "usage.Load",
		trace.WithAttributes(attribute.String("usage.store", t.store.Kind())))
	defer span.End()

	record, found, err := t.store.Load(ctx)
	if err != nil {
		storeErrors.WithLabelValues(t.store.Kind(), "load").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return fmt.Errorf("failed to load usage from %s store: %w", t.store.Kind(), err)
	}

	if found {
		t.record = record.normalize()
	}

	t.loaded = true
	span.SetAttributes(
		attribute.Bool("usage.found", found),
		attribute.String("usage.tier", string(t.record.Tier)),
		attribute.Int("usage.remaining", t.record.RemainingTokens),
	)

	return nil
}

// returns the current record
func (t *Tracker) Record() Record {
	return t.record
}

// true once Load has succeeded
func (t *Tracker) Loaded() bool {
	return t.loaded
}

// true when the tracker belongs to a signed-in user
func (t *Tracker) SignedIn() bool {
	return t.signedIn
}

// returns the name of the backing store
func (t *Tracker) StoreKind() string {
	return t.store.Kind()
}

// evaluates a submission and, when accepted, persists the decremented record
// to the backing store. a failed write still yields the accepted outcome
// together with the error.
func (t *Tracker) Submit(ctx context.Context, prompt string) (Outcome, error) {
	ctx, span := tracer.Start(ctx, "usage.Submit",
		trace.WithAttributes(
			attribute.String("usage.store", t.store.Kind()),
			attribute.Bool("usage.signed_in", t.signedIn),
		))
	defer span.End()

	outcome := Evaluate(prompt, t.signedIn, t.record)
	submissions.WithLabelValues(string(outcome.Signal), string(t.record.Tier)).Inc()
	span.SetAttributes(attribute.String("usage.signal", string(outcome.Signal)))

	if outcome.Signal != SignalAccepted {
		return outcome, nil
	}

	t.record = outcome.Record

	if err := t.store.Save(ctx, outcome.Record); err != nil {
		storeErrors.WithLabelValues(t.store.Kind(), "save").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		return outcome, fmt.Errorf("%w to %s store: %w", ErrSaveFailed, t.store.Kind(), err)
	}

	return outcome, nil
}
