// Package optimistic centralizes the optimistic-mutation discipline used by
// relationship-bearing list views: apply the local change immediately, issue
// the remote mutation, and restore the exact pre-mutation snapshot if the
// remote call fails. Tracking in-flight mutations per key keeps rapid
// repeated toggles from issuing duplicate remote calls.
package optimistic

import (
	"context"
	"errors"
	"sync"
)

// ErrInFlight is returned when a mutation for the same key has not settled
// yet. Callers treat it as a no-op.
var ErrInFlight = errors.New("mutation already in flight for this key")

// Reconciler tracks which keys have an unsettled mutation. One Reconciler
// belongs to one mounted view; views never share reconcilers.
type Reconciler struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewReconciler creates an empty Reconciler
func NewReconciler() *Reconciler {
	return &Reconciler{inFlight: make(map[string]struct{})}
}

// InFlight reports whether key currently has an unsettled mutation.
func (r *Reconciler) InFlight(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.inFlight[key]
	return ok
}

func (r *Reconciler) begin(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.inFlight[key]; ok {
		return false
	}
	r.inFlight[key] = struct{}{}
	return true
}

func (r *Reconciler) end(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, key)
}

// Toggle runs one optimistic mutation for key:
//
//  1. rejects with ErrInFlight if a mutation for key is unsettled;
//  2. takes a snapshot of the local state;
//  3. applies the local change before the remote call resolves;
//  4. issues the remote call;
//  5. on failure restores the snapshot, so local state is bit-for-bit
//     identical to its pre-attempt value even if apply raced other changes;
//  6. always clears the in-flight marker, so a failure never leaves the key
//     permanently blocked.
func Toggle[S any](ctx context.Context, r *Reconciler, key string,
	snapshot func() S, apply func(), call func(context.Context) error, restore func(S)) error {

	if !r.begin(key) {
		return ErrInFlight
	}
	defer r.end(key)

	snap := snapshot()
	apply()

	if err := call(ctx); err != nil {
		restore(snap)
		return err
	}
	return nil
}
