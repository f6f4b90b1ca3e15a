package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func toggleFollow(ctx context.Context, r *Reconciler, set *MembershipSet, id string, call func(context.Context) error) error {
	return Toggle(ctx, r, id,
		set.Snapshot,
		func() { set.Flip(id) },
		call,
		set.Restore,
	)
}

func TestToggle_AppliesBeforeRemoteCall(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet()

	var seenDuringCall bool
	err := toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
		seenDuringCall = set.Has("u1")
		return nil
	})
	require.NoError(t, err)
	require.True(t, seenDuringCall, "local state must flip before the remote call resolves")
	require.True(t, set.Has("u1"))
}

func TestToggle_RollbackExactness(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet("u1", "u2")
	before := set.Snapshot()

	err := toggleFollow(context.Background(), r, set, "u3", func(context.Context) error {
		return errors.New("remote rejected")
	})
	require.Error(t, err)
	require.Equal(t, before, set.Snapshot(), "failed mutation must leave state identical to its pre-attempt value")
}

func TestToggle_RollbackRestoresSnapshotNotInverse(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet("u1")
	before := set.Snapshot()

	// The remote handler mutates unrelated state mid-flight; restore must
	// put back the snapshot, not blindly re-flip the toggled id.
	err := toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
		set.Add("u9")
		return errors.New("remote rejected")
	})
	require.Error(t, err)
	require.Equal(t, before, set.Snapshot())
}

func TestToggle_InFlightMutualExclusion(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet()

	release := make(chan struct{})
	started := make(chan struct{})
	var calls int

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
			calls++
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	// Second toggle for the same key while the first is unsettled.
	err := toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
		calls++
		return nil
	})
	require.ErrorIs(t, err, ErrInFlight)

	close(release)
	wg.Wait()
	require.Equal(t, 1, calls, "exactly one remote mutation may be issued per key")
}

func TestToggle_DistinctKeysDoNotBlock(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet()

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := Toggle(context.Background(), r, "u2",
		func() struct{} { return struct{}{} },
		func() {},
		func(context.Context) error { return nil },
		func(struct{}) {},
	)
	require.NoError(t, err)

	close(release)
	wg.Wait()
}

func TestToggle_ClearsInFlightAfterFailure(t *testing.T) {
	r := NewReconciler()
	set := NewMembershipSet()

	err := toggleFollow(context.Background(), r, set, "u1", func(context.Context) error {
		return errors.New("remote rejected")
	})
	require.Error(t, err)
	require.False(t, r.InFlight("u1"))

	// The key is usable again after settlement.
	err = toggleFollow(context.Background(), r, set, "u1", func(context.Context) error { return nil })
	require.NoError(t, err)
	require.True(t, set.Has("u1"))
}

func TestMembershipSet_Flip(t *testing.T) {
	set := NewMembershipSet("a")

	require.False(t, set.Flip("a"))
	require.False(t, set.Has("a"))
	require.True(t, set.Flip("a"))
	require.True(t, set.Has("a"))
	require.Equal(t, 1, set.Len())
}

func TestMembershipSet_SnapshotIsIndependent(t *testing.T) {
	set := NewMembershipSet("a")
	snap := set.Snapshot()

	set.Add("b")
	require.Len(t, snap, 1)

	set.Restore(snap)
	require.True(t, set.Has("a"))
	require.False(t, set.Has("b"))
}
