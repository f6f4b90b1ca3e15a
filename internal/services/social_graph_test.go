package services

import (
	"context"
	"errors"
	"testing"

	"github.com/fundspace/backend/internal/events"
	"github.com/fundspace/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(followRepo *fakeFollowRepo, connRepo *fakeConnectionRepo, notifRepo *fakeNotificationRepo) (*SocialGraphService, *events.Broadcaster) {
	broadcaster := events.NewBroadcaster()
	svc := NewSocialGraphService(followRepo, connRepo, notifRepo, nil, broadcaster, zap.NewNop())
	return svc, broadcaster
}

func TestFollowUser_SelfFollow(t *testing.T) {
	followRepo := newFakeFollowRepo()
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{})

	a := uuid.New()
	err := svc.FollowUser(context.Background(), a, a)
	require.ErrorIs(t, err, ErrSelfFollow)
	require.Empty(t, followRepo.edges)
}

func TestFollowUser_MissingIdentifier(t *testing.T) {
	svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})

	err := svc.FollowUser(context.Background(), uuid.Nil, uuid.New())
	require.ErrorIs(t, err, ErrMissingIdentifier)

	err = svc.FollowUser(context.Background(), uuid.New(), uuid.Nil)
	require.ErrorIs(t, err, ErrMissingIdentifier)
}

func TestFollowUser_DuplicateEdge(t *testing.T) {
	followRepo := newFakeFollowRepo()
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{})

	a, b := uuid.New(), uuid.New()
	require.NoError(t, svc.FollowUser(context.Background(), a, b))

	err := svc.FollowUser(context.Background(), a, b)
	require.ErrorIs(t, err, ErrAlreadyFollowing)
	require.Len(t, followRepo.edges, 1)
}

func TestFollowUser_NotificationFailureIsolated(t *testing.T) {
	followRepo := newFakeFollowRepo()
	notifRepo := &fakeNotificationRepo{failCreate: errors.New("store down")}
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), notifRepo)

	a, b := uuid.New(), uuid.New()
	require.NoError(t, svc.FollowUser(context.Background(), a, b))
	require.Len(t, followRepo.edges, 1)
	require.Empty(t, notifRepo.notifications)
}

func TestFollowUser_NoSelfNotification(t *testing.T) {
	notifRepo := &fakeNotificationRepo{}
	svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), notifRepo)

	a, b := uuid.New(), uuid.New()
	require.NoError(t, svc.FollowUser(context.Background(), a, b))

	for _, n := range notifRepo.notifications {
		require.NotEqual(t, n.UserID, n.ActorID)
	}
}

func TestFollowUser_BroadcastsEvent(t *testing.T) {
	svc, broadcaster := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})

	var received []events.FollowEvent
	unsubscribe := broadcaster.Subscribe(func(ev events.FollowEvent) {
		received = append(received, ev)
	})
	defer unsubscribe()

	a, b := uuid.New(), uuid.New()
	require.NoError(t, svc.FollowUser(context.Background(), a, b))
	require.NoError(t, svc.UnfollowUser(context.Background(), a, b))

	require.Len(t, received, 2)
	require.Equal(t, events.ActionFollow, received[0].Action)
	require.Equal(t, a, received[0].FollowerID)
	require.Equal(t, b, received[0].FollowingID)
	require.Equal(t, events.ActionUnfollow, received[1].Action)
	require.False(t, received[0].Timestamp.IsZero())
}

func TestUnfollowUser_Idempotent(t *testing.T) {
	followRepo := newFakeFollowRepo()
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{})

	// No edge exists; unfollow still succeeds and leaves zero edges.
	require.NoError(t, svc.UnfollowUser(context.Background(), uuid.New(), uuid.New()))
	require.Empty(t, followRepo.edges)
}

func TestFollowUnfollow_Scenario(t *testing.T) {
	followRepo := newFakeFollowRepo()
	notifRepo := &fakeNotificationRepo{}
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), notifRepo)

	u1, u2 := uuid.New(), uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.FollowUser(ctx, u1, u2))

	isFollowing, err := svc.CheckFollowStatus(ctx, u1, u2)
	require.NoError(t, err)
	require.True(t, isFollowing)

	require.Len(t, notifRepo.notifications, 1)
	notif := notifRepo.notifications[0]
	require.Equal(t, models.NotificationNewFollower, notif.Type)
	require.Equal(t, u2, notif.UserID)
	require.Equal(t, u1, notif.ActorID)

	require.NoError(t, svc.UnfollowUser(ctx, u1, u2))

	isFollowing, err = svc.CheckFollowStatus(ctx, u1, u2)
	require.NoError(t, err)
	require.False(t, isFollowing)

	// Unfollowing never erases notification history.
	require.Len(t, notifRepo.notifications, 1)
	require.Equal(t, notif, notifRepo.notifications[0])
}

func TestGetFollowStats_ToleratesPartialFailure(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	followRepo := newFakeFollowRepo()
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{})

	ctx := context.Background()
	require.NoError(t, svc.FollowUser(ctx, b, a))
	require.NoError(t, svc.FollowUser(ctx, c, a))
	require.NoError(t, svc.FollowUser(ctx, a, b))

	stats, err := svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 2, Following: 1}, stats)

	// One side failing degrades that side to 0 instead of failing the call.
	followRepo.failFollowersCount = errors.New("store down")
	stats, err = svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 0, Following: 1}, stats)
}

func newCachedTestService(followRepo *fakeFollowRepo, statsCache *fakeStatsCache) *SocialGraphService {
	return NewSocialGraphService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{}, statsCache, events.NewBroadcaster(), zap.NewNop())
}

func TestGetFollowStats_CacheHitSkipsStore(t *testing.T) {
	a := uuid.New()
	followRepo := newFakeFollowRepo()
	followRepo.failFollowersCount = errors.New("store down")
	followRepo.failFollowingCount = errors.New("store down")
	statsCache := newFakeStatsCache()
	statsCache.entries[a] = models.FollowStats{Followers: 4, Following: 2}
	svc := newCachedTestService(followRepo, statsCache)

	// The store is unreachable; a cache hit answers without touching it.
	stats, err := svc.GetFollowStats(context.Background(), a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 4, Following: 2}, stats)
}

func TestGetFollowStats_CacheErrorFallsThrough(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	followRepo := newFakeFollowRepo()
	statsCache := newFakeStatsCache()
	svc := newCachedTestService(followRepo, statsCache)

	ctx := context.Background()
	require.NoError(t, svc.FollowUser(ctx, b, a))

	// A failing cache read degrades to the store, not to an error.
	statsCache.getErr = errors.New("redis down")
	stats, err := svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 1}, stats)

	// A failing cache write is equally silent.
	statsCache.getErr = nil
	statsCache.setErr = errors.New("redis down")
	stats, err = svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 1}, stats)
}

func TestGetFollowStats_MissPopulatesCache(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	followRepo := newFakeFollowRepo()
	statsCache := newFakeStatsCache()
	svc := newCachedTestService(followRepo, statsCache)

	ctx := context.Background()
	require.NoError(t, svc.FollowUser(ctx, b, a))

	_, err := svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 1}, statsCache.entries[a])

	// Follow mutations invalidate both sides of the edge.
	require.NoError(t, svc.UnfollowUser(ctx, b, a))
	require.NotContains(t, statsCache.entries, a)
	require.NotContains(t, statsCache.entries, b)
}

func TestGetFollowStats_DegradedResultNotCached(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	followRepo := newFakeFollowRepo()
	statsCache := newFakeStatsCache()
	svc := newCachedTestService(followRepo, statsCache)

	ctx := context.Background()
	require.NoError(t, svc.FollowUser(ctx, b, a))

	// A partially failed read reports a zeroed side but must not park that
	// zero in the cache for the TTL.
	followRepo.failFollowersCount = errors.New("store down")
	stats, err := svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 0, Following: 0}, stats)
	require.Zero(t, statsCache.sets)
	require.NotContains(t, statsCache.entries, a)

	// Once the store recovers the real counts come back immediately.
	followRepo.failFollowersCount = nil
	stats, err = svc.GetFollowStats(ctx, a)
	require.NoError(t, err)
	require.Equal(t, models.FollowStats{Followers: 1, Following: 0}, stats)
	require.Equal(t, 1, statsCache.sets)
}

func TestConnectionRequest_Scenario(t *testing.T) {
	svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})

	a, b := uuid.New(), uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.SendConnectionRequest(ctx, a, b))

	state, err := svc.GetConnectionStatus(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionState{Status: models.ConnectionStatusPending, IsRequester: true}, state)

	state, err = svc.GetConnectionStatus(ctx, b, a)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionState{Status: models.ConnectionStatusPending, IsRequester: false}, state)

	require.NoError(t, svc.AcceptConnectionRequest(ctx, b, a))

	for _, viewer := range []uuid.UUID{a, b} {
		other := a
		if viewer == a {
			other = b
		}
		state, err = svc.GetConnectionStatus(ctx, viewer, other)
		require.NoError(t, err)
		require.Equal(t, models.ConnectionStatusAccepted, state.Status)
	}

	require.NoError(t, svc.RemoveConnection(ctx, a, b))

	state, err = svc.GetConnectionStatus(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionStatusNone, state.Status)
	state, err = svc.GetConnectionStatus(ctx, b, a)
	require.NoError(t, err)
	require.Equal(t, models.ConnectionStatusNone, state.Status)
}

func TestConnectionRequest_Transitions(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ctx := context.Background()

	t.Run("duplicate request rejected in both orientations", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
		require.ErrorIs(t, svc.SendConnectionRequest(ctx, a, b), ErrDuplicateConnection)
		require.ErrorIs(t, svc.SendConnectionRequest(ctx, b, a), ErrDuplicateConnection)
	})

	t.Run("self request rejected", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.ErrorIs(t, svc.SendConnectionRequest(ctx, a, a), ErrSelfConnection)
	})

	t.Run("only recipient accepts", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
		require.ErrorIs(t, svc.AcceptConnectionRequest(ctx, a, b), ErrNotRecipient)
		require.NoError(t, svc.AcceptConnectionRequest(ctx, b, a))
	})

	t.Run("only requester withdraws", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
		require.ErrorIs(t, svc.WithdrawConnectionRequest(ctx, b, a), ErrNotRequester)
		require.NoError(t, svc.WithdrawConnectionRequest(ctx, a, b))

		state, err := svc.GetConnectionStatus(ctx, a, b)
		require.NoError(t, err)
		require.Equal(t, models.ConnectionStatusNone, state.Status)
	})

	t.Run("remove requires accepted", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.ErrorIs(t, svc.RemoveConnection(ctx, a, b), ErrConnectionNotFound)
		require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
		require.ErrorIs(t, svc.RemoveConnection(ctx, a, b), ErrNotConnected)
	})

	t.Run("accept requires pending", func(t *testing.T) {
		svc, _ := newTestService(newFakeFollowRepo(), newFakeConnectionRepo(), &fakeNotificationRepo{})
		require.NoError(t, svc.SendConnectionRequest(ctx, a, b))
		require.NoError(t, svc.AcceptConnectionRequest(ctx, b, a))
		require.ErrorIs(t, svc.AcceptConnectionRequest(ctx, b, a), ErrConnectionNotPending)
	})
}

func TestMutualConnectionsCount(t *testing.T) {
	followRepo := newFakeFollowRepo()
	svc, _ := newTestService(followRepo, newFakeConnectionRepo(), &fakeNotificationRepo{})

	viewer, other := uuid.New(), uuid.New()
	shared1, shared2, unrelated := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	// shared1 and shared2 follow the viewer and are followed by other.
	require.NoError(t, svc.FollowUser(ctx, shared1, viewer))
	require.NoError(t, svc.FollowUser(ctx, shared2, viewer))
	require.NoError(t, svc.FollowUser(ctx, unrelated, viewer))
	require.NoError(t, svc.FollowUser(ctx, other, shared1))
	require.NoError(t, svc.FollowUser(ctx, other, shared2))

	require.EqualValues(t, 2, svc.MutualConnectionsCount(ctx, viewer, other))

	// Degrades to 0 on a store failure instead of surfacing an error.
	followRepo.failFollowerIDs = errors.New("store down")
	require.EqualValues(t, 0, svc.MutualConnectionsCount(ctx, viewer, other))
}
