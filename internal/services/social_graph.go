package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fundspace/backend/internal/events"
	"github.com/fundspace/backend/internal/models"
	"github.com/fundspace/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FollowStatsCache is the read-through cache for follow stats. Implemented
// by cache.FollowStatsCache; every failure is tolerated by falling through
// to the store.
type FollowStatsCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.FollowStats, error)
	Set(ctx context.Context, userID uuid.UUID, stats models.FollowStats) error
	Invalidate(ctx context.Context, userIDs ...uuid.UUID) error
}

// SocialGraphService applies validated follow/connection state transitions,
// writes derived notifications, and announces settled mutations on the
// in-process broadcaster.
//
// The follow edge is the source of truth; the notification is best-effort.
// A notification write failing never rolls back or fails the edge mutation.
type SocialGraphService struct {
	followRepo       repositories.FollowRepository
	connectionRepo   repositories.ConnectionRepository
	notificationRepo repositories.NotificationRepository
	statsCache       FollowStatsCache
	broadcaster      *events.Broadcaster
	logger           *zap.Logger
}

// NewSocialGraphService creates a SocialGraphService. statsCache may be nil
// when no Redis is configured.
func NewSocialGraphService(
	followRepo repositories.FollowRepository,
	connectionRepo repositories.ConnectionRepository,
	notificationRepo repositories.NotificationRepository,
	statsCache FollowStatsCache,
	broadcaster *events.Broadcaster,
	logger *zap.Logger,
) *SocialGraphService {
	return &SocialGraphService{
		followRepo:       followRepo,
		connectionRepo:   connectionRepo,
		notificationRepo: notificationRepo,
		statsCache:       statsCache,
		broadcaster:      broadcaster,
		logger:           logger,
	}
}

// FollowUser inserts a follow edge from followerID to followingID. The
// existence pre-check is not atomic against concurrent writers from other
// processes; a lost race surfaces as ErrAlreadyFollowing or a unique-index
// store error, both tolerated by callers as a no-op.
func (s *SocialGraphService) FollowUser(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return ErrMissingIdentifier
	}
	if followerID == followingID {
		return ErrSelfFollow
	}

	isFollowing, err := s.followRepo.IsFollowing(ctx, followerID, followingID)
	if err != nil {
		return fmt.Errorf("checking existing follow: %w", err)
	}
	if isFollowing {
		return ErrAlreadyFollowing
	}

	follow := &models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := s.followRepo.CreateFollow(ctx, follow); err != nil {
		return fmt.Errorf("creating follow: %w", err)
	}

	s.notify(ctx, followingID, followerID, models.NotificationNewFollower)
	s.invalidateStats(ctx, followerID, followingID)
	s.publish(events.ActionFollow, followerID, followingID)
	return nil
}

// UnfollowUser removes the edge if present. Removing an absent edge
// succeeds, so retries stay idempotent. Notifications created for the edge
// are kept: history is append-only from the recipient's perspective.
func (s *SocialGraphService) UnfollowUser(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return ErrMissingIdentifier
	}

	if err := s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
		return fmt.Errorf("deleting follow: %w", err)
	}

	s.invalidateStats(ctx, followerID, followingID)
	s.publish(events.ActionUnfollow, followerID, followingID)
	return nil
}

// CheckFollowStatus reports whether followerID follows followingID.
func (s *SocialGraphService) CheckFollowStatus(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if followerID == uuid.Nil || followingID == uuid.Nil {
		return false, ErrMissingIdentifier
	}
	return s.followRepo.IsFollowing(ctx, followerID, followingID)
}

// GetFollowStats returns inbound and outbound edge counts. Each side
// tolerates its own store failure independently: the failed side reports 0
// rather than failing the whole call.
func (s *SocialGraphService) GetFollowStats(ctx context.Context, userID uuid.UUID) (models.FollowStats, error) {
	if userID == uuid.Nil {
		return models.FollowStats{}, ErrMissingIdentifier
	}

	if s.statsCache != nil {
		cached, err := s.statsCache.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("follow stats cache read failed", zap.String("user_id", userID.String()), zap.Error(err))
		} else if cached != nil {
			return *cached, nil
		}
	}

	var stats models.FollowStats
	degraded := false
	followers, err := s.followRepo.GetFollowersCount(ctx, userID)
	if err != nil {
		s.logger.Warn("followers count failed", zap.String("user_id", userID.String()), zap.Error(err))
		degraded = true
	} else {
		stats.Followers = followers
	}
	following, err := s.followRepo.GetFollowingCount(ctx, userID)
	if err != nil {
		s.logger.Warn("following count failed", zap.String("user_id", userID.String()), zap.Error(err))
		degraded = true
	} else {
		stats.Following = following
	}

	// Never cache a degraded result: a zeroed side would otherwise be served
	// for the full TTL after the store recovers.
	if s.statsCache != nil && !degraded {
		if err := s.statsCache.Set(ctx, userID, stats); err != nil {
			s.logger.Warn("follow stats cache write failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return stats, nil
}

// SendConnectionRequest creates a pending request from requesterID to
// recipientID. Any existing row between the pair, in either orientation,
// blocks a new request.
func (s *SocialGraphService) SendConnectionRequest(ctx context.Context, requesterID, recipientID uuid.UUID) error {
	if requesterID == uuid.Nil || recipientID == uuid.Nil {
		return ErrMissingIdentifier
	}
	if requesterID == recipientID {
		return ErrSelfConnection
	}

	_, err := s.connectionRepo.GetConnectionBetween(ctx, requesterID, recipientID)
	if err == nil {
		return ErrDuplicateConnection
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking existing connection: %w", err)
	}

	conn := &models.Connection{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connectionRepo.CreateConnection(ctx, conn); err != nil {
		return fmt.Errorf("creating connection request: %w", err)
	}
	return nil
}

// AcceptConnectionRequest moves the pending request between viewerID and
// otherID to accepted. Only the recipient may accept.
func (s *SocialGraphService) AcceptConnectionRequest(ctx context.Context, viewerID, otherID uuid.UUID) error {
	conn, err := s.getConnection(ctx, viewerID, otherID)
	if err != nil {
		return err
	}
	if conn.Status != models.ConnectionStatusPending {
		return ErrConnectionNotPending
	}
	if conn.RecipientID != viewerID {
		return ErrNotRecipient
	}

	if err := s.connectionRepo.UpdateConnectionStatus(ctx, conn.ID, models.ConnectionStatusAccepted); err != nil {
		return fmt.Errorf("accepting connection request: %w", err)
	}
	return nil
}

// WithdrawConnectionRequest deletes a still-pending request. Only the
// original requester may withdraw.
func (s *SocialGraphService) WithdrawConnectionRequest(ctx context.Context, viewerID, otherID uuid.UUID) error {
	conn, err := s.getConnection(ctx, viewerID, otherID)
	if err != nil {
		return err
	}
	if conn.Status != models.ConnectionStatusPending {
		return ErrConnectionNotPending
	}
	if conn.RequesterID != viewerID {
		return ErrNotRequester
	}

	if err := s.connectionRepo.DeleteConnection(ctx, conn.ID); err != nil {
		return fmt.Errorf("withdrawing connection request: %w", err)
	}
	return nil
}

// RemoveConnection deletes an accepted connection. Either party may remove
// it.
func (s *SocialGraphService) RemoveConnection(ctx context.Context, viewerID, otherID uuid.UUID) error {
	conn, err := s.getConnection(ctx, viewerID, otherID)
	if err != nil {
		return err
	}
	if conn.Status != models.ConnectionStatusAccepted {
		return ErrNotConnected
	}

	if err := s.connectionRepo.DeleteConnection(ctx, conn.ID); err != nil {
		return fmt.Errorf("removing connection: %w", err)
	}
	return nil
}

// GetConnectionStatus derives the viewer-relative {status, isRequester}
// projection. A missing row reports status "none".
func (s *SocialGraphService) GetConnectionStatus(ctx context.Context, viewerID, otherID uuid.UUID) (models.ConnectionState, error) {
	if viewerID == uuid.Nil || otherID == uuid.Nil {
		return models.ConnectionState{}, ErrMissingIdentifier
	}

	conn, err := s.connectionRepo.GetConnectionBetween(ctx, viewerID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ConnectionState{Status: models.ConnectionStatusNone}, nil
		}
		return models.ConnectionState{}, fmt.Errorf("reading connection: %w", err)
	}
	return models.ConnectionState{
		Status:      conn.Status,
		IsRequester: conn.RequesterID == viewerID,
	}, nil
}

// MutualConnectionsCount approximates the shared network between viewerID
// and otherID as the intersection of who follows the viewer with who the
// other member follows. It is a non-critical signal: any failure degrades
// to 0.
func (s *SocialGraphService) MutualConnectionsCount(ctx context.Context, viewerID, otherID uuid.UUID) int64 {
	followers, err := s.followRepo.GetFollowerIDs(ctx, viewerID)
	if err != nil {
		s.logger.Warn("mutual connections: follower ids failed", zap.String("viewer_id", viewerID.String()), zap.Error(err))
		return 0
	}
	following, err := s.followRepo.GetFollowingIDs(ctx, otherID)
	if err != nil {
		s.logger.Warn("mutual connections: following ids failed", zap.String("other_id", otherID.String()), zap.Error(err))
		return 0
	}

	seen := make(map[uuid.UUID]struct{}, len(followers))
	for _, id := range followers {
		seen[id] = struct{}{}
	}
	var count int64
	for _, id := range following {
		if _, ok := seen[id]; ok {
			count++
		}
	}
	return count
}

func (s *SocialGraphService) getConnection(ctx context.Context, viewerID, otherID uuid.UUID) (*models.Connection, error) {
	if viewerID == uuid.Nil || otherID == uuid.Nil {
		return nil, ErrMissingIdentifier
	}
	conn, err := s.connectionRepo.GetConnectionBetween(ctx, viewerID, otherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("reading connection: %w", err)
	}
	return conn, nil
}

// notify writes a best-effort notification. A failure is logged and never
// propagated; notifying yourself is silently skipped.
func (s *SocialGraphService) notify(ctx context.Context, userID, actorID uuid.UUID, notifType string) {
	if userID == actorID {
		return
	}
	notification := &models.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    notifType,
	}
	if err := s.notificationRepo.CreateNotification(ctx, notification); err != nil {
		s.logger.Warn("notification not created",
			zap.String("type", notifType),
			zap.String("user_id", userID.String()),
			zap.String("actor_id", actorID.String()),
			zap.Error(err))
	}
}

func (s *SocialGraphService) invalidateStats(ctx context.Context, userIDs ...uuid.UUID) {
	if s.statsCache == nil {
		return
	}
	if err := s.statsCache.Invalidate(ctx, userIDs...); err != nil {
		s.logger.Warn("follow stats cache invalidation failed", zap.Error(err))
	}
}

func (s *SocialGraphService) publish(action events.Action, followerID, followingID uuid.UUID) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.Publish(events.FollowEvent{
		Action:      action,
		FollowerID:  followerID,
		FollowingID: followingID,
		Timestamp:   time.Now(),
	})
}
