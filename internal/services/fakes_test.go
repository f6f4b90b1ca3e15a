package services

import (
	"context"

	"github.com/fundspace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. Each fail* field, when set, makes the matching
// method return that error.

type fakeFollowRepo struct {
	edges []models.Follow
	users map[uuid.UUID]models.User

	failCreate         error
	failDelete         error
	failIsFollowing    error
	failFollowersCount error
	failFollowingCount error
	failFollowerIDs    error
	failFollowingIDs   error
	failFollowing      error
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{users: make(map[uuid.UUID]models.User)}
}

func (r *fakeFollowRepo) CreateFollow(_ context.Context, follow *models.Follow) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.edges = append(r.edges, *follow)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(_ context.Context, followerID, followingID uuid.UUID) error {
	if r.failDelete != nil {
		return r.failDelete
	}
	kept := r.edges[:0]
	for _, e := range r.edges {
		if e.FollowerID != followerID || e.FollowingID != followingID {
			kept = append(kept, e)
		}
	}
	r.edges = kept
	return nil
}

func (r *fakeFollowRepo) IsFollowing(_ context.Context, followerID, followingID uuid.UUID) (bool, error) {
	if r.failIsFollowing != nil {
		return false, r.failIsFollowing
	}
	for _, e := range r.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFollowRepo) GetFollowers(_ context.Context, userID uuid.UUID, limit int) ([]models.User, error) {
	var users []models.User
	for _, e := range r.edges {
		if e.FollowingID == userID && len(users) < limit {
			users = append(users, r.users[e.FollowerID])
		}
	}
	return users, nil
}

func (r *fakeFollowRepo) GetFollowing(_ context.Context, userID uuid.UUID, limit int) ([]models.User, error) {
	if r.failFollowing != nil {
		return nil, r.failFollowing
	}
	var users []models.User
	for _, e := range r.edges {
		if e.FollowerID == userID && len(users) < limit {
			users = append(users, r.users[e.FollowingID])
		}
	}
	return users, nil
}

func (r *fakeFollowRepo) GetFollowersCount(_ context.Context, userID uuid.UUID) (int64, error) {
	if r.failFollowersCount != nil {
		return 0, r.failFollowersCount
	}
	var count int64
	for _, e := range r.edges {
		if e.FollowingID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) GetFollowingCount(_ context.Context, userID uuid.UUID) (int64, error) {
	if r.failFollowingCount != nil {
		return 0, r.failFollowingCount
	}
	var count int64
	for _, e := range r.edges {
		if e.FollowerID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFollowRepo) GetFollowerIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if r.failFollowerIDs != nil {
		return nil, r.failFollowerIDs
	}
	var ids []uuid.UUID
	for _, e := range r.edges {
		if e.FollowingID == userID {
			ids = append(ids, e.FollowerID)
		}
	}
	return ids, nil
}

func (r *fakeFollowRepo) GetFollowingIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if r.failFollowingIDs != nil {
		return nil, r.failFollowingIDs
	}
	var ids []uuid.UUID
	for _, e := range r.edges {
		if e.FollowerID == userID {
			ids = append(ids, e.FollowingID)
		}
	}
	return ids, nil
}

type fakeConnectionRepo struct {
	rows   map[uint]*models.Connection
	nextID uint
}

func newFakeConnectionRepo() *fakeConnectionRepo {
	return &fakeConnectionRepo{rows: make(map[uint]*models.Connection), nextID: 1}
}

func (r *fakeConnectionRepo) CreateConnection(_ context.Context, conn *models.Connection) error {
	conn.ID = r.nextID
	r.nextID++
	stored := *conn
	r.rows[conn.ID] = &stored
	return nil
}

func (r *fakeConnectionRepo) GetConnectionBetween(_ context.Context, userA, userB uuid.UUID) (*models.Connection, error) {
	for _, conn := range r.rows {
		if (conn.RequesterID == userA && conn.RecipientID == userB) ||
			(conn.RequesterID == userB && conn.RecipientID == userA) {
			found := *conn
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeConnectionRepo) UpdateConnectionStatus(_ context.Context, id uint, status string) error {
	if conn, ok := r.rows[id]; ok {
		conn.Status = status
	}
	return nil
}

func (r *fakeConnectionRepo) DeleteConnection(_ context.Context, id uint) error {
	delete(r.rows, id)
	return nil
}

func (r *fakeConnectionRepo) GetPendingRequestsFor(_ context.Context, recipientID uuid.UUID) ([]models.Connection, error) {
	var requests []models.Connection
	for _, conn := range r.rows {
		if conn.RecipientID == recipientID && conn.Status == models.ConnectionStatusPending {
			requests = append(requests, *conn)
		}
	}
	return requests, nil
}

func (r *fakeConnectionRepo) GetConnectedUsers(_ context.Context, _ uuid.UUID) ([]models.User, error) {
	return nil, nil
}

type fakeNotificationRepo struct {
	notifications []models.Notification
	failCreate    error
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, n *models.Notification) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	n.ID = uint(len(r.notifications) + 1)
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByUserID(_ context.Context, userID uuid.UUID, _, _ int) ([]models.Notification, int64, error) {
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(_ context.Context, _ uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(_ context.Context, _ uint, _ uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) ClearAll(_ context.Context, _ uuid.UUID) error {
	return nil
}

type fakeStatsCache struct {
	entries map[uuid.UUID]models.FollowStats
	getErr  error
	setErr  error
	sets    int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[uuid.UUID]models.FollowStats)}
}

func (c *fakeStatsCache) Get(_ context.Context, userID uuid.UUID) (*models.FollowStats, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	if stats, ok := c.entries[userID]; ok {
		return &stats, nil
	}
	return nil, nil
}

func (c *fakeStatsCache) Set(_ context.Context, userID uuid.UUID, stats models.FollowStats) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[userID] = stats
	c.sets++
	return nil
}

func (c *fakeStatsCache) Invalidate(_ context.Context, userIDs ...uuid.UUID) error {
	for _, id := range userIDs {
		delete(c.entries, id)
	}
	return nil
}

type fakeUserRepo struct {
	searchResults []models.User
	searchErr     error
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, _ uuid.UUID) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUsers(_ context.Context, _, _ int) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) SearchMembers(_ context.Context, _ string, limit int) ([]models.User, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	if len(r.searchResults) > limit {
		return r.searchResults[:limit], nil
	}
	return r.searchResults, nil
}

type fakeOrgRepo struct {
	searchResults []models.Organization
	searchErr     error
}

func (r *fakeOrgRepo) GetOrganizationBySlug(_ context.Context, _ string) (*models.Organization, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrgRepo) GetOrganizations(_ context.Context, _ string, _, _ int) ([]models.Organization, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrgRepo) SearchByName(_ context.Context, _ string, limit int) ([]models.Organization, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	if len(r.searchResults) > limit {
		return r.searchResults[:limit], nil
	}
	return r.searchResults, nil
}
