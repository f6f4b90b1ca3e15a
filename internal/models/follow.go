package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow represents a directed follow edge between two profiles. Edges are
// only ever inserted or deleted, never updated in place.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uuid.UUID `json:"follower_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	FollowingID uuid.UUID `json:"following_id" gorm:"type:uuid;index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName maps Follow onto the followers table
func (Follow) TableName() string {
	return "followers"
}

// FollowStats holds the inbound/outbound edge counts for a profile.
type FollowStats struct {
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}
