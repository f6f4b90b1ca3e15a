package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	NotificationNewFollower = "new_follower"
)

// Notification is a derived, best-effort side-effect record. It is created
// by social actions, mutated only by marking read, and deleted only by the
// recipient's bulk clear.
type Notification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;index"` // recipient
	ActorID   uuid.UUID `json:"actor_id" gorm:"type:uuid;index"`
	Type      string    `json:"type" gorm:"size:30;index"`
	PostID    *string   `json:"post_id,omitempty" gorm:"size:24"`
	IsRead    bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
