package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User represents a member profile. Profiles are provisioned by the
// onboarding flow (out of scope for this service); this service only reads
// them and attaches relationship edges to them.
type User struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DisplayName      string    `json:"display_name" gorm:"size:120;index"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	Title            string    `json:"title,omitempty" gorm:"size:120"`
	OrganizationName string    `json:"organization_name,omitempty" gorm:"size:160"`
	IsAdmin          bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName maps User onto the profiles table
func (User) TableName() string {
	return "profiles"
}

// UserCompact is the trimmed projection embedded in enriched responses
type UserCompact struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Title       string    `json:"title,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		Title:       u.Title,
	}
}

// SessionClaims are custom claims extending standard jwt.RegisteredClaims
type SessionClaims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}
