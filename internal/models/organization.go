package models

import (
	"time"

	"github.com/google/uuid"
)

// OrganizationType tags an organization for directory filtering and for the
// synthetic mention identifiers ("{type}-{id}").
type OrganizationType string

const (
	OrgTypeNonprofit  OrganizationType = "nonprofit"
	OrgTypeFunder     OrganizationType = "funder"
	OrgTypeFoundation OrganizationType = "foundation"
	OrgTypeEducation  OrganizationType = "education"
	OrgTypeHealthcare OrganizationType = "healthcare"
	OrgTypeGovernment OrganizationType = "government"
	OrgTypeReligious  OrganizationType = "religious"
	OrgTypeForProfit  OrganizationType = "for-profit"
)

// Organization is a directory entry. Organizations carry no relationship
// edges; they exist as spotlight/mention targets.
type Organization struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type      OrganizationType `json:"type" gorm:"size:20;index"`
	Name      string           `json:"name" gorm:"size:160;index"`
	Tagline   string           `json:"tagline,omitempty"`
	ImageURL  string           `json:"image_url,omitempty"`
	Slug      string           `json:"slug" gorm:"size:160;uniqueIndex"`
	CreatedAt time.Time        `json:"created_at"`
}
