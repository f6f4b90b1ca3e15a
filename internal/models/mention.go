package models

import "fmt"

// MentionType tags a mention candidate or embedded mention node with its
// originating entity kind.
type MentionType string

const (
	MentionTypeUser         MentionType = "user"
	MentionTypeOrganization MentionType = "organization"
)

// MentionCandidate is a transient suggestion produced per autocomplete
// query. Candidates are never persisted; selecting one embeds a MentionNode
// snapshot into the post document instead.
type MentionCandidate struct {
	ID        string      `json:"id"`
	Label     string      `json:"label"`
	Type      MentionType `json:"type"`
	AvatarURL string      `json:"avatar_url,omitempty"`
	Secondary string      `json:"secondary,omitempty"`
}

// MentionCandidateFromUser projects a profile into a user candidate. The
// secondary line prefers the member's title over their organization name.
func MentionCandidateFromUser(u User) MentionCandidate {
	secondary := u.Title
	if secondary == "" {
		secondary = u.OrganizationName
	}
	return MentionCandidate{
		ID:        u.ID.String(),
		Label:     u.DisplayName,
		Type:      MentionTypeUser,
		AvatarURL: u.AvatarURL,
		Secondary: secondary,
	}
}

// MentionCandidateFromOrganization projects a directory entry into an
// organization candidate. The synthetic "{type}-{id}" identifier keeps
// organization ids from colliding with profile ids inside a document.
func MentionCandidateFromOrganization(o Organization) MentionCandidate {
	return MentionCandidate{
		ID:        fmt.Sprintf("%s-%s", o.Type, o.ID),
		Label:     o.Name,
		Type:      MentionTypeOrganization,
		AvatarURL: o.ImageURL,
		Secondary: o.Tagline,
	}
}

// MentionNode is the three-field snapshot committed into a post document
// when a candidate is selected. It is a point-in-time citation: later
// renames of the referenced entity do not rewrite it.
type MentionNode struct {
	ID    string      `json:"id" bson:"id" validate:"required"`
	Label string      `json:"label" bson:"label" validate:"required"`
	Type  MentionType `json:"type" bson:"type" validate:"required,oneof=user organization"`
}
