package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a community post stored in MongoDB. The content is plain
// text; mention nodes selected in the editor are carried alongside it as
// embedded snapshots.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  string             `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	Mentions  []MentionNode      `json:"mentions,omitempty" bson:"mentions,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string        `json:"content" validate:"required,min=1,max=5000"`
	Mentions []MentionNode `json:"mentions,omitempty" validate:"omitempty,dive"`
}
