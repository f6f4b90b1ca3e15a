package models

import (
	"time"

	"github.com/google/uuid"
)

// Connection statuses. A missing row is reported as ConnectionStatusNone;
// "declined" is reserved in the model but no exposed transition reaches it.
const (
	ConnectionStatusNone     = "none"
	ConnectionStatusPending  = "pending"
	ConnectionStatusAccepted = "accepted"
	ConnectionStatusDeclined = "declined"
)

// Connection represents an undirected connection negotiated via a directed
// request. The row is stored directionally (requester -> recipient) but the
// relationship is symmetric once accepted, so lookups must try both
// orientations.
type Connection struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	RequesterID uuid.UUID `json:"requester_id" gorm:"type:uuid;index"`
	RecipientID uuid.UUID `json:"recipient_id" gorm:"type:uuid;index"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ConnectionState is the viewer-relative projection of a Connection row.
type ConnectionState struct {
	Status      string `json:"status"`
	IsRequester bool   `json:"is_requester"`
}

// SendConnectionRequestBody defines the request body for sending a
// connection request
type SendConnectionRequestBody struct {
	RecipientID string `json:"recipient_id" validate:"required,uuid"`
}
