package model

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a call request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusDispatched Status = "dispatched"
	StatusClaimed    Status = "claimed"
	StatusExpired    Status = "expired"
	StatusCancelled  Status = "cancelled"
)

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusClaimed || s == StatusExpired || s == StatusCancelled
}

// CallRequest is a pending interpreter-call request held by the registry
// from creation until a terminal status plus the eviction grace period.
type CallRequest struct {
	ID          uuid.UUID   `json:"id"`
	Language    string      `json:"language"`
	ChannelName string      `json:"channel_name"`
	Status      Status      `json:"status"`
	Candidates  []uuid.UUID `json:"candidates"`
	ClaimedBy   uuid.UUID   `json:"claimed_by"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
}
