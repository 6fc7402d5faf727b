package model

import "time"

// Role is the capacity in which a credential holder joins a channel.
type Role string

const (
	RolePublisher  Role = "publisher"
	RoleSubscriber Role = "subscriber"
)

// Credential is a signed, time-boxed authorization to join one realtime
// channel in one role. It is immutable once issued and carries no
// reference back to the call request.
type Credential struct {
	AppID       string    `json:"app_id"`
	ChannelName string    `json:"channel_name"`
	Role        Role      `json:"role"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
