package domain

import "time"

// InvitationStatus is the lifecycle state of an agent invitation
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationCancelled InvitationStatus = "cancelled"
	InvitationExpired   InvitationStatus = "expired"
)

// Invitation is a manager's pending invite for a new agent. Tokens are single
// use and expire seven days after creation.
type Invitation struct {
	ID            string           `json:"id"`
	Email         string           `json:"email"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	Token         string           `json:"-"`
	Status        InvitationStatus `json:"status"`
	InvitedBy     string           `json:"invited_by"`
	InvitedByName string           `json:"invited_by_name"`
	UserID        *string          `json:"user_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
	AcceptedAt    *time.Time       `json:"accepted_at,omitempty"`
}

// Expired reports whether the invitation is past its expiry date
func (i *Invitation) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}
