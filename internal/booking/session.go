package booking

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when a session id is unknown or expired.
var ErrSessionNotFound = errors.New("booking: session not found")

// Contact is who receives the confirmation email. Both fields are optional.
type Contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Session is one open booking wizard. DestinationID is empty once the
// session has been reset after a confirmation.
type Session struct {
	ID            string     `json:"id"`
	DestinationID string     `json:"destination_id"`
	State         State      `json:"state"`
	Contact       Contact    `json:"contact"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
}

// SessionStore keeps sessions for their lifetime.
type SessionStore interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}
