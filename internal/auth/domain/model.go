package domain

import "time"

// Identity is the signed-in administrator as reported by the auth backend.
type Identity struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	IDToken   string    `json:"id_token,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionEvent is one push on a session-change channel. A nil Identity means signed out.
type SessionEvent struct {
	SessionID string    `json:"session_id"`
	Identity  *Identity `json:"identity"`
}
