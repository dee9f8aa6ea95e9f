package domain

import "errors"

// InvalidCredentialsMessage is the only text shown for a failed sign-in.
const InvalidCredentialsMessage = "Invalid email or password. Please try again."

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionNotFound    = errors.New("session not found")
	// ErrSignInUnavailable means the credentials were accepted but the session could not be stored.
	ErrSignInUnavailable = errors.New("sign-in unavailable")
)
