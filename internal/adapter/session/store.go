package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Session associates an opaque session ID with a member.
type Session struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the session persistence boundary. Implementations must be safe
// for concurrent use.
type Store interface {
	// Create opens a session for the member and returns its ID.
	Create(ctx context.Context, memberID string) (*Session, error)

	// Get resolves a session ID. Returns domain.ErrSessionNotFound when the
	// session does not exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}

// newSessionID returns 16 random bytes hex-encoded.
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
