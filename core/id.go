package core

import "github.com/google/uuid"

// newSessionID returns an opaque random identifier for a server-side session.
func newSessionID() string {
	return uuid.NewString()
}
