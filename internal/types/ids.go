package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionID string
type ProjectID string
type FileID string
type MessageID string

// NewSessionID derives a session identifier from the current wall clock,
// matching the backend's expected "session-<millis>" shape. Good enough for
// one client on one device; not collision-resistant across devices.
func NewSessionID() SessionID {
	return SessionID(fmt.Sprintf("session-%d", time.Now().UnixMilli()))
}

func NewMessageID() MessageID {
	return MessageID(uuid.New().String())
}
