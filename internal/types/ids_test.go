package types

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestNewSessionID(t *testing.T) {
	before := time.Now().UnixMilli()
	id := NewSessionID()
	after := time.Now().UnixMilli()

	if !strings.HasPrefix(string(id), "session-") {
		t.Fatalf("expected session- prefix, got %s", id)
	}

	millis, err := strconv.ParseInt(strings.TrimPrefix(string(id), "session-"), 10, 64)
	if err != nil {
		t.Fatalf("expected millisecond suffix: %v", err)
	}
	if millis < before || millis > after {
		t.Errorf("timestamp %d outside [%d, %d]", millis, before, after)
	}
}

func TestNewMessageID(t *testing.T) {
	a := NewMessageID()
	b := NewMessageID()
	if a == "" {
		t.Error("expected non-empty message ID")
	}
	if a == b {
		t.Error("expected distinct message IDs")
	}
}

func TestNewMessage(t *testing.T) {
	msg := NewMessage(RoleUser, "hello", nil)
	if msg.Role != RoleUser {
		t.Errorf("expected role %s, got %s", RoleUser, msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("expected content hello, got %s", msg.Content)
	}
	if msg.ID == "" {
		t.Error("expected non-empty ID")
	}
	if msg.Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}
