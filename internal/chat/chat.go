// Package chat owns the conversation: the append-only message log, code block
// extraction, and the send pipeline against the remote backend.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/semaphore"

	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// ErrEmptyMessage is returned when a send is attempted with no text. It never
// reaches the backend.
var ErrEmptyMessage = errors.New("message is empty")

// Service drives chat sends for one session. Sends are serialized: a second
// Send blocks until the first completes, so the log preserves send order even
// if callers race.
type Service struct {
	backend backend.Client
	session *session.Session
	log     *Log
	notify  notify.Notifier
	sem     *semaphore.Weighted
}

// NewService wires a chat service to its collaborators.
func NewService(client backend.Client, sess *session.Session, log *Log, notifier notify.Notifier) *Service {
	return &Service{
		backend: client,
		session: sess,
		log:     log,
		notify:  notifier,
		sem:     semaphore.NewWeighted(1),
	}
}

// Log exposes the conversation for rendering.
func (s *Service) Log() *Log { return s.log }

// Send issues a basic chat call, optionally carrying a code context string.
// The user turn is appended before the network call; on failure it stays in
// the log with no assistant reply, which is a valid terminal state.
func (s *Service) Send(ctx context.Context, text, codeContext string) (*types.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire send slot: %w", err)
	}
	defer s.sem.Release(1)

	snap := s.session.Snapshot()
	s.log.Append(types.NewMessage(types.RoleUser, text, nil))

	req := &backend.ChatRequest{
		Message:   text,
		SessionID: string(snap.SessionID),
		Provider:  snap.Provider,
		Model:     snap.Model,
	}
	if codeContext != "" {
		req.Context = &codeContext
	}

	resp, err := s.backend.Chat(ctx, req)
	if err != nil {
		slog.Error("chat send failed", "session_id", string(snap.SessionID), "error", err)
		s.notify.Notify(notify.Alert{Action: "Send message", Message: "Failed to send message. Please try again."})
		return nil, fmt.Errorf("send message: %w", err)
	}

	msg := types.NewMessage(types.RoleAssistant, resp.Response, nil)
	s.log.Append(msg)
	return &msg, nil
}

// SendEnhanced issues a project-scoped chat call and extracts any applicable
// code blocks from the reply.
func (s *Service) SendEnhanced(ctx context.Context, text string) (*types.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire send slot: %w", err)
	}
	defer s.sem.Release(1)

	snap := s.session.Snapshot()
	s.log.Append(types.NewMessage(types.RoleUser, text, nil))

	req := &backend.EnhancedChatRequest{
		Message:               text,
		SessionID:             string(snap.SessionID),
		ProjectID:             string(snap.ProjectID),
		Provider:              snap.Provider,
		Model:                 snap.Model,
		IncludeProjectContext: snap.IncludeProjectContext,
	}
	if snap.CurrentFileID != "" {
		id := string(snap.CurrentFileID)
		req.CurrentFileID = &id
	}

	resp, err := s.backend.ChatEnhanced(ctx, req)
	if err != nil {
		slog.Error("enhanced chat send failed", "session_id", string(snap.SessionID), "project_id", string(snap.ProjectID), "error", err)
		s.notify.Notify(notify.Alert{Action: "Send message", Message: "Failed to send message. Please try again."})
		return nil, fmt.Errorf("send message: %w", err)
	}

	msg := types.NewMessage(types.RoleAssistant, resp.Response, Extract(resp))
	s.log.Append(msg)
	return &msg, nil
}
