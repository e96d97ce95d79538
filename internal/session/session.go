// Package session holds the client-side conversation context: one session per
// open chat screen, scoped to a project, carrying the provider/model selection.
package session

import (
	"fmt"
	"sync"

	"github.com/user/pocketide/internal/catalog"
	"github.com/user/pocketide/internal/types"
)

// Session identifies a conversation. The session ID and project scope are
// fixed at creation; a new project means a new session. Provider, model, the
// current file, and the context toggle may change between messages and take
// effect on the next outgoing request only.
type Session struct {
	id        types.SessionID
	projectID types.ProjectID

	mu                    sync.RWMutex
	currentFileID         types.FileID
	provider              string
	model                 string
	includeProjectContext bool
}

// New creates a session scoped to the given project with the catalog's
// default provider and model. An empty projectID means a basic chat session
// with no project context.
func New(projectID types.ProjectID) *Session {
	provider, model := catalog.Default()
	return &Session{
		id:                    types.NewSessionID(),
		projectID:             projectID,
		provider:              provider,
		model:                 model,
		includeProjectContext: true,
	}
}

func (s *Session) ID() types.SessionID { return s.id }
func (s *Session) ProjectID() types.ProjectID { return s.projectID }

// CurrentFile returns the file currently open in the editor, if any.
func (s *Session) CurrentFile() (types.FileID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentFileID, s.currentFileID != ""
}

func (s *Session) SetCurrentFile(id types.FileID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFileID = id
}

func (s *Session) ClearCurrentFile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentFileID = ""
}

func (s *Session) Provider() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetProvider switches to another catalog provider and resets the model to
// that provider's first entry. This is the default-selection rule, not an
// error path.
func (s *Session) SetProvider(id string) error {
	model, ok := catalog.DefaultModel(id)
	if !ok {
		return fmt.Errorf("unknown provider: %s", id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = id
	s.model = model
	return nil
}

// SetModel selects a model from the current provider's catalog.
func (s *Session) SetModel(model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !catalog.ValidModel(s.provider, model) {
		return fmt.Errorf("model %s not in catalog for provider %s", model, s.provider)
	}
	s.model = model
	return nil
}

func (s *Session) IncludeProjectContext() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.includeProjectContext
}

// SetIncludeProjectContext flips the context flag. No network effect until
// the next send.
func (s *Session) SetIncludeProjectContext(include bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.includeProjectContext = include
}

// Snapshot is an immutable copy of the mutable session fields, taken once per
// outgoing request so a send in flight is unaffected by later changes.
type Snapshot struct {
	SessionID             types.SessionID
	ProjectID             types.ProjectID
	CurrentFileID         types.FileID
	Provider              string
	Model                 string
	IncludeProjectContext bool
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		SessionID:             s.id,
		ProjectID:             s.projectID,
		CurrentFileID:         s.currentFileID,
		Provider:              s.provider,
		Model:                 s.model,
		IncludeProjectContext: s.includeProjectContext,
	}
}
