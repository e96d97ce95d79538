// Package apply decides what happens when the user applies an AI code block:
// an in-place edit of the currently open file, or a new file solicited by
// name. One pending apply exists at a time; illegal overlap is rejected, not
// raced.
package apply

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
	"github.com/user/pocketide/pkg/backend"
)

// State is the orchestrator's position in the apply lifecycle.
type State int

const (
	// StateIdle means no apply is pending; a block may be selected.
	StateIdle State = iota
	// StateAwaitingTarget means a block is pending and the user must supply
	// a file name for the new file.
	StateAwaitingTarget
	// StateApplying means the single backend call is in flight.
	StateApplying
	// StateApplied is the terminal success state, cleared by Acknowledge.
	StateApplied
	// StateFailed is the terminal failure state, cleared by Acknowledge. The
	// pending code is discarded; retry means reselecting the block.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTarget:
		return "awaiting-target"
	case StateApplying:
		return "applying"
	case StateApplied:
		return "applied"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TargetMode says where the pending code goes.
type TargetMode int

const (
	EditCurrentFile TargetMode = iota
	CreateNewFile
)

func (m TargetMode) String() string {
	if m == EditCurrentFile {
		return "edit-current-file"
	}
	return "create-new-file"
}

var (
	// ErrBusy rejects a new selection while an apply is pending or in flight.
	ErrBusy = errors.New("an apply is already in progress")
	// ErrNotApplicable rejects blocks the backend did not mark applicable.
	ErrNotApplicable = errors.New("code block is not applicable")
	// ErrEmptyFileName rejects a blank file name; no backend call is issued
	// and the orchestrator stays in AwaitingTarget.
	ErrEmptyFileName = errors.New("file name is empty")
	// ErrNoPendingTarget means ConfirmFileName or Cancel was called outside
	// of AwaitingTarget.
	ErrNoPendingTarget = errors.New("no apply awaiting a file name")
)

// pendingApply carries the selected block through the state machine. It is
// created on selection and destroyed on acknowledgement or cancellation,
// never persisted.
type pendingApply struct {
	code     string
	language string
	mode     TargetMode
	fileID   types.FileID
	fileName string
}

// Orchestrator is the apply state machine. Callers drive it from a single
// interaction loop; methods that reach the backend take a context and block
// until the one call resolves.
type Orchestrator struct {
	backend   backend.Client
	session   *session.Session
	files     *workspace.Files
	notify    notify.Notifier
	onApplied func(mode TargetMode)

	mu      sync.Mutex
	state   State
	pending *pendingApply
	lastErr error
}

// Option configures optional behavior on an Orchestrator.
type Option func(*Orchestrator)

// WithOnApplied sets a callback invoked after a successful apply; the
// presentation layer uses it to navigate back to the editor.
func WithOnApplied(fn func(mode TargetMode)) Option {
	return func(o *Orchestrator) { o.onApplied = fn }
}

// New creates an orchestrator for the given session. files may be nil when
// no local cache is attached; reconciliation is then skipped.
func New(client backend.Client, sess *session.Session, files *workspace.Files, notifier notify.Notifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend: client,
		session: sess,
		files:   files,
		notify:  notifier,
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current machine state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Err returns the failure that put the machine into StateFailed, if any.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastErr
}

// PendingLanguage returns the language of the pending block, for display in
// the file-name prompt.
func (o *Orchestrator) PendingLanguage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.pending == nil {
		return ""
	}
	return o.pending.language
}

// SelectBlock starts an apply for the given block. With a file open in the
// editor, the target resolves immediately to an in-place edit and the single
// backend call is issued; otherwise the machine waits for a file name.
func (o *Orchestrator) SelectBlock(ctx context.Context, block types.CodeBlock) (State, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		state := o.state
		o.mu.Unlock()
		return state, ErrBusy
	}
	if !block.CanApply {
		o.mu.Unlock()
		return StateIdle, ErrNotApplicable
	}

	p := &pendingApply{code: block.Code, language: block.Language}
	if fileID, ok := o.session.CurrentFile(); ok {
		p.mode = EditCurrentFile
		p.fileID = fileID
		o.pending = p
		o.state = StateApplying
		o.mu.Unlock()
		return o.finish(p, o.applyEdit(ctx, p))
	}

	p.mode = CreateNewFile
	o.pending = p
	o.state = StateAwaitingTarget
	o.mu.Unlock()
	return StateAwaitingTarget, nil
}

// ConfirmFileName supplies the name for the new file and issues the create
// call. A blank name is a validation error: the machine stays in
// AwaitingTarget and the backend is not contacted.
func (o *Orchestrator) ConfirmFileName(ctx context.Context, name string) (State, error) {
	o.mu.Lock()
	if o.state != StateAwaitingTarget {
		state := o.state
		o.mu.Unlock()
		return state, ErrNoPendingTarget
	}

	name = strings.TrimSpace(name)
	if name == "" {
		o.mu.Unlock()
		return StateAwaitingTarget, ErrEmptyFileName
	}

	o.pending.fileName = name
	o.state = StateApplying
	p := o.pending
	o.mu.Unlock()
	return o.finish(p, o.applyCreate(ctx, p))
}

// Cancel abandons a pending apply from AwaitingTarget, discarding the block.
func (o *Orchestrator) Cancel() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateAwaitingTarget {
		return ErrNoPendingTarget
	}
	o.pending = nil
	o.state = StateIdle
	return nil
}

// Acknowledge clears a terminal state and returns the machine to Idle. It is
// a no-op in any other state.
func (o *Orchestrator) Acknowledge() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateApplied || o.state == StateFailed {
		o.state = StateIdle
		o.pending = nil
		o.lastErr = nil
	}
	return o.state
}

// finish records the outcome of the single backend call. The pending apply is
// discarded either way; a failed apply must be reselected to retry.
func (o *Orchestrator) finish(p *pendingApply, err error) (State, error) {
	o.mu.Lock()
	if err != nil {
		o.state = StateFailed
		o.lastErr = err
		o.pending = nil
		o.mu.Unlock()
		return StateFailed, err
	}
	o.state = StateApplied
	o.pending = nil
	o.mu.Unlock()

	if o.onApplied != nil {
		o.onApplied(p.mode)
	}
	return StateApplied, nil
}

func (o *Orchestrator) applyEdit(ctx context.Context, p *pendingApply) error {
	err := o.backend.ApplyOperation(ctx, &backend.ApplyRequest{
		ProjectID: string(o.session.ProjectID()),
		Operation: backend.OperationEdit,
		FileID:    string(p.fileID),
		Content:   p.code,
		Language:  p.language,
	})
	if err != nil {
		slog.Error("apply edit failed", "file_id", string(p.fileID), "error", err)
		o.notify.Notify(notify.Alert{Action: "Apply code", Message: "Failed to apply code"})
		return fmt.Errorf("apply edit: %w", err)
	}

	if o.files != nil {
		o.files.ApplyEdit(p.fileID, p.code, p.language)
	}
	return nil
}

func (o *Orchestrator) applyCreate(ctx context.Context, p *pendingApply) error {
	err := o.backend.ApplyOperation(ctx, &backend.ApplyRequest{
		ProjectID: string(o.session.ProjectID()),
		Operation: backend.OperationCreate,
		FileName:  p.fileName,
		FilePath:  "/" + p.fileName,
		Content:   p.code,
		Language:  p.language,
	})
	if err != nil {
		slog.Error("apply create failed", "file_name", p.fileName, "error", err)
		o.notify.Notify(notify.Alert{Action: "Create file", Message: "Failed to create file"})
		return fmt.Errorf("apply create: %w", err)
	}
	return nil
}
