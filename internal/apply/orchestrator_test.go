package apply

import (
	"context"
	"errors"
	"testing"

	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
	"github.com/user/pocketide/pkg/backend"
	"github.com/user/pocketide/pkg/backend/backendtest"
)

var pythonBlock = types.CodeBlock{Language: "python", Code: "print(1)", CanApply: true}

func newOrchestrator(fake *backendtest.Fake, currentFile types.FileID, opts ...Option) (*Orchestrator, *workspace.Files) {
	sess := session.New("p1")
	if currentFile != "" {
		sess.SetCurrentFile(currentFile)
	}
	files := workspace.NewFiles(fake, "p1")
	o := New(fake, sess, files, notify.Discard{}, opts...)
	return o, files
}

func TestEditCurrentFileDirectly(t *testing.T) {
	fake := &backendtest.Fake{
		Files: []types.ProjectFile{
			{ID: "f1", ProjectID: "p1", Name: "main.py", Path: "/main.py", Content: "old", Language: "python"},
		},
	}
	var applied []TargetMode
	o, files := newOrchestrator(fake, "f1", WithOnApplied(func(m TargetMode) { applied = append(applied, m) }))
	if err := files.Load(context.Background()); err != nil {
		t.Fatal(err)
	}

	state, err := o.SelectBlock(context.Background(), pythonBlock)
	if err != nil {
		t.Fatal(err)
	}
	if state != StateApplied {
		t.Fatalf("expected Applied, got %s", state)
	}

	// Exactly one backend call, an edit against the current file.
	if len(fake.ApplyRequests) != 1 {
		t.Fatalf("expected 1 apply call, got %d", len(fake.ApplyRequests))
	}
	req := fake.ApplyRequests[0]
	if req.Operation != backend.OperationEdit || req.FileID != "f1" {
		t.Errorf("expected edit of f1, got %+v", req)
	}
	if req.Content != "print(1)" || req.Language != "python" {
		t.Errorf("block fields not carried: %+v", req)
	}

	// Cache reconciled with the applied content.
	file, ok := files.Selected()
	if !ok || file.Content != "print(1)" {
		t.Errorf("cache not reconciled: %+v (ok=%v)", file, ok)
	}
	if files.Edited() != "print(1)" {
		t.Errorf("editor working copy not resynchronized: %q", files.Edited())
	}

	if len(applied) != 1 || applied[0] != EditCurrentFile {
		t.Errorf("expected one edit-mode completion signal, got %v", applied)
	}

	if o.Acknowledge() != StateIdle {
		t.Error("expected Idle after acknowledging success")
	}
}

func TestCreateNewFileFlow(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "")

	state, err := o.SelectBlock(context.Background(), pythonBlock)
	if err != nil {
		t.Fatal(err)
	}
	if state != StateAwaitingTarget {
		t.Fatalf("expected AwaitingTarget, got %s", state)
	}
	if len(fake.ApplyRequests) != 0 {
		t.Fatal("no backend call may be issued before the file name is confirmed")
	}
	if o.PendingLanguage() != "python" {
		t.Errorf("expected pending language python, got %s", o.PendingLanguage())
	}

	state, err = o.ConfirmFileName(context.Background(), "util.py")
	if err != nil {
		t.Fatal(err)
	}
	if state != StateApplied {
		t.Fatalf("expected Applied, got %s", state)
	}

	if len(fake.ApplyRequests) != 1 {
		t.Fatalf("expected exactly 1 apply call, got %d", len(fake.ApplyRequests))
	}
	req := fake.ApplyRequests[0]
	if req.Operation != backend.OperationCreate {
		t.Errorf("expected create operation, got %s", req.Operation)
	}
	if req.FileName != "util.py" || req.FilePath != "/util.py" {
		t.Errorf("expected util.py at /util.py, got %q %q", req.FileName, req.FilePath)
	}
	if req.FileID != "" {
		t.Errorf("create must not carry a file_id, got %q", req.FileID)
	}
}

func TestConfirmEmptyFileName(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "")

	if _, err := o.SelectBlock(context.Background(), pythonBlock); err != nil {
		t.Fatal(err)
	}

	state, err := o.ConfirmFileName(context.Background(), "   ")
	if !errors.Is(err, ErrEmptyFileName) {
		t.Fatalf("expected ErrEmptyFileName, got %v", err)
	}
	if state != StateAwaitingTarget {
		t.Errorf("expected to stay in AwaitingTarget, got %s", state)
	}
	if len(fake.ApplyRequests) != 0 {
		t.Error("validation error must not reach the backend")
	}

	// A valid name afterwards still works.
	if state, err := o.ConfirmFileName(context.Background(), " util.py "); err != nil || state != StateApplied {
		t.Fatalf("expected Applied after trimmed name, got %s (%v)", state, err)
	}
	if fake.ApplyRequests[0].FileName != "util.py" {
		t.Errorf("expected trimmed name, got %q", fake.ApplyRequests[0].FileName)
	}
}

func TestRejectSelectionWhileBusy(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "")

	if _, err := o.SelectBlock(context.Background(), pythonBlock); err != nil {
		t.Fatal(err)
	}
	if _, err := o.SelectBlock(context.Background(), pythonBlock); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for overlapping selection, got %v", err)
	}
}

func TestRejectNonApplicableBlock(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "f1")

	block := types.CodeBlock{Language: "text", Code: "just an example", CanApply: false}
	if _, err := o.SelectBlock(context.Background(), block); !errors.Is(err, ErrNotApplicable) {
		t.Errorf("expected ErrNotApplicable, got %v", err)
	}
	if o.State() != StateIdle {
		t.Errorf("expected Idle after rejected block, got %s", o.State())
	}
}

func TestFailureDiscardsPending(t *testing.T) {
	fake := &backendtest.Fake{Err: errors.New("connection reset")}
	var alerts []notify.Alert
	sess := session.New("p1")
	sess.SetCurrentFile("f1")
	o := New(fake, sess, nil, notify.Func(func(a notify.Alert) { alerts = append(alerts, a) }))

	state, err := o.SelectBlock(context.Background(), pythonBlock)
	if err == nil {
		t.Fatal("expected error")
	}
	if state != StateFailed {
		t.Fatalf("expected Failed, got %s", state)
	}
	if len(alerts) != 1 || alerts[0].Action != "Apply code" {
		t.Errorf("expected one apply-failure alert, got %+v", alerts)
	}

	// Acknowledging returns to Idle with nothing preserved; the user must
	// reselect the block to retry.
	if o.Acknowledge() != StateIdle {
		t.Error("expected Idle after acknowledging failure")
	}
	if o.Err() != nil {
		t.Error("expected error cleared after acknowledgement")
	}

	fake.Err = nil
	if state, err := o.SelectBlock(context.Background(), pythonBlock); err != nil || state != StateApplied {
		t.Errorf("expected retry from Idle to succeed, got %s (%v)", state, err)
	}
}

func TestCancelFromAwaitingTarget(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "")

	if _, err := o.SelectBlock(context.Background(), pythonBlock); err != nil {
		t.Fatal(err)
	}
	if err := o.Cancel(); err != nil {
		t.Fatal(err)
	}
	if o.State() != StateIdle {
		t.Errorf("expected Idle after cancel, got %s", o.State())
	}
	if len(fake.ApplyRequests) != 0 {
		t.Error("cancel must not reach the backend")
	}

	if err := o.Cancel(); !errors.Is(err, ErrNoPendingTarget) {
		t.Errorf("expected ErrNoPendingTarget when idle, got %v", err)
	}
}

func TestConfirmOutsideAwaitingTarget(t *testing.T) {
	fake := &backendtest.Fake{}
	o, _ := newOrchestrator(fake, "")

	if _, err := o.ConfirmFileName(context.Background(), "util.py"); !errors.Is(err, ErrNoPendingTarget) {
		t.Errorf("expected ErrNoPendingTarget, got %v", err)
	}
}
