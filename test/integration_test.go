//go:build integration

package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/user/pocketide/internal/apply"
	"github.com/user/pocketide/internal/chat"
	"github.com/user/pocketide/internal/notify"
	"github.com/user/pocketide/internal/session"
	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/internal/workspace"
	"github.com/user/pocketide/pkg/backend"
	"github.com/user/pocketide/pkg/backend/rest"
)

// fakeBackend is an httptest handler covering the endpoints the chat-and-apply
// flow touches.
type fakeBackend struct {
	mu            sync.Mutex
	applyRequests []backend.ApplyRequest
	saved         map[string]string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/files/project/p1", func(w http.ResponseWriter, r *http.Request) {
		files := []types.ProjectFile{
			{ID: "f1", ProjectID: "p1", Name: "main.py", Path: "/main.py", Content: "print('old')", Language: "python"},
			{ID: "f2", ProjectID: "p1", Name: "util.py", Path: "/util.py", Content: "", Language: "python"},
		}
		json.NewEncoder(w).Encode(files)
	})

	mux.HandleFunc("POST /api/chat/enhanced", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(backend.EnhancedChatResponse{
			Response: "Here is the fix:",
			CodeBlocks: []types.CodeBlock{
				{Language: "python", Code: "print('new')", CanApply: true},
			},
		})
	})

	mux.HandleFunc("POST /api/ai/apply-operation", func(w http.ResponseWriter, r *http.Request) {
		var req backend.ApplyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.applyRequests = append(f.applyRequests, req)
		if req.Operation == backend.OperationEdit {
			f.saved[req.FileID] = req.Content
		}
		f.mu.Unlock()
		w.Write([]byte(`{"success": true}`))
	})

	return mux
}

func TestChatAndApplyEndToEnd(t *testing.T) {
	fake := &fakeBackend{saved: map[string]string{}}
	server := httptest.NewServer(fake.handler())
	defer server.Close()

	client := rest.New(&backend.Config{BaseURL: server.URL})
	ctx := context.Background()

	sess := session.New("p1")
	files := workspace.NewFiles(client, "p1")
	if err := files.Load(ctx); err != nil {
		t.Fatal(err)
	}
	selected, ok := files.Selected()
	if !ok || selected.ID != "f1" {
		t.Fatalf("expected first file selected, got %+v", selected)
	}
	sess.SetCurrentFile(selected.ID)

	svc := chat.NewService(client, sess, chat.NewLog(chat.GreetingEnhanced), notify.Discard{})
	reply, err := svc.SendEnhanced(ctx, "fix the print")
	if err != nil {
		t.Fatal(err)
	}
	if len(reply.CodeBlocks) != 1 || !reply.CodeBlocks[0].CanApply {
		t.Fatalf("expected one applicable block, got %+v", reply.CodeBlocks)
	}

	var appliedMode apply.TargetMode
	orch := apply.New(client, sess, files, notify.Discard{}, apply.WithOnApplied(func(mode apply.TargetMode) {
		appliedMode = mode
	}))

	state, err := orch.SelectBlock(ctx, reply.CodeBlocks[0])
	if err != nil {
		t.Fatal(err)
	}
	if state != apply.StateApplied {
		t.Fatalf("expected applied, got %s", state)
	}
	if appliedMode != apply.EditCurrentFile {
		t.Errorf("expected edit mode callback, got %v", appliedMode)
	}
	orch.Acknowledge()

	// Backend saw exactly one apply, targeting the open file.
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.applyRequests) != 1 {
		t.Fatalf("expected 1 apply request, got %d", len(fake.applyRequests))
	}
	req := fake.applyRequests[0]
	if req.FileID != "f1" || req.Operation != backend.OperationEdit || req.Content != "print('new')" {
		t.Errorf("unexpected apply request: %+v", req)
	}
	if req.FileName != "" || req.FilePath != "" {
		t.Errorf("edit must not carry a file name or path: %+v", req)
	}

	// Cache reconciled with the applied content.
	current, _ := files.Selected()
	if current.Content != "print('new')" {
		t.Errorf("cache not reconciled: %q", current.Content)
	}

	// Chat log holds greeting, user turn, assistant turn in order.
	msgs := svc.Log().Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[1].Role != types.RoleUser || msgs[2].Role != types.RoleAssistant {
		t.Errorf("unexpected log order: %s, %s", msgs[1].Role, msgs[2].Role)
	}
}
