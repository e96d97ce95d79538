package backend

import (
	"context"
	"time"

	"github.com/user/pocketide/internal/types"
)

// Client is the interface to the remote IDE backend. The backend owns all
// persistence and inference; the client issues one request per operation and
// treats its own caches as advisory until a call is acknowledged.
type Client interface {
	// Chat sends a basic chat message, optionally with a code context string.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// ChatEnhanced sends a project-scoped chat message and returns the reply
	// together with any applicable code blocks.
	ChatEnhanced(ctx context.Context, req *EnhancedChatRequest) (*EnhancedChatResponse, error)

	// ApplyOperation writes AI-generated code into project storage, either
	// editing an existing file or creating a new one.
	ApplyOperation(ctx context.Context, req *ApplyRequest) error

	ListProjects(ctx context.Context) ([]types.Project, error)
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*types.Project, error)
	GetProject(ctx context.Context, id types.ProjectID) (*types.Project, error)
	DeleteProject(ctx context.Context, id types.ProjectID) error

	ListFiles(ctx context.Context, projectID types.ProjectID) ([]types.ProjectFile, error)
	GetFile(ctx context.Context, id types.FileID) (*types.ProjectFile, error)
	CreateFile(ctx context.Context, req *CreateFileRequest) (*types.ProjectFile, error)
	SaveFile(ctx context.Context, id types.FileID, content string) error
	DeleteFile(ctx context.Context, id types.FileID) error

	// Execute runs code remotely. A result carrying both output and error is
	// a completed run; only transport failures return a non-nil error.
	Execute(ctx context.Context, req *ExecuteRequest) (*types.ExecutionResult, error)
}

// Config holds common configuration for backend clients.
type Config struct {
	BaseURL string
	Timeout time.Duration
}
