// Package backendtest provides an in-memory backend.Client double for tests.
package backendtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// Fake records every call and serves canned responses. Zero value is usable:
// chat calls echo the message, CRUD calls succeed against the in-memory file
// list. Set Err to make every call fail, or override individual funcs.
type Fake struct {
	mu sync.Mutex

	// Err, when set, is returned by every call.
	Err error

	// Canned chat responses.
	ChatResponse     *backend.ChatResponse
	EnhancedResponse *backend.EnhancedChatResponse
	ExecuteResult    *types.ExecutionResult

	// Seeded project/file records.
	Projects []types.Project
	Files    []types.ProjectFile

	// Recorded requests, in call order.
	ChatRequests     []*backend.ChatRequest
	EnhancedRequests []*backend.EnhancedChatRequest
	ApplyRequests    []*backend.ApplyRequest
	CreateFileReqs   []*backend.CreateFileRequest
	SavedFiles       []SavedFile
	DeletedFiles     []types.FileID
	DeletedProjects  []types.ProjectID
	ExecuteRequests  []*backend.ExecuteRequest
	ListFilesCalls   int
	ListProjectCalls int

	nextID int
}

// SavedFile is one recorded SaveFile call.
type SavedFile struct {
	ID      types.FileID
	Content string
}

var _ backend.Client = (*Fake)(nil)

func (f *Fake) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *Fake) Chat(_ context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ChatRequests = append(f.ChatRequests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ChatResponse != nil {
		return f.ChatResponse, nil
	}
	return &backend.ChatResponse{Response: "echo: " + req.Message, SessionID: req.SessionID}, nil
}

func (f *Fake) ChatEnhanced(_ context.Context, req *backend.EnhancedChatRequest) (*backend.EnhancedChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.EnhancedRequests = append(f.EnhancedRequests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.EnhancedResponse != nil {
		return f.EnhancedResponse, nil
	}
	return &backend.EnhancedChatResponse{Response: "echo: " + req.Message}, nil
}

func (f *Fake) ApplyOperation(_ context.Context, req *backend.ApplyRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ApplyRequests = append(f.ApplyRequests, req)
	return f.Err
}

func (f *Fake) ListProjects(_ context.Context) ([]types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListProjectCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return append([]types.Project(nil), f.Projects...), nil
}

func (f *Fake) CreateProject(_ context.Context, req *backend.CreateProjectRequest) (*types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	project := types.Project{
		ID:          types.ProjectID(f.newID("p")),
		Name:        req.Name,
		Description: req.Description,
	}
	f.Projects = append(f.Projects, project)
	return &project, nil
}

func (f *Fake) GetProject(_ context.Context, id types.ProjectID) (*types.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, p := range f.Projects {
		if p.ID == id {
			project := p
			return &project, nil
		}
	}
	return nil, fmt.Errorf("project not found: %s", id)
}

func (f *Fake) DeleteProject(_ context.Context, id types.ProjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedProjects = append(f.DeletedProjects, id)
	return f.Err
}

func (f *Fake) ListFiles(_ context.Context, projectID types.ProjectID) ([]types.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListFilesCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	var out []types.ProjectFile
	for _, file := range f.Files {
		if file.ProjectID == projectID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (f *Fake) GetFile(_ context.Context, id types.FileID) (*types.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	for _, file := range f.Files {
		if file.ID == id {
			out := file
			return &out, nil
		}
	}
	return nil, fmt.Errorf("file not found: %s", id)
}

func (f *Fake) CreateFile(_ context.Context, req *backend.CreateFileRequest) (*types.ProjectFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CreateFileReqs = append(f.CreateFileReqs, req)
	if f.Err != nil {
		return nil, f.Err
	}
	file := types.ProjectFile{
		ID:        types.FileID(f.newID("f")),
		ProjectID: types.ProjectID(req.ProjectID),
		Name:      req.Name,
		Path:      req.Path,
		Content:   req.Content,
		Language:  req.Language,
	}
	f.Files = append(f.Files, file)
	return &file, nil
}

func (f *Fake) SaveFile(_ context.Context, id types.FileID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SavedFiles = append(f.SavedFiles, SavedFile{ID: id, Content: content})
	if f.Err != nil {
		return f.Err
	}
	for i := range f.Files {
		if f.Files[i].ID == id {
			f.Files[i].Content = content
		}
	}
	return nil
}

func (f *Fake) DeleteFile(_ context.Context, id types.FileID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DeletedFiles = append(f.DeletedFiles, id)
	if f.Err != nil {
		return f.Err
	}
	for i, file := range f.Files {
		if file.ID == id {
			f.Files = append(f.Files[:i], f.Files[i+1:]...)
			break
		}
	}
	return nil
}

func (f *Fake) Execute(_ context.Context, req *backend.ExecuteRequest) (*types.ExecutionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ExecuteRequests = append(f.ExecuteRequests, req)
	if f.Err != nil {
		return nil, f.Err
	}
	if f.ExecuteResult != nil {
		return f.ExecuteResult, nil
	}
	return &types.ExecutionResult{Output: "", ExecutionTime: 0}, nil
}
