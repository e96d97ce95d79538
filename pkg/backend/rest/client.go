// Package rest implements the backend.Client interface over plain HTTP
// request/response exchanges against a configured base URL.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

const defaultTimeout = 60 * time.Second

// Client talks to the remote IDE backend over HTTP.
type Client struct {
	config     *backend.Config
	httpClient *http.Client
}

// New creates a REST client with the given configuration.
func New(config *backend.Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ backend.Client = (*Client)(nil)

// do issues one request and decodes the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// Chat sends a basic chat message.
func (c *Client) Chat(ctx context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error) {
	var resp backend.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatEnhanced sends a project-scoped chat message.
func (c *Client) ChatEnhanced(ctx context.Context, req *backend.EnhancedChatRequest) (*backend.EnhancedChatResponse, error) {
	var resp backend.EnhancedChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat/enhanced", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ApplyOperation writes AI-generated code into project storage. Only success
// is consumed from the response.
func (c *Client) ApplyOperation(ctx context.Context, req *backend.ApplyRequest) error {
	return c.do(ctx, http.MethodPost, "/api/ai/apply-operation", req, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]types.Project, error) {
	var projects []types.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, req *backend.CreateProjectRequest) (*types.Project, error) {
	var project types.Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) GetProject(ctx context.Context, id types.ProjectID) (*types.Project, error) {
	var project types.Project
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+string(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (c *Client) DeleteProject(ctx context.Context, id types.ProjectID) error {
	return c.do(ctx, http.MethodDelete, "/api/projects/"+string(id), nil, nil)
}

func (c *Client) ListFiles(ctx context.Context, projectID types.ProjectID) ([]types.ProjectFile, error) {
	var files []types.ProjectFile
	if err := c.do(ctx, http.MethodGet, "/api/files/project/"+string(projectID), nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (c *Client) GetFile(ctx context.Context, id types.FileID) (*types.ProjectFile, error) {
	var file types.ProjectFile
	if err := c.do(ctx, http.MethodGet, "/api/files/"+string(id), nil, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

func (c *Client) CreateFile(ctx context.Context, req *backend.CreateFileRequest) (*types.ProjectFile, error) {
	var file types.ProjectFile
	if err := c.do(ctx, http.MethodPost, "/api/files", req, &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// SaveFile replaces a file's content. The caller's cache must not assume the
// write happened until this returns nil.
func (c *Client) SaveFile(ctx context.Context, id types.FileID, content string) error {
	body := map[string]string{"content": content}
	return c.do(ctx, http.MethodPut, "/api/files/"+string(id), body, nil)
}

func (c *Client) DeleteFile(ctx context.Context, id types.FileID) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+string(id), nil, nil)
}

func (c *Client) Execute(ctx context.Context, req *backend.ExecuteRequest) (*types.ExecutionResult, error) {
	var result types.ExecutionResult
	if err := c.do(ctx, http.MethodPost, "/api/code/execute", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
