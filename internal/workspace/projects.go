package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// ErrEmptyProjectName is returned when a create is attempted without a name.
var ErrEmptyProjectName = errors.New("project name is empty")

// Projects caches the backend's project list.
type Projects struct {
	backend backend.Client

	mu       sync.Mutex
	projects []types.Project
}

func NewProjects(client backend.Client) *Projects {
	return &Projects{backend: client}
}

// Load fetches the project list. The backend returns most recently updated
// first; that order is preserved.
func (p *Projects) Load(ctx context.Context) error {
	projects, err := p.backend.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.projects = projects
	return nil
}

// List returns a snapshot of the cached projects.
func (p *Projects) List() []types.Project {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Project, len(p.projects))
	copy(out, p.projects)
	return out
}

// Create makes a new project and prepends it to the local list, matching the
// backend's most-recent-first ordering.
func (p *Projects) Create(ctx context.Context, name, description string) (*types.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProjectName
	}

	project, err := p.backend.CreateProject(ctx, &backend.CreateProjectRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.projects = append([]types.Project{*project}, p.projects...)
	return project, nil
}

// Delete removes a project from the backend and, on acknowledgement, from
// the local list.
func (p *Projects) Delete(ctx context.Context, id types.ProjectID) error {
	if err := p.backend.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i, project := range p.projects {
		if project.ID == id {
			p.projects = append(p.projects[:i], p.projects[i+1:]...)
			break
		}
	}
	return nil
}
