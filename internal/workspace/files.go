// Package workspace mirrors the backend's project and file records in memory.
// The mirror is advisory: every mutation is write-through, issuing a backend
// call and updating local state only after a success response. Nothing here
// survives process exit.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/user/pocketide/internal/types"
	"github.com/user/pocketide/pkg/backend"
)

// ErrEmptyFileName is returned when a create is attempted without a name.
var ErrEmptyFileName = errors.New("file name is empty")

// Files is the per-project file cache plus the editor's selection state.
type Files struct {
	backend   backend.Client
	projectID types.ProjectID

	mu       sync.Mutex
	files    []types.ProjectFile
	selected types.FileID
	edited   string
}

// NewFiles creates an empty cache for the given project. Call Load to
// populate it.
func NewFiles(client backend.Client, projectID types.ProjectID) *Files {
	return &Files{backend: client, projectID: projectID}
}

func (f *Files) ProjectID() types.ProjectID { return f.projectID }

// Load fetches the project's files from the backend. When the cache had no
// selection and files exist, the first file becomes selected.
func (f *Files) Load(ctx context.Context) error {
	files, err := f.backend.ListFiles(ctx, f.projectID)
	if err != nil {
		return fmt.Errorf("load files: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = files
	if f.selected == "" && len(files) > 0 {
		f.selected = files[0].ID
		f.edited = files[0].Content
	} else if f.selected != "" {
		// Keep the selection if it still exists, otherwise fall back.
		if file, ok := f.lookup(f.selected); ok {
			f.edited = file.Content
		} else if len(files) > 0 {
			f.selected = files[0].ID
			f.edited = files[0].Content
		} else {
			f.selected = ""
			f.edited = ""
		}
	}
	return nil
}

// lookup finds a file by id. Caller must hold the lock.
func (f *Files) lookup(id types.FileID) (types.ProjectFile, bool) {
	for _, file := range f.files {
		if file.ID == id {
			return file, true
		}
	}
	return types.ProjectFile{}, false
}

// List returns a snapshot of the cached files in backend order.
func (f *Files) List() []types.ProjectFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.ProjectFile, len(f.files))
	copy(out, f.files)
	return out
}

// Selected returns the currently selected file, if any.
func (f *Files) Selected() (types.ProjectFile, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.selected == "" {
		return types.ProjectFile{}, false
	}
	return f.lookup(f.selected)
}

// Select opens the given file in the editor, resetting edited content to the
// cached file content.
func (f *Files) Select(id types.FileID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.lookup(id)
	if !ok {
		return fmt.Errorf("file not in cache: %s", id)
	}
	f.selected = file.ID
	f.edited = file.Content
	return nil
}

// Edited returns the editor's working copy of the selected file.
func (f *Files) Edited() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edited
}

// SetEdited updates the working copy without touching the backend.
func (f *Files) SetEdited(content string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edited = content
}

// Create makes a new empty file named after the trimmed name, rooted at
// "/<name>", and selects it. An empty name is rejected before any network
// call.
func (f *Files) Create(ctx context.Context, name, language string) (*types.ProjectFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyFileName
	}

	file, err := f.backend.CreateFile(ctx, &backend.CreateFileRequest{
		ProjectID: string(f.projectID),
		Name:      name,
		Path:      "/" + name,
		Content:   "",
		Language:  language,
	})
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, *file)
	f.selected = file.ID
	f.edited = file.Content
	return file, nil
}

// Save writes content to the backend and, only on acknowledgement, updates
// the cache entry. Identical content is still sent; no de-duplication.
func (f *Files) Save(ctx context.Context, id types.FileID, content string) error {
	if err := f.backend.SaveFile(ctx, id, content); err != nil {
		return fmt.Errorf("save file: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.files {
		if f.files[i].ID == id {
			f.files[i].Content = content
		}
	}
	if f.selected == id {
		f.edited = content
	}
	return nil
}

// SaveSelected writes the editor's working copy to the selected file.
func (f *Files) SaveSelected(ctx context.Context) error {
	f.mu.Lock()
	id := f.selected
	content := f.edited
	f.mu.Unlock()
	if id == "" {
		return errors.New("no file selected")
	}
	return f.Save(ctx, id, content)
}

// Delete removes a file. When the deleted file was selected, selection falls
// back to the first remaining file, or to none if the project is empty.
func (f *Files) Delete(ctx context.Context, id types.FileID) error {
	if err := f.backend.DeleteFile(ctx, id); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, file := range f.files {
		if file.ID == id {
			f.files = append(f.files[:i], f.files[i+1:]...)
			break
		}
	}
	if f.selected == id {
		if len(f.files) > 0 {
			f.selected = f.files[0].ID
			f.edited = f.files[0].Content
		} else {
			f.selected = ""
			f.edited = ""
		}
	}
	return nil
}

// ApplyEdit reconciles an acknowledged apply-operation into the cache: the
// entry for id takes the new content and language, and if that file is open
// in the editor the working copy is resynchronized too.
func (f *Files) ApplyEdit(id types.FileID, content, language string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := false
	for i := range f.files {
		if f.files[i].ID == id {
			f.files[i].Content = content
			f.files[i].Language = language
			found = true
		}
	}
	if !found {
		slog.Warn("applied edit to file missing from cache", "file_id", string(id))
	}
	if f.selected == id {
		f.edited = content
	}
}
