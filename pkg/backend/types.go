package backend

import "github.com/user/pocketide/internal/types"

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	Message   string  `json:"message"`
	SessionID string  `json:"session_id"`
	Provider  string  `json:"provider"`
	Model     string  `json:"model"`
	Context   *string `json:"context"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// EnhancedChatRequest is the body for POST /api/chat/enhanced. CurrentFileID
// is null when no file is open in the editor.
type EnhancedChatRequest struct {
	Message               string  `json:"message"`
	SessionID             string  `json:"session_id"`
	ProjectID             string  `json:"project_id"`
	CurrentFileID         *string `json:"current_file_id"`
	Provider              string  `json:"provider"`
	Model                 string  `json:"model"`
	IncludeProjectContext bool    `json:"include_project_context"`
}

// EnhancedChatResponse is the body returned by POST /api/chat/enhanced.
// CodeBlocks may be absent; that is a plain answer, not an error.
type EnhancedChatResponse struct {
	Response   string            `json:"response"`
	CodeBlocks []types.CodeBlock `json:"code_blocks"`
}

// Operation selects what an apply request does with the generated code.
type Operation string

const (
	OperationEdit   Operation = "edit"
	OperationCreate Operation = "create"
)

// ApplyRequest is the body for POST /api/ai/apply-operation. FileID is set
// only for edit; FileName and FilePath are empty for edit and set for create.
type ApplyRequest struct {
	ProjectID string    `json:"project_id"`
	Operation Operation `json:"operation"`
	FileID    string    `json:"file_id,omitempty"`
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
}

// CreateFileRequest is the body for POST /api/files.
type CreateFileRequest struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Path      string `json:"path"`
	Content   string `json:"content"`
	Language  string `json:"language"`
}

// CreateProjectRequest is the body for POST /api/projects.
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ExecuteRequest is the body for POST /api/code/execute.
type ExecuteRequest struct {
	Code     string   `json:"code"`
	Language string   `json:"language"`
	Inputs   []string `json:"inputs"`
}
