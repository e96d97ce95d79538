package types

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CodeBlock is a snippet carried by an assistant reply. CanApply mirrors the
// backend's judgment on whether the block is directly applicable to the
// project; the client never second-guesses it.
type CodeBlock struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	CanApply bool   `json:"can_apply"`
}

// Message is one turn in a conversation. Once created it never mutates.
type Message struct {
	ID         MessageID   `json:"id"`
	Role       string      `json:"role"`
	Content    string      `json:"content"`
	CodeBlocks []CodeBlock `json:"code_blocks,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role, content string, blocks []CodeBlock) Message {
	return Message{
		ID:         NewMessageID(),
		Role:       role,
		Content:    content,
		CodeBlocks: blocks,
		Timestamp:  time.Now(),
	}
}

type Project struct {
	ID          ProjectID `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProjectFile is the local mirror of a backend file record. Content may be
// stale relative to the backend; every mutation goes through an explicit
// save call and the cache is updated only after acknowledgement.
type ProjectFile struct {
	ID        FileID    `json:"_id"`
	ProjectID ProjectID `json:"project_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExecutionResult is the outcome of remote code execution. Output and Error
// may both be set; that is a completed run, not a failure.
type ExecutionResult struct {
	Output        string  `json:"output"`
	Error         string  `json:"error"`
	ExecutionTime float64 `json:"execution_time"`
}
