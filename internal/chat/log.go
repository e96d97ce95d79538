package chat

import (
	"sync"

	"github.com/user/pocketide/internal/types"
)

// Greeting texts shown when a conversation opens or is cleared.
const (
	GreetingEnhanced = "Hello! I'm your AI coding assistant with full project context. I can:\n\n" +
		"- Generate complete code files\n" +
		"- Create new files in your project\n" +
		"- Refactor existing code\n" +
		"- Explain code concepts\n" +
		"- Debug issues\n\n" +
		"What would you like help with?"
	GreetingBasic       = "Hello! I'm your AI coding assistant. How can I help you today?"
	GreetingWithContext = "I can help you with the code you're working on. What would you like to know?"
	GreetingCleared     = "Chat cleared. How can I help you?"
)

// Log is the append-only record of a conversation. Messages are never edited
// or removed individually; Clear replaces the whole log with a single fresh
// assistant greeting.
type Log struct {
	mu       sync.RWMutex
	messages []types.Message
}

// NewLog creates a log seeded with an assistant greeting.
func NewLog(greeting string) *Log {
	l := &Log{}
	l.messages = append(l.messages, types.NewMessage(types.RoleAssistant, greeting, nil))
	return l
}

// Append adds a message. Order of appends is the render order.
func (l *Log) Append(msg types.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

// Clear replaces the log with a single assistant message.
func (l *Log) Clear(greeting string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = []types.Message{types.NewMessage(types.RoleAssistant, greeting, nil)}
}

// Messages returns a snapshot of the log in append order.
func (l *Log) Messages() []types.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
