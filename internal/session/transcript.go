// Package session keeps the in-memory conversation transcript for one
// interactive session. Nothing is persisted across processes.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message. Turns are never edited or removed.
type Turn struct {
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Transcript is an append-only ordered log of conversation turns.
type Transcript struct {
	id    string
	mu    sync.RWMutex
	turns []Turn
}

func NewTranscript() *Transcript {
	return &Transcript{id: uuid.NewString()}
}

func (t *Transcript) ID() string {
	return t.id
}

func (t *Transcript) Append(role Role, content string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

// All returns the turns in insertion order.
func (t *Transcript) All() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Clear drops all turns. Used when the interactive session ends.
func (t *Transcript) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = nil
}
