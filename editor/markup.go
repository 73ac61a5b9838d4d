package editor

import (
	"strings"
	"sync"
)

// historyDepth bounds the undo stack
const historyDepth = 100

// MarkupSurface is an in-memory Surface implementation. It stands in for a
// browser editor behind the same interface: it holds the markup blob, fires
// change callbacks on user edits, and keeps a bounded undo/redo history.
type MarkupSurface struct {
	mu        sync.Mutex
	content   string
	undo      []string
	redo      []string
	listeners []func()
}

// NewMarkupSurface creates an empty surface
func NewMarkupSurface() *MarkupSurface {
	return &MarkupSurface{}
}

// GetContent returns the full serialized markup
func (s *MarkupSurface) GetContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// SetContent atomically replaces the full markup and notifies listeners
func (s *MarkupSurface) SetContent(content string) {
	s.mu.Lock()
	s.pushUndo()
	s.content = content
	s.mu.Unlock()
	s.notify()
}

// IsEmpty reports whether the document has no content
func (s *MarkupSurface) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.content) == ""
}

// Clear removes all content and notifies listeners
func (s *MarkupSurface) Clear() {
	s.mu.Lock()
	s.pushUndo()
	s.content = ""
	s.mu.Unlock()
	s.notify()
}

// OnChange registers a change callback
func (s *MarkupSurface) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Undo restores the previous content, if any
func (s *MarkupSurface) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	s.redo = append(s.redo, s.content)
	s.content = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.mu.Unlock()
	s.notify()
	return true
}

// Redo reapplies the last undone change, if any
func (s *MarkupSurface) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	s.undo = append(s.undo, s.content)
	s.content = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.mu.Unlock()
	s.notify()
	return true
}

// pushUndo records the current content on the undo stack; caller holds mu
func (s *MarkupSurface) pushUndo() {
	s.undo = append(s.undo, s.content)
	if len(s.undo) > historyDepth {
		s.undo = s.undo[len(s.undo)-historyDepth:]
	}
	s.redo = nil
}

// notify fires registered change callbacks outside the lock
func (s *MarkupSurface) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
