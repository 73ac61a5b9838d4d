package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/storage"
)

// DefaultDebounce is the quiet period after the last change before a write
const DefaultDebounce = 2 * time.Second

// UnsavedMarker is the last-saved value shown while changes are pending
const UnsavedMarker = "Kaydedilmedi..."

var (
	ErrStoreNotSet       = errors.New("store not set")
	ErrSurfaceNotSet     = errors.New("surface not set")
	ErrResetNotConfirmed = errors.New("reset requires confirmation")
)

// SyncService owns the canonical PetitionDraft and keeps the store
// eventually consistent with it. Every qualifying change cancels the pending
// debounce timer and schedules a new one, so rapid edits coalesce into a
// single write and at most one write is ever pending.
type SyncService struct {
	store    storage.Store
	surface  editor.Surface
	debounce time.Duration

	mu        sync.Mutex
	draft     models.PetitionDraft
	timer     *time.Timer
	lastSaved string
	closed    bool
	restoring bool
	gen       uint64
}

// SyncServiceOption is a functional option for SyncService
type SyncServiceOption func(*SyncService)

// WithStore sets the persistence store
func WithStore(store storage.Store) SyncServiceOption {
	return func(s *SyncService) {
		s.store = store
	}
}

// WithSurface sets the document surface
func WithSurface(surface editor.Surface) SyncServiceOption {
	return func(s *SyncService) {
		s.surface = surface
	}
}

// WithDebounce overrides the debounce window
func WithDebounce(d time.Duration) SyncServiceOption {
	return func(s *SyncService) {
		s.debounce = d
	}
}

// NewSyncService creates a new sync service holding the default draft
func NewSyncService(opts ...SyncServiceOption) *SyncService {
	s := &SyncService{
		debounce: DefaultDebounce,
		draft:    models.DefaultDraft(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.surface != nil {
		s.surface.OnChange(s.noteSurfaceChange)
	}
	return s
}

// Load restores persisted state. A draft value that fails to parse is
// treated the same as an absent one: the default template stays in place
// and the session continues. Persisted content is pushed into the surface
// only when the surface is still empty.
func (s *SyncService) Load(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreNotSet
	}

	value, ok, err := s.store.Get(ctx, storage.DraftKey)
	if err != nil {
		log.Printf("Warning: failed to read persisted draft: %v", err)
	} else if ok {
		var draft models.PetitionDraft
		if err := json.Unmarshal([]byte(value), &draft); err != nil {
			log.Printf("Warning: persisted draft did not parse, using default template: %v", err)
		} else {
			draft.Normalize()
			s.mu.Lock()
			s.draft = draft
			s.mu.Unlock()
		}
	}

	if s.surface != nil {
		content, ok, err := s.store.Get(ctx, storage.ContentKey)
		if err != nil {
			log.Printf("Warning: failed to read persisted content: %v", err)
		} else if ok && s.surface.IsEmpty() {
			// Pushing restored content fires the change callback; restoring
			// is not an edit, so no autosave may be scheduled for it
			s.mu.Lock()
			s.restoring = true
			s.mu.Unlock()
			s.surface.SetContent(content)
			s.mu.Lock()
			s.restoring = false
			s.mu.Unlock()
		}
	}

	return nil
}

// Draft returns a snapshot of the current draft
func (s *SyncService) Draft() models.PetitionDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// ReplaceDraft swaps in a full draft value, as sent by a client PUT
func (s *SyncService) ReplaceDraft(draft models.PetitionDraft) {
	draft.Normalize()
	s.apply(draft)
}

// UpdateField sets a named scalar field
func (s *SyncService) UpdateField(key, value string) error {
	next, err := models.UpdateField(s.Draft(), key, value)
	if err != nil {
		return err
	}
	s.apply(next)
	return nil
}

// UpdateListItem merge-patches the list item at idx
func (s *SyncService) UpdateListItem(list string, idx int, patch json.RawMessage) error {
	next, err := models.UpdateListItem(s.Draft(), list, idx, patch)
	if err != nil {
		return err
	}
	s.apply(next)
	return nil
}

// AppendListItem appends an item to the named list
func (s *SyncService) AppendListItem(list string, item json.RawMessage) error {
	next, err := models.AppendListItem(s.Draft(), list, item)
	if err != nil {
		return err
	}
	s.apply(next)
	return nil
}

// RemoveListItem removes the item at idx from the named list
func (s *SyncService) RemoveListItem(list string, idx int) error {
	next, err := models.RemoveListItem(s.Draft(), list, idx)
	if err != nil {
		return err
	}
	s.apply(next)
	return nil
}

// apply installs a new snapshot and schedules a save when it differs from
// the current one
func (s *SyncService) apply(next models.PetitionDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if reflect.DeepEqual(s.draft, next) {
		return
	}
	s.draft = next
	s.scheduleLocked()
}

// noteSurfaceChange marks unsaved status and restarts the debounce window.
// Registered as the surface change callback.
func (s *SyncService) noteSurfaceChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restoring {
		return
	}
	s.scheduleLocked()
}

// scheduleLocked cancels any pending timer and starts a new one; caller
// holds mu
func (s *SyncService) scheduleLocked() {
	if s.closed {
		return
	}
	s.gen++
	s.lastSaved = UnsavedMarker
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.Flush(context.Background())
	})
}

// Flush writes draft and content to the store immediately. Write failures
// are logged and otherwise ignored: autosave is fire-and-forget by policy
// and the next debounce window retries naturally.
func (s *SyncService) Flush(ctx context.Context) {
	if s.store == nil {
		return
	}

	s.mu.Lock()
	gen := s.gen
	draft := s.draft.Clone()
	s.mu.Unlock()

	data, err := json.Marshal(draft)
	if err != nil {
		log.Printf("Warning: failed to serialize draft: %v", err)
		return
	}

	if err := s.store.Set(ctx, storage.DraftKey, string(data)); err != nil {
		log.Printf("Warning: failed to persist draft: %v", err)
	}

	if s.surface != nil && !s.surface.IsEmpty() {
		if err := s.store.Set(ctx, storage.ContentKey, s.surface.GetContent()); err != nil {
			log.Printf("Warning: failed to persist editor content: %v", err)
		}
	}

	// An edit that arrived while the writes were in flight has already set
	// the unsaved marker; only stamp the save time when nothing newer is
	// pending.
	s.mu.Lock()
	if s.gen == gen {
		s.lastSaved = time.Now().Format("15:04")
	}
	s.mu.Unlock()
}

// LastSaved returns the human-readable last-saved marker, empty before the
// first write
func (s *SyncService) LastSaved() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// Reset restores the default template, clears the surface, and removes both
// persisted keys. It refuses to act without explicit confirmation and is
// idempotent: a second call leaves the same end state.
func (s *SyncService) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}
	if s.store == nil {
		return ErrStoreNotSet
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.draft = models.DefaultDraft()
	s.lastSaved = ""
	s.mu.Unlock()

	if s.surface != nil {
		s.surface.Clear()
	}

	// Clearing the surface fires the change callback, which schedules a
	// write of the now-default state; cancel it so reset leaves no pending
	// timer behind.
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.lastSaved = ""
	s.mu.Unlock()

	if err := s.store.Remove(ctx, storage.DraftKey); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, storage.ContentKey); err != nil {
		return err
	}

	return nil
}

// Close cancels any pending write so a torn-down store is never touched
func (s *SyncService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
