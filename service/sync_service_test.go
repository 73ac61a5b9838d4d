package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/models"
	"github.com/nuxxor/Mevzubase/storage"
)

const testDebounce = 50 * time.Millisecond

func TestSyncServiceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("restores a persisted draft", func(t *testing.T) {
		store := newMemStore()
		saved := models.DefaultDraft()
		saved.Subject = "Alacak davası"
		data, err := json.Marshal(saved)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, storage.DraftKey, string(data)))

		s := NewSyncService(WithStore(store), WithSurface(editor.NewMarkupSurface()))
		defer s.Close()
		require.NoError(t, s.Load(ctx))

		assert.Equal(t, "Alacak davası", s.Draft().Subject)
	})

	t.Run("falls back to the default template on corrupt data", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, storage.DraftKey, "{not valid json"))

		s := NewSyncService(WithStore(store), WithSurface(editor.NewMarkupSurface()))
		defer s.Close()
		require.NoError(t, s.Load(ctx), "corruption must never fail the session")

		assert.Equal(t, models.DefaultDraft(), s.Draft())
	})

	t.Run("uses the default template when nothing is persisted", func(t *testing.T) {
		s := NewSyncService(WithStore(newMemStore()), WithSurface(editor.NewMarkupSurface()))
		defer s.Close()
		require.NoError(t, s.Load(ctx))

		assert.Equal(t, models.DefaultDraft(), s.Draft())
	})

	t.Run("pushes persisted content into an empty surface", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, storage.ContentKey, "<p>kayıtlı</p>"))

		surface := editor.NewMarkupSurface()
		s := NewSyncService(WithStore(store), WithSurface(surface))
		defer s.Close()
		require.NoError(t, s.Load(ctx))

		assert.Equal(t, "<p>kayıtlı</p>", surface.GetContent())
	})

	t.Run("restoring content schedules no autosave", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, storage.ContentKey, "<p>kayıtlı</p>"))
		store.sets = map[string]int{}

		surface := editor.NewMarkupSurface()
		s := NewSyncService(WithStore(store), WithSurface(surface), WithDebounce(testDebounce))
		defer s.Close()
		require.NoError(t, s.Load(ctx))
		require.Equal(t, "<p>kayıtlı</p>", surface.GetContent())

		time.Sleep(3 * testDebounce)
		assert.Zero(t, store.setCount(storage.DraftKey), "restoring must not rewrite the draft")
		assert.Zero(t, store.setCount(storage.ContentKey), "restoring must not rewrite the content")
		assert.Empty(t, s.LastSaved(), "restoring is not an edit")
	})

	t.Run("leaves a non-empty surface alone", func(t *testing.T) {
		store := newMemStore()
		require.NoError(t, store.Set(ctx, storage.ContentKey, "<p>kayıtlı</p>"))

		surface := editor.NewMarkupSurface()
		surface.SetContent("<p>kullanıcı yazıyor</p>")

		s := NewSyncService(WithStore(store), WithSurface(surface))
		defer s.Close()
		require.NoError(t, s.Load(ctx))

		assert.Equal(t, "<p>kullanıcı yazıyor</p>", surface.GetContent())
	})
}

func TestSyncServiceDebounce(t *testing.T) {
	t.Run("rapid updates coalesce into one write", func(t *testing.T) {
		store := newMemStore()
		s := NewSyncService(WithStore(store), WithDebounce(testDebounce))
		defer s.Close()

		for i := 0; i < 5; i++ {
			require.NoError(t, s.UpdateField("subject", fmt.Sprintf("konu %d", i)))
		}

		require.Eventually(t, func() bool {
			return store.setCount(storage.DraftKey) > 0
		}, time.Second, 5*time.Millisecond, "a write must land after the quiet period")

		// No further writes may trail in
		time.Sleep(3 * testDebounce)
		assert.Equal(t, 1, store.setCount(storage.DraftKey), "five rapid edits must produce exactly one write")

		value, ok := store.value(storage.DraftKey)
		require.True(t, ok)
		var persisted models.PetitionDraft
		require.NoError(t, json.Unmarshal([]byte(value), &persisted))
		assert.Equal(t, "konu 4", persisted.Subject, "the write must contain the final state")
	})

	t.Run("a no-op update schedules nothing", func(t *testing.T) {
		store := newMemStore()
		s := NewSyncService(WithStore(store), WithDebounce(testDebounce))
		defer s.Close()

		draft := s.Draft()
		require.NoError(t, s.UpdateField("court", draft.Court))

		time.Sleep(3 * testDebounce)
		assert.Zero(t, store.setCount(storage.DraftKey))
	})

	t.Run("surface edits restart the window and persist content", func(t *testing.T) {
		store := newMemStore()
		surface := editor.NewMarkupSurface()
		s := NewSyncService(WithStore(store), WithSurface(surface), WithDebounce(testDebounce))
		defer s.Close()

		surface.SetContent("<p>taslak</p>")

		require.Eventually(t, func() bool {
			value, ok := store.value(storage.ContentKey)
			return ok && value == "<p>taslak</p>"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("unsaved marker flips to a timestamp after the write", func(t *testing.T) {
		store := newMemStore()
		s := NewSyncService(WithStore(store), WithDebounce(testDebounce))
		defer s.Close()

		require.NoError(t, s.UpdateField("subject", "yeni konu"))
		assert.Equal(t, UnsavedMarker, s.LastSaved())

		require.Eventually(t, func() bool {
			marker := s.LastSaved()
			return marker != "" && marker != UnsavedMarker
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("an edit during a slow flush keeps the unsaved marker", func(t *testing.T) {
		store := newMemStore()
		writing := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		store.onSet = func(string) {
			once.Do(func() {
				close(writing)
				<-release
			})
		}

		s := NewSyncService(WithStore(store), WithDebounce(testDebounce))
		defer s.Close()

		require.NoError(t, s.UpdateField("subject", "ilk konu"))
		<-writing

		// The flush is mid-write; a fresh edit marks unsaved again
		require.NoError(t, s.UpdateField("subject", "ikinci konu"))
		close(release)

		require.Eventually(t, func() bool {
			return store.setCount(storage.DraftKey) == 1
		}, time.Second, time.Millisecond)
		assert.Equal(t, UnsavedMarker, s.LastSaved(), "the finished flush must not hide the pending edit")

		// The pending edit's own flush stamps the save time as usual
		require.Eventually(t, func() bool {
			marker := s.LastSaved()
			return marker != "" && marker != UnsavedMarker
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("close cancels the pending write", func(t *testing.T) {
		store := newMemStore()
		s := NewSyncService(WithStore(store), WithDebounce(testDebounce))

		require.NoError(t, s.UpdateField("subject", "kapanmadan önce"))
		s.Close()

		time.Sleep(3 * testDebounce)
		assert.Zero(t, store.setCount(storage.DraftKey), "no write may land after Close")
	})
}

func TestSyncServiceReset(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*SyncService, *memStore, *editor.MarkupSurface) {
		store := newMemStore()
		surface := editor.NewMarkupSurface()
		s := NewSyncService(WithStore(store), WithSurface(surface), WithDebounce(testDebounce))
		t.Cleanup(s.Close)

		require.NoError(t, s.UpdateField("subject", "silinecek konu"))
		surface.SetContent("<p>silinecek içerik</p>")
		s.Flush(ctx)
		return s, store, surface
	}

	t.Run("declining leaves all state untouched", func(t *testing.T) {
		s, store, surface := setup(t)

		err := s.Reset(ctx, false)
		require.ErrorIs(t, err, ErrResetNotConfirmed)

		assert.Equal(t, "silinecek konu", s.Draft().Subject)
		assert.False(t, surface.IsEmpty())
		_, ok := store.value(storage.DraftKey)
		assert.True(t, ok)
	})

	t.Run("confirmed reset clears everything", func(t *testing.T) {
		s, store, surface := setup(t)

		require.NoError(t, s.Reset(ctx, true))

		assert.Equal(t, models.DefaultDraft(), s.Draft())
		assert.True(t, surface.IsEmpty())

		_, ok := store.value(storage.DraftKey)
		assert.False(t, ok, "persisted draft must be removed")
		_, ok = store.value(storage.ContentKey)
		assert.False(t, ok, "persisted content must be removed")
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		s, store, surface := setup(t)

		require.NoError(t, s.Reset(ctx, true))
		require.NoError(t, s.Reset(ctx, true))

		assert.Equal(t, models.DefaultDraft(), s.Draft())
		assert.True(t, surface.IsEmpty())
		_, ok := store.value(storage.DraftKey)
		assert.False(t, ok)

		// The canceled timer must not resurrect the cleared draft
		time.Sleep(3 * testDebounce)
		_, ok = store.value(storage.DraftKey)
		assert.False(t, ok)
	})
}
