package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/models"
)

func newTestSync(t *testing.T, surface editor.Surface) *SyncService {
	t.Helper()
	s := NewSyncService(
		WithStore(newMemStore()),
		WithSurface(surface),
		WithDebounce(time.Hour), // keep autosave out of the way
	)
	t.Cleanup(s.Close)
	return s
}

func TestGenerationSuccess(t *testing.T) {
	surface := editor.NewMarkupSurface()
	sync := newTestSync(t, surface)

	require.NoError(t, sync.UpdateField("legal_basis", "TMK, TBK"))
	require.NoError(t, sync.UpdateListItem(models.ListParties, 0, json.RawMessage(`{"name":"Ali Veli"}`)))

	var received models.GenerationPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html":"<p>X</p>","qa_warnings":["missing date"]}`))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	result, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"TMK", "TBK"}, received.LegalBasis, "legal basis must be sent as split tokens")
	assert.Equal(t, "Ali Veli", received.Parties[0].Name)
	assert.Equal(t, string(models.RoleDavaci), string(received.Parties[0].Role))

	assert.Equal(t, "<p>X</p>", surface.GetContent(), "response html replaces surface content")
	assert.Equal(t, []string{"missing date"}, g.Warnings())
	assert.Equal(t, "<p>X</p>", result.Content)
	assert.False(t, g.InFlight())
}

func TestGenerationMissingWarnings(t *testing.T) {
	surface := editor.NewMarkupSurface()
	sync := newTestSync(t, surface)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html":"<p>Y</p>"}`))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	result, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, result.Warnings, "absent qa_warnings defaults to an empty list")
	assert.Empty(t, result.Warnings)
	assert.Empty(t, g.Warnings())
}

func TestGenerationEmptyHTML(t *testing.T) {
	surface := editor.NewMarkupSurface()
	surface.SetContent("<p>mevcut içerik</p>")
	sync := newTestSync(t, surface)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"qa_warnings":["konu eksik"]}`))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	result, err := g.Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "<p>mevcut içerik</p>", surface.GetContent(), "a success without html leaves the document alone")
	assert.Equal(t, []string{"konu eksik"}, g.Warnings(), "warnings still replace in full")
	assert.Equal(t, []string{"konu eksik"}, result.Warnings)
	assert.Empty(t, result.Content)
}

func TestGenerationUnreachableEndpoint(t *testing.T) {
	surface := editor.NewMarkupSurface()
	surface.SetContent("<p>dokunma</p>")
	sync := newTestSync(t, surface)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	_, err := g.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation request failed")
	assert.Equal(t, "<p>dokunma</p>", surface.GetContent())
	assert.Empty(t, g.Warnings())
	assert.False(t, g.InFlight())
}

func TestGenerationFailureIsolation(t *testing.T) {
	surface := editor.NewMarkupSurface()
	sync := newTestSync(t, surface)

	failing := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing {
			http.Error(w, "üretim hatası: mahkeme adı çözümlenemedi", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html":"<p>önce</p>","qa_warnings":["ilk uyarı"]}`))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	// Establish document state and warnings via one successful call
	_, err := g.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "<p>önce</p>", surface.GetContent())

	failing = true
	_, err = g.Generate(context.Background())
	require.Error(t, err)

	assert.Contains(t, err.Error(), "üretim hatası: mahkeme adı çözümlenemedi", "error body is surfaced verbatim")
	assert.Equal(t, "<p>önce</p>", surface.GetContent(), "failure must not touch the document")
	assert.Equal(t, []string{"ilk uyarı"}, g.Warnings(), "failure must not touch the warnings list")
	assert.False(t, g.InFlight(), "state returns to idle after failure")

	t.Run("the next trigger is allowed", func(t *testing.T) {
		failing = false
		_, err := g.Generate(context.Background())
		require.NoError(t, err)
	})
}

func TestGenerationMalformedResponse(t *testing.T) {
	surface := editor.NewMarkupSurface()
	surface.SetContent("<p>dokunma</p>")
	sync := newTestSync(t, surface)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	_, err := g.Generate(context.Background())
	require.Error(t, err)
	assert.Equal(t, "<p>dokunma</p>", surface.GetContent())
	assert.False(t, g.InFlight())
}

func TestGenerationSingleInFlight(t *testing.T) {
	surface := editor.NewMarkupSurface()
	sync := newTestSync(t, surface)

	reached := make(chan struct{})
	release := make(chan struct{})
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		close(reached)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"html":"<p>Z</p>"}`))
	}))
	defer server.Close()

	g := NewGenerationService(
		GenerationWithSyncService(sync),
		GenerationWithSurface(surface),
		GenerationWithEndpoint(server.URL),
	)

	done := make(chan error, 1)
	go func() {
		_, err := g.Generate(context.Background())
		done <- err
	}()

	<-reached
	assert.True(t, g.InFlight())

	// A second trigger while one is outstanding has no observable effect
	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, ErrGenerationInFlight)
	assert.True(t, surface.IsEmpty(), "rejected trigger must not touch the document")

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, requests, "only one request may reach the server")
	assert.Equal(t, "<p>Z</p>", surface.GetContent())
	assert.False(t, g.InFlight(), "completion re-enables the next call")
}

func TestGenerationWithoutEndpoint(t *testing.T) {
	g := NewGenerationService()
	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, ErrEndpointNotSet)
}
