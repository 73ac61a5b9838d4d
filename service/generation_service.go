package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nuxxor/Mevzubase/editor"
	"github.com/nuxxor/Mevzubase/models"
)

var (
	ErrGenerationInFlight = errors.New("a generation request is already in flight")
	ErrEndpointNotSet     = errors.New("generation endpoint not set")
)

// GenerationService turns the current draft into document content through
// the remote generation endpoint. At most one request is outstanding at a
// time; a second trigger while one is in flight is rejected with no side
// effects. On success the response html replaces the surface content in
// full; on any failure the surface and the warnings list are left untouched.
type GenerationService struct {
	sync     *SyncService
	surface  editor.Surface
	endpoint string
	client   *http.Client

	mu         sync.Mutex
	requesting bool
	warnings   []string
	lastResult *models.GenerationResult
}

// GenerationServiceOption is a functional option for GenerationService
type GenerationServiceOption func(*GenerationService)

// GenerationWithSyncService sets the sync service supplying draft snapshots
func GenerationWithSyncService(s *SyncService) GenerationServiceOption {
	return func(g *GenerationService) {
		g.sync = s
	}
}

// GenerationWithSurface sets the document surface
func GenerationWithSurface(surface editor.Surface) GenerationServiceOption {
	return func(g *GenerationService) {
		g.surface = surface
	}
}

// GenerationWithEndpoint sets the remote generation endpoint
func GenerationWithEndpoint(endpoint string) GenerationServiceOption {
	return func(g *GenerationService) {
		g.endpoint = endpoint
	}
}

// GenerationWithHTTPClient sets the HTTP client
func GenerationWithHTTPClient(client *http.Client) GenerationServiceOption {
	return func(g *GenerationService) {
		g.client = client
	}
}

// NewGenerationService creates a new generation service
func NewGenerationService(opts ...GenerationServiceOption) *GenerationService {
	g := &GenerationService{
		client:   &http.Client{Timeout: 60 * time.Second},
		warnings: []string{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate serializes the current draft, posts it to the remote endpoint,
// and applies the result. The error detail of a failed call carries the
// response body verbatim so it can be surfaced to the user unchanged.
func (g *GenerationService) Generate(ctx context.Context) (*models.GenerationResult, error) {
	if g.endpoint == "" {
		return nil, ErrEndpointNotSet
	}
	if g.sync == nil {
		return nil, errors.New("sync service not set")
	}

	g.mu.Lock()
	if g.requesting {
		g.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	g.requesting = true
	g.mu.Unlock()

	// Completion always returns the state to idle, success or not
	defer func() {
		g.mu.Lock()
		g.requesting = false
		g.mu.Unlock()
	}()

	attemptID := uuid.New()
	payload := models.BuildGenerationPayload(g.sync.Draft())

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("Generation %s: posting draft to %s", attemptID, g.endpoint)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("generation failed (%d): %s", resp.StatusCode, string(detail))
	}

	var decoded models.GenerationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode generation response: %w", err)
	}

	if decoded.QAWarnings == nil {
		decoded.QAWarnings = []string{}
	}

	// Success: content overwrites whatever the user was editing, including
	// edits made while the request was in flight.
	if g.surface != nil && decoded.HTML != "" {
		g.surface.SetContent(decoded.HTML)
	}

	result := &models.GenerationResult{
		ID:          attemptID,
		Content:     decoded.HTML,
		Warnings:    decoded.QAWarnings,
		CompletedAt: time.Now(),
	}

	g.mu.Lock()
	g.warnings = decoded.QAWarnings
	g.lastResult = result
	g.mu.Unlock()

	log.Printf("Generation %s: completed with %d warnings", attemptID, len(decoded.QAWarnings))

	return result, nil
}

// Warnings returns the warning list from the most recent successful call
func (g *GenerationService) Warnings() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.warnings))
	copy(out, g.warnings)
	return out
}

// InFlight reports whether a generation request is outstanding
func (g *GenerationService) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requesting
}

// LastResult returns the most recent successful result, nil if none
func (g *GenerationService) LastResult() *models.GenerationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastResult
}
