package llm

import "context"

// StaticClient returns a fixed response. Used in tests and for offline
// template-only rendering, where the generator falls back to the user's
// own input when the response is not valid JSON.
type StaticClient struct {
	Text string
}

// Generate returns the configured text unchanged
func (c *StaticClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.Text, nil
}
