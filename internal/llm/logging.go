package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ordkort/ordkort/internal/history"
)

// LoggingProvider is a decorator that records every LLM request in the
// history database.
type LoggingProvider struct {
	inner    Provider
	name     string
	recorder history.Recorder
}

// WithLogging wraps a Provider with request logging. name identifies the
// provider ("anthropic", "openai", ...) in the recorded rows.
func WithLogging(p Provider, name string, rec history.Recorder) Provider {
	return &LoggingProvider{inner: p, name: name, recorder: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	row := history.LLMRequest{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestedAt: start,
	}

	if resp != nil {
		row.InputTokens = resp.Usage.InputTokens
		row.OutputTokens = resp.Usage.OutputTokens
		row.Model = resp.Model
	}

	if err != nil {
		row.ErrorMessage = err.Error()
	}

	// Log the request but don't fail it if logging fails.
	if logErr := l.recorder.LLMRequestLogged(ctx, row); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
