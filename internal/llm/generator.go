// Package llm exposes the narrow "generate text from a prompt" capability used
// for incident explanations and chaos predictions, together with the fallback
// discipline shared by its callers.
package llm

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnavailable is returned when no generation backend is configured.
	ErrUnavailable = errors.New("text generation unavailable")
	// ErrEmptyResponse is returned when the backend answers without any text.
	ErrEmptyResponse = errors.New("empty generation response")
)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Fallback reasons.
const (
	ReasonUnconfigured = "unconfigured"
	ReasonEmpty        = "empty"
	ReasonError        = "error"
)

// Result is the outcome of one generation attempt. Text is never empty when
// the fallback passed to Generate is non-empty.
type Result struct {
	Text      string
	Generated bool
	// Reason and Err describe why the fallback was used.
	Reason string
	Err    error
}

// Generate asks gen for text and substitutes fallback on any failure. The
// failure is returned in the Result for logging only.
func Generate(ctx context.Context, gen Generator, prompt, fallback string) Result {
	if gen == nil {
		return Result{Text: fallback, Reason: ReasonUnconfigured, Err: ErrUnavailable}
	}
	text, err := gen.Generate(ctx, prompt)
	switch {
	case errors.Is(err, ErrUnavailable):
		return Result{Text: fallback, Reason: ReasonUnconfigured, Err: err}
	case err != nil:
		return Result{Text: fallback, Reason: ReasonError, Err: err}
	case strings.TrimSpace(text) == "":
		return Result{Text: fallback, Reason: ReasonEmpty, Err: ErrEmptyResponse}
	}
	return Result{Text: text, Generated: true}
}
