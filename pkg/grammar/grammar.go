// Package grammar defines the Service interface for external grammar
// checking backends.
//
// A grammar service wraps a remote checking capability (e.g., a LanguageTool
// server or a language model) and exposes a single Check method that returns
// normalised [Suggestion] values. Degraded-mode behaviour is part of the type
// contract: implementations must map every failure — network errors,
// non-success status codes, timeouts, unparseable responses — to an error
// wrapping [ErrUnavailable] rather than letting a raw transport error escape,
// so the correction pipeline can fall back to rule-based operation without
// inspecting provider internals.
//
// Implementations must be safe for concurrent use and must impose a bounded
// wait on any network call.
package grammar

import (
	"context"
	"errors"
)

// ErrUnavailable is the sentinel wrapped by every Check failure. Callers
// test for it with [errors.Is] and degrade to rule-based corrections.
var ErrUnavailable = errors.New("grammar service unavailable")

// Service is the abstraction over any external grammar checking backend.
type Service interface {
	// Check analyses text and returns zero or more suggestions in the order
	// the backend reported them. A nil error with an empty slice means the
	// text passed the check. Any failure is returned as an error wrapping
	// [ErrUnavailable]; Check must never panic and must respect ctx.
	Check(ctx context.Context, text string) ([]Suggestion, error)
}
