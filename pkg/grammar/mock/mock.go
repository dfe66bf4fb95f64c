// Package mock provides a test double for the grammar.Service interface.
//
// Use Service to return pre-canned suggestions without a live backend and to
// verify which texts were submitted for checking.
//
// Example:
//
//	svc := &mock.Service{
//	    CheckResult: []grammar.Suggestion{
//	        {Text: "buyed", Replacements: []string{"bought"}, Category: "GRAMMAR"},
//	    },
//	}
//	suggestions, _ := svc.Check(ctx, "i buyed a book")
package mock

import (
	"context"
	"sync"

	"github.com/MrWong99/sayright/pkg/grammar"
)

// CheckCall records a single invocation of Check.
type CheckCall struct {
	// Ctx is the context passed to Check.
	Ctx context.Context
	// Text is the string passed to Check.
	Text string
}

// Service is a mock implementation of grammar.Service.
type Service struct {
	mu sync.Mutex

	// CheckResult is returned by Check. If nil, an empty slice is returned.
	CheckResult []grammar.Suggestion

	// CheckErr, if non-nil, is returned as the error from Check.
	CheckErr error

	// CheckCalls records every call to Check in order.
	CheckCalls []CheckCall
}

// Check implements grammar.Service.
func (s *Service) Check(ctx context.Context, text string) ([]grammar.Suggestion, error) {
	s.mu.Lock()
	s.CheckCalls = append(s.CheckCalls, CheckCall{Ctx: ctx, Text: text})
	s.mu.Unlock()

	if s.CheckErr != nil {
		return nil, s.CheckErr
	}
	if s.CheckResult == nil {
		return []grammar.Suggestion{}, nil
	}
	out := make([]grammar.Suggestion, len(s.CheckResult))
	copy(out, s.CheckResult)
	return out, nil
}

// Calls returns a copy of the recorded Check invocations.
func (s *Service) Calls() []CheckCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CheckCall, len(s.CheckCalls))
	copy(out, s.CheckCalls)
	return out
}
