// Package policy evaluates request-admission rules before any document fetch.
package policy

import (
	"context"
	"fmt"
	"sync"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine. The prepared query can be swapped at
// runtime via Reload, so evaluation takes a read lock.
type Engine struct {
	mu    sync.RWMutex
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	query, err := prepare(ctx, policyContent)
	if err != nil {
		return nil, err
	}
	return &Engine{query: query}, nil
}

func prepare(ctx context.Context, policyContent string) (rego.PreparedEvalQuery, error) {
	r := rego.New(
		rego.Query("data.request_policy.decision"),
		rego.Module("request_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return rego.PreparedEvalQuery{}, fmt.Errorf("failed to prepare rego: %w", err)
	}
	return query, nil
}

// Reload replaces the active policy. The previous policy stays in effect if
// the new content fails to compile.
func (e *Engine) Reload(ctx context.Context, policyContent string) error {
	query, err := prepare(ctx, policyContent)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.query = query
	e.mu.Unlock()
	return nil
}

// Evaluate checks the request policy.
// Input should be a map with keys: pdf_url, question_count.
// Returns: decision (allow, block), reason (optional), error.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	e.mu.RLock()
	query := e.query
	e.mu.RUnlock()

	results, err := query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The default rule in the policy decides; an empty result means the
		// module defines no default, so fall back to allow.
		return "allow", "default", nil
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, "", nil
	}

	return "allow", "unexpected return type", nil
}

// DefaultPolicy is the policy applied when no policy file is configured.
const DefaultPolicy = `
package request_policy

import rego.v1

default decision := "allow"

# Only plain web URLs may be fetched.
decision := "block" if {
	not startswith(input.pdf_url, "http://")
	not startswith(input.pdf_url, "https://")
}

# Keep batch sizes sane.
decision := "block" if {
	input.question_count > 20
}

# The fetcher must not be pointed at link-local metadata services.
decision := "block" if {
	contains(input.pdf_url, "169.254.169.254")
}
`
