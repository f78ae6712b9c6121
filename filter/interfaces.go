package filter

import (
	"context"

	"github.com/s0up4200/wtw/api"
)

// Filter defines the basic interface for film filters
type Filter interface {
	// Evaluate checks if a film matches the filter criteria
	Evaluate(film api.FilmPreview) bool
}

// CompiledFilter represents a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the expression the filter was compiled from
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	// Compile parses and compiles a filter expression
	Compile(expression string) (CompiledFilter, error)
}

// CachingCompiler provides caching for compiled filters
type CachingCompiler interface {
	Compiler

	// Clear removes all cached filters
	Clear()

	// Size returns the number of cached filters
	Size() int
}

// Evaluator evaluates filters against films
type Evaluator interface {
	// Evaluate returns the films matching filter, in their original order
	Evaluate(ctx context.Context, filter CompiledFilter, films []api.FilmPreview) ([]api.FilmPreview, error)

	// EvaluateBatch evaluates several named filters against the same films
	EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, films []api.FilmPreview) (map[string][]api.FilmPreview, error)
}
