// Package filter selects films from the catalog with expr-lang
// expressions.
//
// Expressions see the film's fields directly (ID, Name, Genre, Released,
// PreviewImage, PreviewVideoLink), the whole record as Film, and helpers:
//
//	hasGenre("Drama") and Released >= 2000
//	containsText(Name, "budapest") or releasedBefore(1980)
//	startsWithText(Name, "the") and not endsWithText(Name, "hotel")
//	hasPreview() and yearsSince() < 10
//
// The plain expr operators work as well, case-sensitively:
//
//	Name contains "Budapest" or Name startsWith "The"
//
// A key:value shorthand is also accepted and converted before compiling:
//
//	genre:"Drama" AND released:>=2000
package filter

import (
	"context"
	"strings"

	"github.com/s0up4200/wtw/api"
)

var (
	defaultCompiler  = NewExprCompiler(WithCache(100))
	defaultEvaluator = NewConcurrentEvaluator()
)

// CompileFilter compiles expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// Apply returns the films matching expression in catalog order. An empty
// expression matches every film.
func Apply(ctx context.Context, expression string, films []api.FilmPreview) ([]api.FilmPreview, error) {
	if strings.TrimSpace(expression) == "" {
		return films, nil
	}

	filter, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}

	return defaultEvaluator.Evaluate(ctx, filter, films)
}

// EvaluateFilters compiles and evaluates several named expressions
func EvaluateFilters(ctx context.Context, filters map[string]string, films []api.FilmPreview) (map[string][]api.FilmPreview, error) {
	m := NewManager(WithCompiler(defaultCompiler), WithEvaluator(defaultEvaluator))
	if err := m.RegisterFilters(filters); err != nil {
		return nil, err
	}
	return m.EvaluateAll(ctx, films)
}
