package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/s0up4200/wtw/api"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size <= 0 {
			return
		}
		if cache, err := lru.New[string, CompiledFilter](size); err == nil {
			c.cache = cache
		}
	}
}

// WithCustomFunctions adds custom helper functions
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		maps.Copy(c.custom, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		custom: make(map[string]any),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements CachingCompiler for expr-based filters
type exprCompiler struct {
	custom map[string]any
	cache  *lru.Cache[string, CompiledFilter]
}

// Compile compiles an expression into an executable filter. Shorthand
// expressions such as genre:"Drama" are converted first.
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	source := expression
	if IsShorthand(source) {
		source = ConvertShorthand(source)
	}

	// A zero film gives the compiler the types of every variable
	program, err := expr.Compile(source,
		expr.Env(createRuntimeEnvironment(api.FilmPreview{}, c.custom)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.custom,
	}

	if c.cache != nil {
		c.cache.Add(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Purge()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Evaluate evaluates the filter against a film. Films that fail to
// evaluate do not match.
func (f *exprFilter) Evaluate(film api.FilmPreview) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(film, f.custom))
	if err != nil {
		return false
	}

	// AsBool guarantees the type
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// addHelperFunctions adds the film-independent helpers to env
func addHelperFunctions(env map[string]any) {
	// String helpers, case-insensitive. contains, startsWith and endsWith
	// are reserved operators in expr, hence the names.
	env["containsText"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["startsWithText"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["endsWithText"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	// lower, upper and now come from the expr builtins
	env["thisYear"] = func() int {
		return time.Now().Year()
	}
}

// createRuntimeEnvironment creates the environment a filter is evaluated in
func createRuntimeEnvironment(film api.FilmPreview, custom map[string]any) map[string]any {
	env := make(map[string]any, 24+len(custom))

	addHelperFunctions(env)

	env["Film"] = film

	// Film-specific helpers
	env["hasGenre"] = createHasGenreFunc(film.Genre)
	env["hasPreview"] = createHasPreviewFunc(film.PreviewVideoLink)
	env["releasedBefore"] = createReleasedBeforeFunc(film.Released)
	env["releasedAfter"] = createReleasedAfterFunc(film.Released)
	env["yearsSince"] = createYearsSinceFunc(film.Released)

	// Direct film properties for convenience
	env["ID"] = film.ID
	env["Name"] = film.Name
	env["Genre"] = film.Genre
	env["Released"] = film.Released
	env["PreviewImage"] = film.PreviewImage
	env["PreviewVideoLink"] = film.PreviewVideoLink

	maps.Copy(env, custom)

	return env
}

func createHasGenreFunc(genre string) func(string) bool {
	return func(g string) bool {
		return strings.EqualFold(genre, g)
	}
}

func createHasPreviewFunc(link string) func() bool {
	return func() bool {
		return link != ""
	}
}

// Films without a release year match neither releasedBefore nor releasedAfter

func createReleasedBeforeFunc(released int) func(int) bool {
	return func(year int) bool {
		return released != 0 && released < year
	}
}

func createReleasedAfterFunc(released int) func(int) bool {
	return func(year int) bool {
		return released != 0 && released > year
	}
}

func createYearsSinceFunc(released int) func() int {
	return func() int {
		if released == 0 {
			return 0
		}
		return time.Now().Year() - released
	}
}
