package filter

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/wtw/api"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements Evaluator with a bounded errgroup
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate evaluates a single filter against all films
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, films []api.FilmPreview) ([]api.FilmPreview, error) {
	if len(films) == 0 {
		return []api.FilmPreview{}, nil
	}

	// Small catalogs are not worth the goroutines
	if len(films) < e.batchSize {
		return evaluateSequential(filter, films), nil
	}

	return e.evaluateConcurrent(ctx, filter, films)
}

// EvaluateBatch evaluates multiple filters against films concurrently
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, films []api.FilmPreview) (map[string][]api.FilmPreview, error) {
	results := make(map[string][]api.FilmPreview, len(filters))
	if len(filters) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	var mu sync.Mutex
	for name, filter := range filters {
		g.Go(func() error {
			matches, err := e.Evaluate(ctx, filter, films)
			if err != nil {
				return err
			}

			mu.Lock()
			results[name] = matches
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func evaluateSequential(filter CompiledFilter, films []api.FilmPreview) []api.FilmPreview {
	matches := make([]api.FilmPreview, 0, len(films)/4)
	for _, film := range films {
		if filter.Evaluate(film) {
			matches = append(matches, film)
		}
	}
	return matches
}

// evaluateConcurrent splits films into chunks and keeps the matches in
// catalog order
func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, films []api.FilmPreview) ([]api.FilmPreview, error) {
	chunkSize := max(len(films)/e.workerCount, e.batchSize)
	chunks := make([][]api.FilmPreview, (len(films)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(films))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			chunks[i] = evaluateSequential(filter, films[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, chunk := range chunks {
		total += len(chunk)
	}

	matches := make([]api.FilmPreview, 0, total)
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}

	return matches, nil
}
