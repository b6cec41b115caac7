package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task pairs an input with its processing outcome.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc processes a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Pool runs a ProcessFunc over a slice of inputs with bounded concurrency.
// Results are always returned in input order.
type Pool[T any, R any] struct {
	workers int
	process ProcessFunc[T, R]
}

// NewPool creates a pool. Fewer than one worker means one.
func NewPool[T any, R any](workers int, fn ProcessFunc[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{
		workers: workers,
		process: fn,
	}
}

// Workers returns the configured concurrency.
func (p *Pool[T, R]) Workers() int { return p.workers }

// Execute processes every input and returns one Task per input, in order.
// A single-worker pool runs inline so processing order equals input order.
// Inputs not reached before ctx is cancelled carry ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i := range inputs {
		results[i].Input = inputs[i]
	}

	if p.workers == 1 || len(inputs) <= 1 {
		for i := range inputs {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				continue
			}
			p.run(ctx, results, i, 0)
		}
		return results
	}

	inputCh := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range inputCh {
				p.run(ctx, results, idx, workerID)
			}
		}(w)
	}

	next := 0
send:
	for ; next < len(inputs); next++ {
		select {
		case <-ctx.Done():
			break send
		case inputCh <- next:
		}
	}
	close(inputCh)
	wg.Wait()

	for i := next; i < len(inputs); i++ {
		results[i].Err = ctx.Err()
	}
	return results
}

func (p *Pool[T, R]) run(ctx context.Context, results []Task[T, R], idx, workerID int) {
	result, err := p.process(ctx, results[idx].Input)
	results[idx].Result = result
	results[idx].Err = err
	if err != nil {
		log.Debug().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
	}
}

// Batch splits items into consecutive chunks of at most batchSize.
func Batch[T any](items []T, batchSize int) [][]T {
	if batchSize <= 0 {
		batchSize = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
