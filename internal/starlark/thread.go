package starlark

import (
	"sync"

	"go.starlark.net/starlark"
	"golang.org/x/sync/errgroup"
)

// ThreadPool manages a pool of Starlark threads for parallel evaluation.
type ThreadPool struct {
	mu      sync.Mutex
	threads []*starlark.Thread
	maxSize int
}

// NewThreadPool creates a new thread pool with the specified maximum size.
func NewThreadPool(maxSize int) *ThreadPool {
	if maxSize <= 0 {
		maxSize = 10
	}
	return &ThreadPool{
		threads: make([]*starlark.Thread, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get retrieves a thread from the pool or creates a new one.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) > 0 {
		thread := p.threads[len(p.threads)-1]
		p.threads = p.threads[:len(p.threads)-1]
		thread.Name = name
		return thread
	}
	return newThread(name)
}

// Put returns a thread to the pool. If the pool is full the thread is dropped.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.threads) < p.maxSize {
		thread.Name = ""
		p.threads = append(p.threads, thread)
	}
}

// Size returns the current number of pooled threads.
func (p *ThreadPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.threads)
}

// EvalTask is one named expression.
type EvalTask struct {
	Name string
	Expr string
}

// EvalResult is the numeric outcome of an EvalTask.
type EvalResult struct {
	Name  string
	Value float64
	Error error
}

// ParallelExecutor evaluates many expressions against shared globals.
type ParallelExecutor struct {
	pool  *ThreadPool
	eval  *Evaluator
	limit int
}

// NewParallelExecutor creates an executor running at most maxConcurrency
// evaluations at once.
func NewParallelExecutor(maxConcurrency int, eval *Evaluator) *ParallelExecutor {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	if eval == nil {
		eval = NewEvaluator(nil)
	}
	return &ParallelExecutor{
		pool:  NewThreadPool(maxConcurrency),
		eval:  eval,
		limit: maxConcurrency,
	}
}

// Execute evaluates every task and returns results in task order.
// Evaluation failures are reported per result, never as a group error.
func (e *ParallelExecutor) Execute(tasks []EvalTask) []EvalResult {
	results := make([]EvalResult, len(tasks))

	var g errgroup.Group
	g.SetLimit(e.limit)
	for i, task := range tasks {
		g.Go(func() error {
			thread := e.pool.Get(task.Name)
			defer e.pool.Put(thread)

			res := EvalResult{Name: task.Name}
			v, err := starlark.Eval(thread, task.Name, task.Expr, e.eval.globals) //nolint:staticcheck // SA1019: will migrate to EvalOptions later
			if err != nil {
				res.Error = &EvalError{Name: task.Name, Expr: task.Expr, Message: err.Error()}
			} else {
				res.Value, res.Error = finite(task.Name, task.Expr, v)
			}
			results[i] = res
			return nil
		})
	}

	_ = g.Wait()
	return results
}
