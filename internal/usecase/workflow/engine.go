package workflow

import (
	"context"
	"fmt"
	"sync"
)

// Context is the mutable mapping a workflow run accumulates. Each step reads
// the context built so far and returns a partial update merged into it;
// later keys override earlier ones.
type Context map[string]any

// StepFunc executes one named step. The returned Context is merged into the
// run's accumulated context before the next step runs.
type StepFunc func(ctx context.Context, wc Context) (Context, error)

// StepStatus is the recorded outcome of one step
type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusError   StepStatus = "error"
)

// StepResult is one line of the ordered audit log a run produces.
type StepResult struct {
	Step   string
	Status StepStatus
	Result Context
	Err    string
}

// StepError wraps the failing step's label, its underlying error, and the
// partial execution log up to and including the failure.
type StepError struct {
	Step string
	Log  []StepResult
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("workflow step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type step struct {
	label string
	fn    StepFunc
}

// Engine sequences named steps over a shared, growing context. Steps run
// strictly in registration order, one at a time, within a run; the first
// error stops the run and propagates, with no automatic rollback of already
// executed steps. Independent runs are fully independent and may execute in
// parallel.
type Engine struct {
	mu    sync.RWMutex
	steps []step
}

// NewEngine creates a new workflow Engine instance
func NewEngine() *Engine {
	return &Engine{}
}

// AddStep registers a named step at the end of the execution order.
func (e *Engine) AddStep(label string, fn StepFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps = append(e.steps, step{label: label, fn: fn})
}

// Run executes the registered steps over the initial context. It returns the
// ordered step log; on failure the log holds all prior successes plus the
// failing step, and the returned error is a *StepError wrapping the cause.
func (e *Engine) Run(ctx context.Context, initial Context) ([]StepResult, error) {
	e.mu.RLock()
	steps := e.steps
	e.mu.RUnlock()

	// Copy so the caller's map is never mutated by the run.
	accumulated := make(Context, len(initial))
	for k, v := range initial {
		accumulated[k] = v
	}

	log := make([]StepResult, 0, len(steps))
	for _, s := range steps {
		update, err := s.fn(ctx, accumulated)
		if err != nil {
			log = append(log, StepResult{
				Step:   s.label,
				Status: StepStatusError,
				Err:    err.Error(),
			})
			return log, &StepError{Step: s.label, Log: log, Err: err}
		}

		log = append(log, StepResult{
			Step:   s.label,
			Status: StepStatusSuccess,
			Result: update,
		})
		for k, v := range update {
			accumulated[k] = v
		}
	}
	return log, nil
}
