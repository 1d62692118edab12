package replay

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/toasts/internal/core/logging"
	"github.com/hay-kot/toasts/internal/core/notify"
)

// Result records the outcome of one step.
type Result struct {
	At    time.Duration `json:"at"`
	Op    Op            `json:"op"`
	Ref   string        `json:"ref"`
	ID    string        `json:"id,omitempty"`
	Found bool          `json:"found"`
	Error string        `json:"error,omitempty"`
}

// WaitFunc blocks for d of scenario time.
type WaitFunc func(ctx context.Context, d time.Duration) error

// Sleep waits on the wall clock.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Runner executes scenarios.
type Runner struct {
	api  notify.API
	wait WaitFunc
	log  zerolog.Logger
}

func NewRunner(api notify.API, wait WaitFunc) *Runner {
	if wait == nil {
		wait = Sleep
	}
	return &Runner{api: api, wait: wait, log: logging.Component("replay")}
}

// Run executes every step at its offset and then waits out Settle. Step
// failures are recorded in the results; only cancellation stops the run.
func (r *Runner) Run(ctx context.Context, s Scenario) ([]Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	refs := make(map[string]notify.ID)
	results := make([]Result, 0, len(s.Steps))

	var now time.Duration
	for _, step := range s.Steps {
		if err := r.wait(ctx, step.At-now); err != nil {
			return results, err
		}
		now = step.At

		res := r.apply(ctx, step, refs)
		results = append(results, res)
	}

	if err := r.wait(ctx, s.Settle); err != nil {
		return results, err
	}
	return results, nil
}

func (r *Runner) apply(ctx context.Context, step Step, refs map[string]notify.ID) Result {
	res := Result{At: step.At, Op: step.Op, Ref: step.Ref}

	var err error
	switch step.Op {
	case OpCreate:
		var id notify.ID
		id, err = r.api.Create(step.Info)
		if err == nil {
			refs[step.Ref] = id
			res.ID = id.String()
			res.Found = true
		}
	case OpEdit:
		id := refs[step.Ref]
		res.ID = id.String()
		res.Found, err = r.api.Edit(id, step.Info)
	case OpDelete:
		id := refs[step.Ref]
		res.ID = id.String()
		res.Found, err = r.api.Delete(id)
	}

	if err != nil {
		res.Error = err.Error()
	}

	ctx = logging.WithToastID(ctx, res.ID)
	r.log.Debug().Ctx(ctx).
		Str("op", string(step.Op)).
		Str("ref", step.Ref).
		Bool("found", res.Found).
		Str("error", res.Error).
		Msg("step applied")

	return res
}
