package ports

import (
	"context"
	"errors"
	"time"

	"visit-routing-service/internal/routing"
)

// ErrNoSolution is returned when no feasible solution was found within the
// time budget. A timeout with no solution is indistinguishable from
// infeasibility by design.
var ErrNoSolution = errors.New("no feasible solution found")

// ErrWarmStartRejected is returned when the supplied prior routes are not
// feasible against the current model. It is a distinct, recoverable outcome:
// callers fall back to a cold Solve on the same model.
var ErrWarmStartRejected = errors.New("warm start rejected")

// Solver is the external constraint/optimization engine boundary.
// The formulation layer is fully decoupled from any concrete backend.
type Solver interface {
	// Solve runs first-solution construction plus local-search improvement
	// within the wall-clock budget.
	Solve(ctx context.Context, p *routing.Problem, budget time.Duration) (*routing.Assignment, error)

	// SolveFromRoutes seeds the search with per-vehicle interior node
	// sequences (terminals excluded) from a prior solution. The routes are
	// validated against the model first; rejection is reported as
	// ErrWarmStartRejected, never conflated with ErrNoSolution.
	SolveFromRoutes(ctx context.Context, p *routing.Problem, routes [][]int, budget time.Duration) (*routing.Assignment, error)
}
