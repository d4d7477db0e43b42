package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/metrics"
	"visit-routing-service/internal/ports"
	"visit-routing-service/internal/routing"
)

// PlanRequest is a fully parsed cold-solve request.
type PlanRequest struct {
	Branch         domain.Branch
	Targets        []domain.Target
	DateRange      DateRange
	Holidays       []string
	WeekdayWindows map[string][]string
	Vehicles       []domain.Vehicle
	Timeout        time.Duration
	Penalty        int
}

// FormulatedModel bundles one solve's problem with the snapshot-scoped
// lookup structures needed to run it and read its answer. It exists so a
// caller can retry a rejected warm start cold on the very same model
// without re-fetching travel times.
type FormulatedModel struct {
	Problem  *routing.Problem
	Manager  *routing.Manager
	Identity *domain.IdentityMap
	Targets  []domain.Target
	Virtuals []domain.VirtualVehicle
}

// Planner orchestrates formulation, solving and extraction.
type Planner struct {
	Provider ports.DistanceProvider
	Solver   ports.Solver
}

// Formulate runs the cold-path pipeline up to (but not including) the
// solver: calendar expansion, cost matrix, problem assembly.
func (pl *Planner) Formulate(ctx context.Context, req PlanRequest, forcedStarts []*int) (*FormulatedModel, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	schedules, err := ExpandCalendar(req.DateRange, req.Holidays, req.WeekdayWindows, req.Vehicles)
	if err != nil {
		return nil, fmt.Errorf("formulate: %w", err)
	}
	virtuals := FlattenVirtualVehicles(schedules)
	log.Printf("op=formulate virtual_vehicles=%d targets=%d", len(virtuals), len(req.Targets))

	matrix, err := BuildCostMatrix(ctx, req.Branch, req.Targets, pl.Provider)
	if err != nil {
		return nil, fmt.Errorf("formulate: %w", err)
	}

	problem, err := BuildProblem(matrix, req.Targets, virtuals, FormulateOptions{
		Penalty:            req.Penalty,
		ForcedStartMinutes: forcedStarts,
	})
	if err != nil {
		return nil, fmt.Errorf("formulate: %w", err)
	}

	return &FormulatedModel{
		Problem:  problem,
		Manager:  routing.NewManager(problem),
		Identity: domain.NewIdentityMap(req.Targets),
		Targets:  req.Targets,
		Virtuals: virtuals,
	}, nil
}

// Solve runs the cold path end to end. Infeasibility (or a timeout with no
// solution) is not an error: it yields a plan with SolutionFound false and
// no routes.
func (pl *Planner) Solve(ctx context.Context, req PlanRequest) (domain.Plan, error) {
	model, err := pl.Formulate(ctx, req, nil)
	if err != nil {
		if errors.Is(err, ErrNoVehiclesAvailable) {
			log.Printf("op=solve outcome=no_vehicles")
			return domain.Plan{Routes: []domain.VehicleRoute{}}, nil
		}
		return domain.Plan{}, fmt.Errorf("solve: %w", err)
	}

	return pl.SolveFormulated(ctx, model, req.Timeout)
}

// SolveFormulated runs a cold solve on an already formulated model.
func (pl *Planner) SolveFormulated(ctx context.Context, model *FormulatedModel, budget time.Duration) (domain.Plan, error) {
	started := time.Now()
	assignment, err := pl.Solver.Solve(ctx, model.Problem, budget)
	if err != nil {
		if errors.Is(err, ports.ErrNoSolution) {
			metrics.ObserveSolve("cold", "no_solution", time.Since(started))
			log.Printf("op=solve outcome=no_solution dur=%dms", time.Since(started).Milliseconds())
			return domain.Plan{Routes: []domain.VehicleRoute{}}, nil
		}
		metrics.ObserveSolve("cold", "error", time.Since(started))
		return domain.Plan{}, fmt.Errorf("solve: %w", err)
	}
	metrics.ObserveSolve("cold", "solved", time.Since(started))
	log.Printf("op=solve outcome=solved dur=%dms", time.Since(started).Milliseconds())

	routes := routing.ExtractRoutes(model.Problem, model.Manager, assignment, model.Identity, model.Targets, model.Virtuals)
	return domain.Plan{SolutionFound: true, Routes: routes}, nil
}

func validateRequest(req PlanRequest) error {
	if req.Branch.ID == "" {
		return errors.New("validate request: branch is required")
	}
	if len(req.Targets) == 0 {
		return errors.New("validate request: at least one target is required")
	}
	seen := make(map[string]struct{}, len(req.Targets))
	for _, t := range req.Targets {
		if t.ID == "" {
			return errors.New("validate request: target id must be non-empty")
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("validate request: duplicate target id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.StayMinutes < 0 {
			return fmt.Errorf("validate request: target %q has negative stay", t.ID)
		}
	}
	if len(req.Vehicles) == 0 {
		return errors.New("validate request: at least one vehicle is required")
	}
	return nil
}
