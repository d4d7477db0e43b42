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

// ReplanStatus is the outcome of one re-plan attempt.
type ReplanStatus string

const (
	ReplanSolved     ReplanStatus = "solved"
	ReplanInfeasible ReplanStatus = "infeasible"
	ReplanRejected   ReplanStatus = "warm_start_rejected"
)

// VehiclePosition reports where a virtual vehicle is mid-day: its start
// time is pinned to CurrentMinute because it is already en route and
// cannot be relocated to the depot.
type VehiclePosition struct {
	CurrentMinute int
}

// ReplanRequest carries the updated problem inputs plus the prior solution
// to continue from. PrevRoutes are per-vehicle node-index sequences from
// the prior solve, terminals included; those indices are only meaningful
// against PrevTargets.
type ReplanRequest struct {
	PlanRequest
	PrevTargets []domain.Target
	PrevRoutes  [][]int
	Positions   []VehiclePosition
}

// ReplanResult reports the outcome together with the freshly built model.
// On ReplanRejected the caller owns the fallback: a cold SolveFormulated on
// Model. The replanner never retries by itself.
type ReplanResult struct {
	Status ReplanStatus
	Plan   domain.Plan
	Model  *FormulatedModel
}

// Replan re-solves after the target set and/or vehicle positions changed.
//
// Everything is rebuilt against the updated target list, so node indices
// are fresh; the prior routes are carried across the snapshot boundary by
// stable target id only, and the result is submitted as a warm start.
func (pl *Planner) Replan(ctx context.Context, req ReplanRequest) (ReplanResult, error) {
	log.Printf("op=replan state=formulating targets=%d prev_targets=%d", len(req.Targets), len(req.PrevTargets))

	forced := make([]*int, len(req.Positions))
	for i := range req.Positions {
		minute := req.Positions[i].CurrentMinute
		forced[i] = &minute
	}

	model, err := pl.Formulate(ctx, req.PlanRequest, forced)
	if err != nil {
		if errors.Is(err, ErrNoVehiclesAvailable) {
			log.Printf("op=replan state=infeasible reason=no_vehicles")
			return ReplanResult{Status: ReplanInfeasible, Plan: domain.Plan{Routes: []domain.VehicleRoute{}}}, nil
		}
		return ReplanResult{}, fmt.Errorf("replan: %w", err)
	}

	warmRoutes := RemapRoutes(req.PrevRoutes, req.PrevTargets, req.Targets)
	if len(warmRoutes) < model.Problem.NumVehicles() {
		padded := make([][]int, model.Problem.NumVehicles())
		copy(padded, warmRoutes)
		warmRoutes = padded
	}

	log.Printf("op=replan state=warm_starting vehicles=%d", len(warmRoutes))
	started := time.Now()
	assignment, err := pl.Solver.SolveFromRoutes(ctx, model.Problem, warmRoutes, req.Timeout)
	switch {
	case errors.Is(err, ports.ErrWarmStartRejected):
		metrics.ObserveSolve("warm", "rejected", time.Since(started))
		log.Printf("op=replan state=rejected reason=%v", err)
		return ReplanResult{Status: ReplanRejected, Model: model, Plan: domain.Plan{Routes: []domain.VehicleRoute{}}}, nil
	case errors.Is(err, ports.ErrNoSolution):
		metrics.ObserveSolve("warm", "no_solution", time.Since(started))
		log.Printf("op=replan state=infeasible dur=%dms", time.Since(started).Milliseconds())
		return ReplanResult{Status: ReplanInfeasible, Model: model, Plan: domain.Plan{Routes: []domain.VehicleRoute{}}}, nil
	case err != nil:
		metrics.ObserveSolve("warm", "error", time.Since(started))
		return ReplanResult{}, fmt.Errorf("replan: %w", err)
	}
	metrics.ObserveSolve("warm", "solved", time.Since(started))
	log.Printf("op=replan state=solved dur=%dms", time.Since(started).Milliseconds())

	routes := routing.ExtractRoutes(model.Problem, model.Manager, assignment, model.Identity, model.Targets, model.Virtuals)
	return ReplanResult{
		Status: ReplanSolved,
		Plan:   domain.Plan{SolutionFound: true, Routes: routes},
		Model:  model,
	}, nil
}

// RemapRoutes translates prior per-vehicle routes onto the updated target
// snapshot: drop the terminal sentinels, resolve each remaining old index
// to its stable target id, then to the id's new index. A target id absent
// from the updated snapshot was cancelled; it silently shrinks the route.
// The translation is a pure function and never fails.
func RemapRoutes(prevRoutes [][]int, prevTargets, updatedTargets []domain.Target) [][]int {
	prior := domain.NewIdentityMap(prevTargets)
	updated := domain.NewIdentityMap(updatedTargets)

	remapped := make([][]int, len(prevRoutes))
	for v, route := range prevRoutes {
		var interior []int
		if len(route) > 2 {
			interior = route[1 : len(route)-1]
		}

		remapped[v] = []int{}
		for _, oldIndex := range interior {
			id, ok := prior.IDAt(oldIndex)
			if !ok || id == domain.DepotID {
				continue
			}
			newIndex, ok := updated.IndexOf(id)
			if !ok {
				// Cancelled target: omit, never raise.
				continue
			}
			remapped[v] = append(remapped[v], newIndex)
		}
	}
	return remapped
}
