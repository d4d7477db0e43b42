package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"visit-routing-service/internal/adapters/distance"
	"visit-routing-service/internal/api/dto"
	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/ports"
	"visit-routing-service/internal/services"
)

const defaultTimeoutSeconds = 600

// SolveHandler serves the cold-solve and replan endpoints.
//
// The estimator is always available; the Google-backed provider is used
// when a request asks for it. A request-supplied API key builds a
// per-request provider when none was configured at startup.
type SolveHandler struct {
	Solver    ports.Solver
	Estimator ports.DistanceProvider
	Google    ports.DistanceProvider
	Cache     ports.TravelTimeCache
}

// Solve formulates and solves one routing problem from scratch.
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SolveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	planReq, err := h.toPlanRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	planner := &services.Planner{
		Provider: h.pickProvider(req),
		Solver:   h.Solver,
	}

	plan, err := planner.Solve(r.Context(), planReq)
	if err != nil {
		log.Printf("solve failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toSolveResponse(plan))
}

// Replan re-solves an updated problem seeded from a prior solution. A
// rejected warm start falls back to a cold solve on the same freshly
// built model.
func (h *SolveHandler) Replan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.ReplanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	planReq, err := h.toPlanRequest(req.SolveRequest)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	prevTargets, err := toTargets(req.PrevTargets)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("prev_targets: %v", err))
		return
	}

	positions := make([]services.VehiclePosition, 0, len(req.VehiclePositions))
	for _, vp := range req.VehiclePositions {
		positions = append(positions, services.VehiclePosition{CurrentMinute: vp.CurrentTime})
	}

	planner := &services.Planner{
		Provider: h.pickProvider(req.SolveRequest),
		Solver:   h.Solver,
	}

	result, err := planner.Replan(r.Context(), services.ReplanRequest{
		PlanRequest: planReq,
		PrevTargets: prevTargets,
		PrevRoutes:  req.PrevRoutes,
		Positions:   positions,
	})
	if err != nil {
		log.Printf("replan failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	plan := result.Plan
	if result.Status == services.ReplanRejected {
		// The replanner never retries; the cold fallback happens here, on
		// the model it already built.
		plan, err = planner.SolveFormulated(r.Context(), result.Model, planReq.Timeout)
		if err != nil {
			log.Printf("cold fallback after rejected warm start failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	res := dto.ReplanResponse{
		SolveResponse: toSolveResponse(plan),
		ReplanStatus:  string(result.Status),
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *SolveHandler) pickProvider(req dto.SolveRequest) ports.DistanceProvider {
	if !req.UseGoogleAPI {
		return h.Estimator
	}
	if h.Google != nil {
		return h.Google
	}
	if req.GoogleAPIKey != "" {
		provider, err := distance.NewGoogleDistanceProvider(req.GoogleAPIKey, h.Estimator, h.Cache)
		if err == nil {
			return provider
		}
		log.Printf("per-request google provider: %v (using estimator)", err)
	}
	return h.Estimator
}

func (h *SolveHandler) toPlanRequest(req dto.SolveRequest) (services.PlanRequest, error) {
	targets, err := toTargets(req.Targets)
	if err != nil {
		return services.PlanRequest{}, err
	}

	vehicles := make([]domain.Vehicle, 0, len(req.Vehicles))
	for _, v := range req.Vehicles {
		vehicles = append(vehicles, domain.Vehicle{
			ID:      v.ID,
			OffDays: domain.NewDateSet(v.OffDays),
		})
	}

	timeout := req.TimeoutSeconds
	if timeout <= 0 {
		timeout = defaultTimeoutSeconds
	}

	return services.PlanRequest{
		Branch: domain.Branch{
			ID:    req.Branch.ID,
			Coord: domain.Coordinates{Lat: req.Branch.Lat, Lon: req.Branch.Lon},
		},
		Targets:        targets,
		DateRange:      services.DateRange{StartDate: req.DateRange.StartDate, EndDate: req.DateRange.EndDate},
		Holidays:       req.Holidays,
		WeekdayWindows: req.WeekdayTimeWindows,
		Vehicles:       vehicles,
		Timeout:        time.Duration(timeout) * time.Second,
	}, nil
}

func toTargets(reqs []dto.TargetRequest) ([]domain.Target, error) {
	targets := make([]domain.Target, 0, len(reqs))
	for _, t := range reqs {
		target := domain.Target{
			ID:          t.ID,
			Coord:       domain.Coordinates{Lat: t.Lat, Lon: t.Lon},
			StayMinutes: t.Stay,
		}
		// Absent flags default to optional with no fixed appointment.
		if t.Mandatory != nil {
			target.Mandatory = *t.Mandatory
		}
		if t.ExactTime != nil && *t.ExactTime != "" {
			minute, err := domain.ParseClock(*t.ExactTime)
			if err != nil {
				return nil, fmt.Errorf("target %q: invalid exact_time: %v", t.ID, err)
			}
			target.ExactMinute = &minute
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func toSolveResponse(plan domain.Plan) dto.SolveResponse {
	res := dto.SolveResponse{
		SolutionFound: plan.SolutionFound,
		Routes:        make([]dto.RouteResponse, 0, len(plan.Routes)),
	}
	for _, route := range plan.Routes {
		stops := make([]dto.StopResponse, 0, len(route.Stops))
		for _, s := range route.Stops {
			stops = append(stops, dto.StopResponse{
				RoutingIndex:   s.RoutingIndex,
				NodeID:         s.NodeID,
				NodeName:       s.NodeName,
				ArrivalTimeStr: s.ArrivalTime,
				ExactTime:      s.ExactTime,
				Mandatory:      s.Mandatory,
			})
		}
		res.Routes = append(res.Routes, dto.RouteResponse{
			VehicleID: route.VehicleIndex,
			Stops:     stops,
		})
	}
	return res
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}
