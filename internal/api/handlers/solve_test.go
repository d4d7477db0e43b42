package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"visit-routing-service/internal/adapters/distance"
	"visit-routing-service/internal/api/dto"
	"visit-routing-service/internal/solver"
)

func newSolveHandler() *SolveHandler {
	return &SolveHandler{
		Solver:    solver.New(1),
		Estimator: distance.NewGeodesicEstimator(1),
	}
}

const solveBody = `{
	"branch": {"id": "Branch", "lat": 40.1923, "lon": 29.0644},
	"targets": [
		{"id": "clinic-a", "lat": 40.2, "lon": 29.07, "stay": 20, "mandatory": true},
		{"id": "clinic-b", "lat": 40.21, "lon": 29.05, "stay": 15, "exact_time": "10:30"}
	],
	"date_range": {"start_date": "2026-01-05", "end_date": "2026-01-05"},
	"weekday_time_windows": {"Monday": ["08:00", "18:00"]},
	"vehicles": [{"id": "truck-1"}],
	"timeout_seconds": 1
}`

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSolveEndpoint(t *testing.T) {
	rec := postJSON(t, newSolveHandler().Solve, solveBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.SolveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.SolutionFound {
		t.Fatal("expected a solution")
	}
	if len(res.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(res.Routes))
	}

	stops := res.Routes[0].Stops
	if len(stops) < 2 {
		t.Fatalf("route has %d stops", len(stops))
	}
	if first := stops[0]; first.NodeName != "Depot" || first.NodeID != 0 || first.Mandatory != "-" {
		t.Fatalf("depot start = %+v", first)
	}

	byName := map[string]dto.StopResponse{}
	for _, s := range stops {
		byName[s.NodeName] = s
	}
	a, ok := byName["clinic-a"]
	if !ok || a.Mandatory != "MANDATORY" || a.ExactTime != "no_exact" {
		t.Fatalf("clinic-a stop = %+v (present=%v)", a, ok)
	}
	if b, ok := byName["clinic-b"]; ok {
		if b.ExactTime != "10:30" || b.ArrivalTimeStr != "10:30" {
			t.Fatalf("clinic-b stop = %+v", b)
		}
	}
}

func TestSolveEndpointRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{"},
		{name: "unknown field", body: `{"branches": {}}`},
		{name: "two documents", body: `{} {}`},
		{
			name: "malformed exact time",
			body: strings.Replace(solveBody, `"10:30"`, `"25:99"`, 1),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := postJSON(t, newSolveHandler().Solve, c.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSolveEndpointMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/solve", nil)
	rec := httptest.NewRecorder()
	newSolveHandler().Solve(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow header = %q", allow)
	}
}

func TestReplanEndpointAllHolidayHorizon(t *testing.T) {
	body := `{
		"branch": {"id": "Branch", "lat": 40.1923, "lon": 29.0644},
		"targets": [
			{"id": "clinic-a", "lat": 40.2, "lon": 29.07, "stay": 20, "mandatory": true}
		],
		"date_range": {"start_date": "2026-01-05", "end_date": "2026-01-05"},
		"holidays": ["2026-01-05"],
		"weekday_time_windows": {"Monday": ["08:00", "18:00"]},
		"vehicles": [{"id": "truck-1"}],
		"timeout_seconds": 1,
		"prev_targets": [
			{"id": "clinic-a", "lat": 40.2, "lon": 29.07, "stay": 20, "mandatory": true}
		],
		"prev_routes": [[0, 1, 0]],
		"vehicle_positions": [{"current_time": 600}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/replan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newSolveHandler().Replan(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ReplanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ReplanStatus != "infeasible" {
		t.Fatalf("replan_status = %q, want infeasible", res.ReplanStatus)
	}
	if res.SolutionFound || len(res.Routes) != 0 {
		t.Fatalf("all-holiday horizon must degrade to an empty plan, got %+v", res)
	}
}

func TestReplanEndpointStatusField(t *testing.T) {
	body := `{
		"branch": {"id": "Branch", "lat": 40.1923, "lon": 29.0644},
		"targets": [
			{"id": "clinic-a", "lat": 40.2, "lon": 29.07, "stay": 20, "mandatory": true}
		],
		"date_range": {"start_date": "2026-01-05", "end_date": "2026-01-05"},
		"weekday_time_windows": {"Monday": ["08:00", "18:00"]},
		"vehicles": [{"id": "truck-1"}],
		"timeout_seconds": 1,
		"prev_targets": [
			{"id": "clinic-a", "lat": 40.2, "lon": 29.07, "stay": 20, "mandatory": true}
		],
		"prev_routes": [[0, 1, 0]],
		"vehicle_positions": [{"current_time": 600}]
	}`

	req := httptest.NewRequest(http.MethodPost, "/replan", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newSolveHandler().Replan(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.ReplanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.ReplanStatus != "solved" {
		t.Fatalf("replan_status = %q, want solved", res.ReplanStatus)
	}
	if !res.SolutionFound {
		t.Fatal("expected a solution")
	}
	if got := res.Routes[0].Stops[0].ArrivalTimeStr; got != "10:00" {
		t.Fatalf("pinned departure = %s, want 10:00", got)
	}
}
