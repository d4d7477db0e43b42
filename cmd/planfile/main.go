package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"visit-routing-service/internal/adapters/distance"
	"visit-routing-service/internal/adapters/ingest"
	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/services"
	"visit-routing-service/internal/solver"
)

// planfile runs one offline solve from CSV inputs and prints the plan as
// JSON. It uses the geodesic estimator only, so it needs no network or API
// key; useful for smoke-testing datasets before loading them into the
// service.
func main() {
	branchPath := flag.String("branch", "branch.csv", "branch CSV file (ID,Lat,Lon)")
	targetsPath := flag.String("targets", "targets.csv", "targets CSV file (ID,Lat,Lon,Stay)")
	startDate := flag.String("start", "", "first planning date (YYYY-MM-DD)")
	endDate := flag.String("end", "", "last planning date (YYYY-MM-DD)")
	vehicles := flag.Int("vehicles", 1, "number of vehicles")
	budget := flag.Duration("budget", 10*time.Second, "solver time budget")
	seed := flag.Int64("seed", 1, "rng seed for estimator and solver")
	flag.Parse()

	if *startDate == "" || *endDate == "" {
		log.Fatal("both -start and -end are required")
	}

	branchFile, err := os.Open(*branchPath)
	if err != nil {
		log.Fatal(err)
	}
	defer branchFile.Close()
	branch, err := ingest.LoadBranchCSV(branchFile)
	if err != nil {
		log.Fatal(err)
	}

	targetsFile, err := os.Open(*targetsPath)
	if err != nil {
		log.Fatal(err)
	}
	defer targetsFile.Close()
	targets, err := ingest.LoadTargetsCSV(targetsFile)
	if err != nil {
		log.Fatal(err)
	}

	fleet := make([]domain.Vehicle, *vehicles)
	for i := range fleet {
		fleet[i] = domain.Vehicle{ID: string(rune('A' + i))}
	}

	// Every weekday open 08:00-19:00, matching the depot default.
	windows := map[string][]string{}
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"} {
		windows[day] = []string{"08:00", "19:00"}
	}

	planner := &services.Planner{
		Provider: distance.NewGeodesicEstimator(*seed),
		Solver:   solver.New(*seed),
	}

	plan, err := planner.Solve(context.Background(), services.PlanRequest{
		Branch:         branch,
		Targets:        targets,
		DateRange:      services.DateRange{StartDate: *startDate, EndDate: *endDate},
		WeekdayWindows: windows,
		Vehicles:       fleet,
		Timeout:        *budget,
	})
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		log.Fatal(err)
	}
}
