package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"visit-routing-service/internal/domain"
	"visit-routing-service/internal/metrics"
	"visit-routing-service/internal/platform/obs"
	"visit-routing-service/internal/ports"
)

type matrixRow struct {
	row    int
	values []int
	err    error
}

// BuildCostMatrix produces the full pairwise travel-time matrix over depot
// plus targets, in whole minutes. Row 0 and column 0 are the depot; the
// diagonal is always zero. The matrix is not guaranteed symmetric: the
// provider may be directionally biased.
//
// Rows fan out over a bounded worker pool so one slow external lookup does
// not serialize the whole build. Per-pair failures are the provider's
// responsibility to degrade; an error here means the provider gave up
// entirely for a pair.
func BuildCostMatrix(
	ctx context.Context,
	branch domain.Branch,
	targets []domain.Target,
	provider ports.DistanceProvider,
) (_ [][]int, err error) {
	defer obs.Time(ctx, "services.BuildCostMatrix")(&err)
	timer := metrics.TimeMatrixBuild()
	defer timer()

	coords := make([]domain.Coordinates, 0, len(targets)+1)
	coords = append(coords, branch.Coord)
	for _, t := range targets {
		coords = append(coords, t.Coord)
	}

	n := len(coords)
	matrix := make([][]int, n)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	rowsCh := make(chan matrixRow, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(row int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			values := make([]int, n)
			for j := 0; j < n; j++ {
				if row == j {
					continue
				}
				minutes, e := provider.TravelTime(ctx, coords[row], coords[j])
				if e != nil {
					rowsCh <- matrixRow{row: row, err: fmt.Errorf("build cost matrix: travel time %d -> %d: %w", row, j, e)}
					cancel()
					return
				}
				values[j] = int(math.Round(minutes))
			}
			rowsCh <- matrixRow{row: row, values: values}
		}(i)
	}

	wg.Wait()
	close(rowsCh)

	var buildErr error
	for r := range rowsCh {
		if r.err != nil {
			if buildErr == nil {
				buildErr = r.err
			}
			continue
		}
		matrix[r.row] = r.values
	}
	if buildErr != nil {
		return nil, buildErr
	}

	return matrix, nil
}
