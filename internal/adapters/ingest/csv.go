package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"visit-routing-service/internal/domain"
)

// LoadBranchCSV reads depot information from a CSV source with columns
// ID, Lat, Lon. The first data row is used; an empty source is a
// validation failure.
func LoadBranchCSV(r io.Reader) (domain.Branch, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("load branch csv: %w", err)
	}
	if err := requireColumns(header, "ID", "Lat", "Lon"); err != nil {
		return domain.Branch{}, fmt.Errorf("load branch csv: %w", err)
	}
	if len(rows) == 0 {
		return domain.Branch{}, errors.New("load branch csv: no branch row present")
	}

	row := rows[0]
	lat, err := strconv.ParseFloat(row[header["Lat"]], 64)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("load branch csv: parse Lat: %w", err)
	}
	lon, err := strconv.ParseFloat(row[header["Lon"]], 64)
	if err != nil {
		return domain.Branch{}, fmt.Errorf("load branch csv: parse Lon: %w", err)
	}

	return domain.Branch{
		ID:    row[header["ID"]],
		Coord: domain.Coordinates{Lat: lat, Lon: lon},
	}, nil
}

// LoadTargetsCSV reads visit targets from a CSV source with columns
// ID, Lat, Lon, Stay (stay duration in whole minutes), one row per target.
func LoadTargetsCSV(r io.Reader) ([]domain.Target, error) {
	rows, header, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("load targets csv: %w", err)
	}
	if err := requireColumns(header, "ID", "Lat", "Lon", "Stay"); err != nil {
		return nil, fmt.Errorf("load targets csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("load targets csv: no target rows present")
	}

	targets := make([]domain.Target, 0, len(rows))
	for i, row := range rows {
		lat, err := strconv.ParseFloat(row[header["Lat"]], 64)
		if err != nil {
			return nil, fmt.Errorf("load targets csv: row %d: parse Lat: %w", i+1, err)
		}
		lon, err := strconv.ParseFloat(row[header["Lon"]], 64)
		if err != nil {
			return nil, fmt.Errorf("load targets csv: row %d: parse Lon: %w", i+1, err)
		}
		stay, err := strconv.Atoi(row[header["Stay"]])
		if err != nil {
			return nil, fmt.Errorf("load targets csv: row %d: parse Stay: %w", i+1, err)
		}

		targets = append(targets, domain.Target{
			ID:          row[header["ID"]],
			Coord:       domain.Coordinates{Lat: lat, Lon: lon},
			StayMinutes: stay,
		})
	}

	return targets, nil
}

func readAll(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, errors.New("csv source is empty")
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[name] = i
	}
	return records[1:], header, nil
}

func requireColumns(header map[string]int, names ...string) error {
	for _, name := range names {
		if _, ok := header[name]; !ok {
			return fmt.Errorf("missing required column %q", name)
		}
	}
	return nil
}
