package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/hydrograf/hydrolog/pkg/hydroerr"
)

// readRainfall parses a rainfall series from a CSV file. Rows carry
// either a single depth column [mm] or a (time_min, depth_mm) pair; a
// non-numeric first row is treated as a header. The timestep comes
// from the -timestep flag, or is inferred from the time column.
func readRainfall(filename string, timestepMin float64) ([]float64, float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	var depths []float64
	var times []float64
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		first, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, 0, fmt.Errorf("line %d: %w", i+1, err)
		}
		switch len(rec) {
		case 1:
			depths = append(depths, first)
		default:
			depth, err := strconv.ParseFloat(rec[1], 64)
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %w", i+1, err)
			}
			times = append(times, first)
			depths = append(depths, depth)
		}
	}
	if len(depths) == 0 {
		return nil, 0, hydroerr.InvalidParam("rainfall", 0, "file contains no depth rows")
	}

	step := timestepMin
	if step == 0 {
		if len(times) < 2 {
			return nil, 0, hydroerr.InvalidParam("timestep_min", 0,
				"pass -timestep or provide a time column to infer it from")
		}
		step = times[1] - times[0]
	}
	if step <= 0 {
		return nil, 0, hydroerr.MustBePositive("timestep_min", step)
	}
	return depths, step, nil
}
