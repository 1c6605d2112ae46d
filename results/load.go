package results

// This file contains loading of previously written result files, used
// by the summary command.

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mzbench/mzbench/model"
)

// Load reads a result file back into rows. The header is verified
// against the fixed column set.
func Load(path string) ([]model.ResultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read result file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("result file %s has no header", path)
	}
	if len(records[0]) != len(Header) || records[0][0] != Header[0] {
		return nil, fmt.Errorf("result file %s has an unexpected header", path)
	}

	rows := make([]model.ResultRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("result file %s row %d: %w", path, i+1, err)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseRow(rec []string) (model.ResultRow, error) {
	var row model.ResultRow
	var err error

	if row.Spec.Seq, err = strconv.Atoi(rec[0]); err != nil {
		return row, fmt.Errorf("bad seq %q", rec[0])
	}
	row.Spec.Model = rec[1]
	row.Spec.Instance = rec[2]
	if row.Spec.Repetition, err = strconv.Atoi(rec[3]); err != nil {
		return row, fmt.Errorf("bad repetition %q", rec[3])
	}
	row.Outcome = model.Outcome(rec[4])

	if row.Stats.SolveTimeMS, err = parseOptFloat(rec[5]); err != nil {
		return row, err
	}
	if row.Stats.Nodes, err = parseOptInt(rec[6]); err != nil {
		return row, err
	}
	if row.Stats.Propagations, err = parseOptInt(rec[7]); err != nil {
		return row, err
	}
	if row.Stats.Failures, err = parseOptInt(rec[8]); err != nil {
		return row, err
	}
	if row.Stats.PeakMemKB, err = parseOptInt(rec[9]); err != nil {
		return row, err
	}
	if row.Stats.Solutions, err = strconv.Atoi(rec[10]); err != nil {
		return row, fmt.Errorf("bad solutions %q", rec[10])
	}
	if row.Stats.SolutionFound, err = strconv.ParseBool(rec[11]); err != nil {
		return row, fmt.Errorf("bad solution_found %q", rec[11])
	}
	if row.Stats.IsOptimal, err = strconv.ParseBool(rec[12]); err != nil {
		return row, fmt.Errorf("bad is_optimal %q", rec[12])
	}

	elapsed, err := strconv.ParseFloat(rec[13], 64)
	if err != nil {
		return row, fmt.Errorf("bad elapsed_s %q", rec[13])
	}
	row.Elapsed = time.Duration(elapsed * float64(time.Second))

	return row, nil
}

func parseOptFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("bad numeric field %q", s)
	}
	return &v, nil
}

func parseOptInt(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad integer field %q", s)
	}
	return &v, nil
}
