// Package mznout parses the semi-structured textual output of a MiniZinc
// solver run and classifies the run's outcome.
package mznout

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/mzbench/mzbench/model"
)

// Markers printed by MiniZinc on stdout.
const (
	solutionMarker = "----------"
	completeMarker = "=========="
	unsatMarker    = "=====UNSATISFIABLE====="
	errorMarker    = "=====ERROR====="
	unknownMarker  = "=====UNKNOWN====="
)

// ParseError reports output that is fundamentally unparseable, e.g.
// completely empty. Missing individual statistics are not parse errors.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "unparseable solver output: " + e.Reason
}

// statLine matches both the structured statistic form
// "%%%mzn-stat: nodes=1234" and the loose "nodes = 1234" form some
// solvers emit, with an optional unit suffix.
var statLine = regexp.MustCompile(`^\s*(?:%+\s*)?(?:mzn-stat:\s*)?([A-Za-z][A-Za-z_]*)\s*[=:]\s*([0-9][0-9.,'_ ]*)\s*(ms|s|kb|mb|KB|MB)?\s*$`)

// Extract parses solver stdout into a normalized statistics record.
// Unknown lines are ignored; statistics the solver did not report stay
// nil. When the same statistic appears more than once (per-solution and
// final reports) the last occurrence wins. A *ParseError is returned
// only for empty output.
func Extract(stdout string) (model.StatRecord, error) {
	var rec model.StatRecord

	if strings.TrimSpace(stdout) == "" {
		return rec, &ParseError{Reason: "empty output"}
	}

	scanner := bufio.NewScanner(strings.NewReader(stdout))
	complete := false
	for scanner.Scan() {
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case solutionMarker:
			rec.Solutions++
			rec.SolutionFound = true
			continue
		case completeMarker:
			complete = true
			continue
		case unknownMarker, errorMarker:
			// Termination markers carry no statistics; the
			// classifier picks them up from the raw output.
			continue
		}

		m := statLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		applyStat(&rec, m[1], m[2], strings.ToLower(m[3]))
	}

	// The search-complete marker only certifies optimality when a
	// solution was actually printed before it.
	rec.IsOptimal = complete && rec.SolutionFound

	return rec, nil
}

// applyStat folds one recognized statistic line into the record. Labels
// are matched case-insensitively; unrecognized labels are skipped.
func applyStat(rec *model.StatRecord, label, value, unit string) {
	switch strings.ToLower(strings.ReplaceAll(label, "_", "")) {
	case "solvetime", "time":
		if ms, ok := parseMillis(value, unit); ok {
			rec.SolveTimeMS = &ms
		}
	case "nodes":
		if v, ok := parseCount(value); ok {
			rec.Nodes = &v
		}
	case "failures", "fails":
		if v, ok := parseCount(value); ok {
			rec.Failures = &v
		}
	case "propagations", "propagates":
		if v, ok := parseCount(value); ok {
			rec.Propagations = &v
		}
	case "peakmem", "peakmemory":
		if v, ok := parseMemKB(value, unit); ok {
			rec.PeakMemKB = &v
		}
	}
}

// parseMillis converts a solve-time value to milliseconds. Values carry
// an optional unit suffix; unitless values follow the mzn-stat
// convention of seconds.
func parseMillis(value, unit string) (float64, bool) {
	f, ok := parseDecimal(value)
	if !ok {
		return 0, false
	}
	if unit == "ms" {
		return f, true
	}
	return f * 1000, true
}

// parseMemKB converts a peak-memory value to KB. The mzn-stat peakMem
// statistic reports MB; an explicit unit suffix overrides that.
func parseMemKB(value, unit string) (int64, bool) {
	f, ok := parseDecimal(value)
	if !ok {
		return 0, false
	}
	if unit == "kb" {
		return int64(f), true
	}
	return int64(f * 1024), true
}

// parseCount parses an integer statistic, tolerating digit grouping with
// commas, apostrophes, underscores or spaces.
func parseCount(value string) (int64, bool) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ',', '\'', '_', ' ':
			return -1
		}
		return r
	}, value)
	v, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseDecimal parses a floating-point statistic, accepting a comma as
// locale decimal separator when no dot is present.
func parseDecimal(value string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if strings.Contains(s, ",") {
		if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			// Commas alongside a dot (or repeated) are digit grouping.
			s = strings.ReplaceAll(s, ",", "")
		}
	}
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "_", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
