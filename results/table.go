package results

// This file contains the result table aggregator: an append-only,
// incrementally flushed CSV-backed table of per-run results.

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/mzbench/mzbench/model"
)

// Header is the fixed column set of the result file.
var Header = []string{
	"seq", "model", "instance", "repetition", "outcome",
	"solve_time_ms", "nodes", "propagations", "failures", "peak_memory_kb",
	"solutions", "solution_found", "is_optimal", "elapsed_s",
}

// Table is the session's result aggregator. It is the only mutable
// state shared across workers; Append and Flush serialize all access.
// Rows already written by a Flush are never rewritten, so the file is
// append-safe and survives interruption.
type Table struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	writer  *csv.Writer
	rows    []model.ResultRow
	flushed int
}

// Create opens a new result file at path and writes the header row.
func Create(path string) (*Table, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create result file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write result header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, err
	}

	return &Table{
		path:   path,
		file:   f,
		writer: w,
	}, nil
}

// Path returns the result file path.
func (t *Table) Path() string {
	return t.path
}

// Append adds one completed run to the table. Safe for concurrent use.
func (t *Table) Append(row model.ResultRow) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, row)
}

// Flush writes every not-yet-persisted row to the result file. Calling
// Flush twice without an intervening Append leaves the file unchanged.
func (t *Table) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, row := range t.rows[t.flushed:] {
		if err := t.writer.Write(record(row)); err != nil {
			return fmt.Errorf("failed to write result row: %w", err)
		}
		t.flushed++
	}

	t.writer.Flush()
	if err := t.writer.Error(); err != nil {
		return err
	}
	return t.file.Sync()
}

// Close flushes any remaining rows and closes the file.
func (t *Table) Close() error {
	if err := t.Flush(); err != nil {
		t.file.Close()
		return err
	}
	return t.file.Close()
}

// Rows returns a snapshot of the accumulated rows in completion order.
func (t *Table) Rows() []model.ResultRow {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.ResultRow, len(t.rows))
	copy(out, t.rows)
	return out
}

// SortBySeq returns rows sorted into enumeration order.
func SortBySeq(rows []model.ResultRow) []model.ResultRow {
	out := make([]model.ResultRow, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Spec.Seq < out[j].Spec.Seq
	})
	return out
}

// record flattens one row into CSV fields. Unreported statistics become
// empty fields, never zeros.
func record(row model.ResultRow) []string {
	return []string{
		strconv.Itoa(row.Spec.Seq),
		row.Spec.Model,
		row.Spec.Instance,
		strconv.Itoa(row.Spec.Repetition),
		string(row.Outcome),
		formatFloat(row.Stats.SolveTimeMS),
		formatInt(row.Stats.Nodes),
		formatInt(row.Stats.Propagations),
		formatInt(row.Stats.Failures),
		formatInt(row.Stats.PeakMemKB),
		strconv.Itoa(row.Stats.Solutions),
		strconv.FormatBool(row.Stats.SolutionFound),
		strconv.FormatBool(row.Stats.IsOptimal),
		fmt.Sprintf("%.4f", row.Elapsed.Seconds()),
	}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}
