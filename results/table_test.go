package results

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mzbench/mzbench/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int64) *int64       { return &v }

func sampleRows() []model.ResultRow {
	return []model.ResultRow{
		{
			Spec:    model.RunSpec{Seq: 0, Model: "m1", Instance: "n8", Repetition: 1},
			Outcome: model.OutcomeSolved,
			Stats: model.StatRecord{
				SolveTimeMS:   floatPtr(12),
				Nodes:         intPtr(1234),
				Propagations:  intPtr(9876),
				Failures:      intPtr(5),
				PeakMemKB:     intPtr(2048),
				SolutionFound: true,
				IsOptimal:     true,
				Solutions:     1,
			},
			Elapsed: 250 * time.Millisecond,
		},
		{
			Spec:    model.RunSpec{Seq: 1, Model: "m1", Instance: "n50", Repetition: 1},
			Outcome: model.OutcomeTimeout,
			Elapsed: 5 * time.Second,
		},
	}
}

func TestTable_AppendFlush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table, err := Create(path)
	require.NoError(t, err)

	for _, row := range sampleRows() {
		table.Append(row)
	}
	require.NoError(t, table.Flush())
	require.NoError(t, table.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, Header, records[0])

	require.Equal(t, "0", records[1][0])
	require.Equal(t, "m1", records[1][1])
	require.Equal(t, "n8", records[1][2])
	require.Equal(t, "SOLVED", records[1][4])
	require.Equal(t, "12", records[1][5])

	// Unreported statistics are empty fields, not zeros.
	require.Equal(t, "TIMEOUT", records[2][4])
	require.Equal(t, "", records[2][5])
	require.Equal(t, "", records[2][6])
	require.Equal(t, "5.0000", records[2][13])
}

func TestTable_FlushIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table, err := Create(path)
	require.NoError(t, err)
	defer table.Close()

	for _, row := range sampleRows() {
		table.Append(row)
	}

	require.NoError(t, table.Flush())
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, table.Flush())
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, first, second)

	// Appending after the double flush still only writes the new row.
	table.Append(model.ResultRow{
		Spec:    model.RunSpec{Seq: 2, Model: "m2", Instance: "n8", Repetition: 1},
		Outcome: model.OutcomeSolverError,
	})
	require.NoError(t, table.Flush())

	third, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 4, strings.Count(string(third), "\n"))
}

func TestTable_LoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	table, err := Create(path)
	require.NoError(t, err)

	rows := sampleRows()
	for _, row := range rows {
		table.Append(row)
	}
	require.NoError(t, table.Close())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, rows, loaded)
}

func TestLoad_RejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSortBySeq(t *testing.T) {
	rows := []model.ResultRow{
		{Spec: model.RunSpec{Seq: 2}},
		{Spec: model.RunSpec{Seq: 0}},
		{Spec: model.RunSpec{Seq: 1}},
	}
	sorted := SortBySeq(rows)
	for i, row := range sorted {
		require.Equal(t, i, row.Spec.Seq)
	}
	// Input order untouched.
	require.Equal(t, 2, rows[0].Spec.Seq)
}
