package model

// StatRecord holds the statistics extracted from one solver run's output.
// Numeric fields are pointers: nil means the solver did not report the
// statistic, which must never be conflated with a reported zero.
type StatRecord struct {
	// Solve time reported by the solver, in milliseconds
	SolveTimeMS *float64 `json:"solve_time_ms,omitempty"`
	// Search nodes explored
	Nodes *int64 `json:"nodes,omitempty"`
	// Constraint propagations performed
	Propagations *int64 `json:"propagations,omitempty"`
	// Failed nodes (backtracks)
	Failures *int64 `json:"failures,omitempty"`
	// Peak memory use in KB
	PeakMemKB *int64 `json:"peak_memory_kb,omitempty"`
	// Whether at least one solution separator was printed
	SolutionFound bool `json:"solution_found"`
	// Whether the search-complete marker accompanied a solution
	IsOptimal bool `json:"is_optimal"`
	// Number of solutions printed
	Solutions int `json:"solutions"`
}

// HasData reports whether the record carries anything usable: a solution
// marker or at least one reported statistic. A run that exited non-zero
// without usable data is a solver error, not a parse problem.
func (r StatRecord) HasData() bool {
	return r.SolutionFound ||
		r.Solutions > 0 ||
		r.SolveTimeMS != nil ||
		r.Nodes != nil ||
		r.Propagations != nil ||
		r.Failures != nil ||
		r.PeakMemKB != nil
}
