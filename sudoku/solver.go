package sudoku

import "time"

// Result is returned by every Solver: whether the search succeeded, the
// resulting Board (only meaningful on success), how long the search ran,
// and how many search iterations it took (a BacktrackSolver branch
// attempted, an AntSystemSolver cycle completed, or an AnnealingSolver
// temperature step).
type Result struct {
	Success bool
	Board   *Board
	Elapsed time.Duration
	Cycles  uint64
}

// Solver solves a propagated Board within a deadline, returning a
// completed Board on success or a failure Result on timeout/exhaustion.
// No partial board is ever returned on failure.
type Solver interface {
	Solve(board *Board, timeout time.Duration) Result
}

// statsCounters holds the package-level instrumentation toggled by
// EnableStats/WithStats.
type statsCounters struct {
	NumAssigns  uint64 // one per SetCell call that assigns a cell
	NumSearches uint64 // one per search branch/rollout/temperature step
}

// Reset zeroes the counters.
func (s *statsCounters) Reset() {
	s.NumAssigns = 0
	s.NumSearches = 0
}

// Stats exposes the running counters; read it after a solve (or inside a
// WithStats callback) to inspect solver behavior. It is only updated
// while EnableStats is set.
var Stats statsCounters

// EnableStats turns on the (negligible-cost) counters in Stats; while it
// is false, solving leaves Stats untouched. Callers are expected to call
// Stats.Reset() around the region they care about.
var EnableStats bool

// WithStats runs fn with EnableStats set, restoring the previous value
// afterward. It does not reset Stats; callers should call Stats.Reset()
// first if they want a clean count.
func WithStats(fn func()) {
	prev := EnableStats
	EnableStats = true
	defer func() { EnableStats = prev }()
	fn()
}

func addAssign() {
	if EnableStats {
		Stats.NumAssigns++
	}
}

func addSearch() {
	if EnableStats {
		Stats.NumSearches++
	}
}
