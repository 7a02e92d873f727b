package sudoku

import (
	"math"
	"math/rand"
	"time"
)

// AnnealingSolver is a Metropolis-Hastings simulated-annealing search. It
// operates on a completely-filled grid produced by a per-box fill phase
// and never reverts to candidate-set propagation afterward; moves are
// clue-safe, box-scoped swaps of two non-clue cells, so a clue's value
// can never be disturbed by a swap.
type AnnealingSolver struct {
	rng *rand.Rand

	temp0   float64
	cooling float64
	stop    float64

	lastResult Result
}

// AnnealingOption configures an AnnealingSolver at construction.
type AnnealingOption func(*AnnealingSolver)

// WithSeed makes the solver's randomness reproducible; without it, each
// solver gets an independent, non-deterministic seed.
func WithSeed(seed int64) AnnealingOption {
	return func(s *AnnealingSolver) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithCoolingSchedule overrides the default temp0=1.0, cooling=0.999,
// stop=1e-10 schedule.
func WithCoolingSchedule(temp0, cooling, stop float64) AnnealingOption {
	return func(s *AnnealingSolver) {
		s.temp0 = temp0
		s.cooling = cooling
		s.stop = stop
	}
}

// NewAnnealingSolver returns a ready-to-use AnnealingSolver.
func NewAnnealingSolver(opts ...AnnealingOption) *AnnealingSolver {
	s := &AnnealingSolver{
		temp0:   1.0,
		cooling: 0.999,
		stop:    1e-10,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Solve implements Solver. It fills every box, then repeatedly attempts a
// random intra-box swap, accepting improving moves always and worsening
// moves with Metropolis probability exp(-delta/temp), cooling temp by
// `cooling` after every step until it drops below `stop` or the deadline
// passes. On success it returns the zero-cost board; on failure the
// Result's Board is nil.
func (s *AnnealingSolver) Solve(board *Board, timeout time.Duration) Result {
	start := time.Now()
	deadline := start.Add(timeout)

	current := board.Copy()
	s.fillEmptyCells(current)

	currentCost := cost(current)
	best := current.Copy()
	bestCost := currentCost

	temp := s.temp0
	var cycles uint64
	success := currentCost == 0

	for !success && temp > s.stop && time.Now().Before(deadline) {
		cycles++
		addSearch()

		snapshot := current.Copy()
		newCost, ok := s.tryRandomSwap(current, currentCost)
		if !ok {
			// No swappable cell exists (e.g. every row/col already valid or
			// the board has no free cells at all); nothing more to do.
			break
		}
		delta := newCost - currentCost

		if delta <= 0 {
			currentCost = newCost
			if currentCost < bestCost {
				best = current.Copy()
				bestCost = currentCost
			}
		} else if s.rng.Float64() < math.Exp(-float64(delta)/temp) {
			currentCost = newCost
		} else {
			current = snapshot
		}

		if currentCost == 0 {
			success = true
		}
		temp *= s.cooling
	}

	result := Result{
		Success: success,
		Board:   best,
		Elapsed: time.Since(start),
		Cycles:  cycles,
	}
	if !success {
		result.Board = nil
	}
	s.lastResult = result
	return result
}

// Solution returns the Board produced by the most recent Solve call.
func (s *AnnealingSolver) Solution() *Board { return s.lastResult.Board }

// SolutionTime returns the elapsed time of the most recent Solve call.
func (s *AnnealingSolver) SolutionTime() time.Duration { return s.lastResult.Elapsed }

// Cycles returns the number of temperature steps taken in the most
// recent Solve call.
func (s *AnnealingSolver) Cycles() uint64 { return s.lastResult.Cycles }

// fillEmptyCells runs the fill phase: for each box, determine the symbols
// missing from its fixed cells, shuffle them, and ForceSetCell them onto
// the box's non-fixed cells. After this, every box contains each symbol
// exactly once; row/column conflicts may remain.
func (s *AnnealingSolver) fillEmptyCells(board *Board) {
	numUnits := board.NumUnits()
	for b := 0; b < numUnits; b++ {
		present := NewValueSet(numUnits)
		var emptyCells []int
		for k := 0; k < numUnits; k++ {
			cell := board.BoxCell(b, k)
			if board.Cell(cell).IsFixed() {
				present = present.Union(board.Cell(cell))
			} else {
				emptyCells = append(emptyCells, cell)
			}
		}
		missing := present.Complement().Values()
		s.rng.Shuffle(len(missing), func(i, j int) { missing[i], missing[j] = missing[j], missing[i] })
		for idx, cell := range emptyCells {
			board.ForceSetCell(cell, SingletonValueSet(numUnits, missing[idx]))
		}
	}
}

// cost returns the number of duplicate symbol occurrences summed across
// all rows and columns, plus 1 for every cell that is still not Fixed (a
// defensive contribution that never triggers after fillEmptyCells has
// run). Boxes are not examined: for a grid whose boxes each hold every
// symbol once, as after fillEmptyCells, cost == 0 iff the grid is a
// valid, complete Sudoku solution.
func cost(board *Board) int {
	numUnits := board.NumUnits()
	total := 0
	for i := 0; i < board.NumCells(); i++ {
		if !board.Cell(i).IsFixed() {
			total++
		}
	}
	for u := 0; u < numUnits; u++ {
		total += duplicateCount(board, board.RowCell, u, numUnits)
		total += duplicateCount(board, board.ColCell, u, numUnits)
	}
	return total
}

func duplicateCount(board *Board, unitCell func(u, k int) int, u, numUnits int) int {
	seen := make(map[int]bool, numUnits)
	dup := 0
	for k := 0; k < numUnits; k++ {
		cell := board.Cell(unitCell(u, k))
		if !cell.IsFixed() {
			continue
		}
		v := cell.Index()
		if seen[v] {
			dup++
		} else {
			seen[v] = true
		}
	}
	return dup
}

// localConflicts counts cells in i's row and column (excluding i) that
// share i's value.
func localConflicts(board *Board, i int) int {
	v := board.Cell(i)
	if !v.IsFixed() {
		return 0
	}
	numUnits := board.NumUnits()
	row := board.RowForCell(i)
	col := board.ColForCell(i)
	count := 0
	for k := 0; k < numUnits; k++ {
		rc := board.RowCell(row, k)
		if rc != i && board.Cell(rc).IsFixed() && board.Cell(rc).Index() == v.Index() {
			count++
		}
		cc := board.ColCell(col, k)
		if cc != i && board.Cell(cc).IsFixed() && board.Cell(cc).Index() == v.Index() {
			count++
		}
	}
	return count
}

// tryRandomSwap performs one safe swap move: it only considers non-clue
// cells lying in a row or column that currently has a duplicate, swaps
// one such cell with a uniformly chosen non-clue partner from the same
// box, and returns the incrementally-updated cost. It reports ok=false
// when no such pair exists (nothing to swap).
func (s *AnnealingSolver) tryRandomSwap(board *Board, currentCost int) (int, bool) {
	numUnits := board.NumUnits()

	dupRow := make([]bool, numUnits)
	dupCol := make([]bool, numUnits)
	for u := 0; u < numUnits; u++ {
		if duplicateCount(board, board.RowCell, u, numUnits) > 0 {
			dupRow[u] = true
		}
		if duplicateCount(board, board.ColCell, u, numUnits) > 0 {
			dupCol[u] = true
		}
	}

	var candidates []int
	for i := 0; i < board.NumCells(); i++ {
		if board.IsClue(i) {
			continue
		}
		if dupRow[board.RowForCell(i)] || dupCol[board.ColForCell(i)] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return currentCost, false
	}
	i1 := candidates[s.rng.Intn(len(candidates))]
	box := board.BoxForCell(i1)

	var partners []int
	for k := 0; k < numUnits; k++ {
		cell := board.BoxCell(box, k)
		if cell != i1 && !board.IsClue(cell) {
			partners = append(partners, cell)
		}
	}
	if len(partners) == 0 {
		return currentCost, false
	}
	i2 := partners[s.rng.Intn(len(partners))]

	before := localConflicts(board, i1) + localConflicts(board, i2)

	v1, v2 := board.Cell(i1), board.Cell(i2)
	board.ForceSetCell(i1, v2)
	board.ForceSetCell(i2, v1)

	after := localConflicts(board, i1) + localConflicts(board, i2)

	return currentCost + (after - before), true
}

// CleanDuplicates erases (sets to Empty) one cell from each group of
// duplicate values in every row and column, preferring to erase the cell
// with the highest total duplicate participation. It is never invoked
// automatically by Solve: the result is only useful if a further solver
// stage re-fills the erased cells.
func (s *AnnealingSolver) CleanDuplicates(board *Board) {
	numUnits := board.NumUnits()
	score := make([]int, board.NumCells())

	tally := func(unitCell func(u, k int) int) {
		for u := 0; u < numUnits; u++ {
			counts := make(map[int][]int, numUnits)
			for k := 0; k < numUnits; k++ {
				cell := unitCell(u, k)
				v := board.Cell(cell)
				if !v.IsFixed() {
					continue
				}
				counts[v.Index()] = append(counts[v.Index()], cell)
			}
			for _, cells := range counts {
				if len(cells) <= 1 {
					continue
				}
				for _, cell := range cells {
					score[cell] += len(cells) - 1
				}
			}
		}
	}
	tally(board.RowCell)
	tally(board.ColCell)

	erase := func(unitCell func(u, k int) int) {
		for u := 0; u < numUnits; u++ {
			counts := make(map[int][]int, numUnits)
			for k := 0; k < numUnits; k++ {
				cell := unitCell(u, k)
				v := board.Cell(cell)
				if !v.IsFixed() {
					continue
				}
				counts[v.Index()] = append(counts[v.Index()], cell)
			}
			for _, cells := range counts {
				if len(cells) <= 1 {
					continue
				}
				worst := cells[0]
				for _, c := range cells[1:] {
					if score[c] > score[worst] {
						worst = c
					}
				}
				if board.cells[worst].IsFixed() {
					board.numFixed--
				}
				board.cells[worst] = NewValueSet(numUnits)
			}
		}
	}
	erase(board.RowCell)
	erase(board.ColCell)
}
