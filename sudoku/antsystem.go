package sudoku

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// AntSystemSolver is an Ant Colony System search: nAnts artificial ants
// each build a complete (possibly conflicting) assignment per cycle,
// guided by a pheromone matrix indexed by (cell, value) and a
// conflict-based heuristic, scored with the same cost function
// AnnealingSolver uses.
type AntSystemSolver struct {
	nAnts int
	q0    float64
	rho   float64
	evap  float64
	rng   *rand.Rand

	lastResult Result
}

// AntSystemOption configures an AntSystemSolver at construction.
type AntSystemOption func(*AntSystemSolver)

// WithAntSeed makes the solver's randomness reproducible.
func WithAntSeed(seed int64) AntSystemOption {
	return func(s *AntSystemSolver) { s.rng = rand.New(rand.NewSource(seed)) }
}

// NewAntSystemSolver returns a ready-to-use AntSystemSolver. nAnts is the
// colony size per cycle; q0 is the exploitation probability; rho is the
// local evaporation rate; evap is the global evaporation/deposit rate,
// matching the CLI's --ants/--q0/--rho/--evap flags.
func NewAntSystemSolver(nAnts int, q0, rho, evap float64, opts ...AntSystemOption) *AntSystemSolver {
	s := &AntSystemSolver{nAnts: nAnts, q0: q0, rho: rho, evap: evap}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Solve implements Solver. One cycle runs nAnts independent rollouts from
// a fresh copy of the propagated input board; it terminates successfully
// the instant any ant's grid scores cost==0 and passes CheckSolution
// against the input board, otherwise it loops cycles,
// depositing pheromone along the cycle's best ant's path, until the
// deadline passes.
func (s *AntSystemSolver) Solve(board *Board, timeout time.Duration) Result {
	start := time.Now()
	deadline := start.Add(timeout)

	numCells := board.NumCells()
	numUnits := board.NumUnits()
	tau0 := 1.0 / float64(numCells)

	pheromone := make([][]float64, numCells)
	for i := range pheromone {
		row := make([]float64, numUnits)
		for j := range row {
			row[j] = tau0
		}
		pheromone[i] = row
	}

	order := mostConstrainedOrder(board)

	var cycles uint64
	var best *Board
	bestCost := math.MaxInt32
	success := false

	for !success && time.Now().Before(deadline) {
		cycles++

		var cycleBest *Board
		cycleBestCost := math.MaxInt32

		for ant := 0; ant < s.nAnts && !success; ant++ {
			addSearch()
			antBoard := board.Copy()
			s.rollout(antBoard, order, pheromone, tau0)
			c := cost(antBoard)
			if c < cycleBestCost {
				cycleBestCost = c
				cycleBest = antBoard
			}
			// cost ignores boxes, so a zero-cost grid is also checked as a
			// full solution before it counts as success.
			if c == 0 && board.CheckSolution(antBoard) {
				success = true
				best = antBoard
				bestCost = 0
			}
		}

		if !success && cycleBest != nil {
			if cycleBestCost < bestCost {
				bestCost = cycleBestCost
				best = cycleBest
			}
			s.depositGlobal(cycleBest, pheromone, cycleBestCost)
		}
	}

	result := Result{
		Success: success,
		Elapsed: time.Since(start),
		Cycles:  cycles,
	}
	if success {
		result.Board = best
	}
	s.lastResult = result
	return result
}

// Solution returns the Board produced by the most recent Solve call.
func (s *AntSystemSolver) Solution() *Board { return s.lastResult.Board }

// SolutionTime returns the elapsed time of the most recent Solve call.
func (s *AntSystemSolver) SolutionTime() time.Duration { return s.lastResult.Elapsed }

// Cycles returns the number of completed ant-colony cycles in the most
// recent Solve call.
func (s *AntSystemSolver) Cycles() uint64 { return s.lastResult.Cycles }

// mostConstrainedOrder returns the board's non-Fixed cells ordered by
// ascending candidate count, the same heuristic BacktrackSolver uses for
// its single active cell, applied here as a static visiting order for a
// whole rollout (rollouts never propagate, so candidate counts don't
// change as ants assign cells).
func mostConstrainedOrder(board *Board) []int {
	var cells []int
	for i := 0; i < board.NumCells(); i++ {
		if !board.Cell(i).IsFixed() {
			cells = append(cells, i)
		}
	}
	sort.SliceStable(cells, func(a, b int) bool {
		return board.Cell(cells[a]).Count() < board.Cell(cells[b]).Count()
	})
	return cells
}

// rollout assigns every cell in order using the standard ACS
// pseudorandom-proportional rule: with probability q0 it exploits the
// best-scoring candidate (pheromone * heuristic); otherwise it samples
// proportionally to score. Each placement bypasses propagation (rawSet)
// and immediately applies local pheromone evaporation.
func (s *AntSystemSolver) rollout(board *Board, order []int, pheromone [][]float64, tau0 float64) {
	numUnits := board.NumUnits()
	for _, cell := range order {
		candidates := board.Cell(cell).Values()
		if len(candidates) == 0 {
			continue
		}

		scores := make([]float64, len(candidates))
		total := 0.0
		bestVal, bestScore := candidates[0], -1.0
		for idx, value := range candidates {
			conflicts := conflictsForValue(board, cell, value)
			eta := 1.0 / float64(conflicts+1)
			score := pheromone[cell][value-1] * eta
			scores[idx] = score
			total += score
			if score > bestScore {
				bestScore = score
				bestVal = value
			}
		}

		chosen := bestVal
		if total > 0 && s.rng.Float64() >= s.q0 {
			r := s.rng.Float64() * total
			cum := 0.0
			for idx, value := range candidates {
				cum += scores[idx]
				if r <= cum {
					chosen = value
					break
				}
			}
		}

		board.rawSet(cell, SingletonValueSet(numUnits, chosen))
		pheromone[cell][chosen-1] = (1-s.rho)*pheromone[cell][chosen-1] + s.rho*tau0
	}
}

// conflictsForValue counts how many of cell's row/column/box peers are
// already assigned that value in board's current (possibly-partial,
// non-propagated) state.
func conflictsForValue(board *Board, cell, value int) int {
	numUnits := board.NumUnits()
	row := board.RowForCell(cell)
	col := board.ColForCell(cell)
	box := board.BoxForCell(cell)
	idx := value - 1

	count := 0
	for k := 0; k < numUnits; k++ {
		if rc := board.RowCell(row, k); rc != cell && board.Cell(rc).IsFixed() && board.Cell(rc).Index() == idx {
			count++
		}
		if cc := board.ColCell(col, k); cc != cell && board.Cell(cc).IsFixed() && board.Cell(cc).Index() == idx {
			count++
		}
		// Box-mates sharing cell's row or column were already counted above.
		bc := board.BoxCell(box, k)
		if board.RowForCell(bc) == row || board.ColForCell(bc) == col {
			continue
		}
		if board.Cell(bc).IsFixed() && board.Cell(bc).Index() == idx {
			count++
		}
	}
	return count
}

// depositGlobal lays global pheromone along board's path (every Fixed
// cell, including clues) scaled by how good board's cost was.
func (s *AntSystemSolver) depositGlobal(board *Board, pheromone [][]float64, costVal int) {
	deposit := s.evap * (1.0 / (1.0 + float64(costVal)))
	for i := 0; i < board.NumCells(); i++ {
		if v := board.Cell(i); v.IsFixed() {
			pheromone[i][v.Index()] += deposit
		}
	}
}
