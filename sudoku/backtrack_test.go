package sudoku

import "testing"

func TestBacktrackSolverSoundness(t *testing.T) {
	puzzles := []string{
		easy9x9,
		".................................................................................",
	}
	for _, p := range puzzles {
		b, err := FromPuzzleString(p)
		if err != nil {
			t.Fatalf("%q: %v", p, err)
		}
		solver := NewBacktrackSolver()
		result := solver.Solve(b, secondsTimeout(10))
		if !result.Success {
			t.Fatalf("%q: expected solve to succeed", p)
		}
		if !b.CheckSolution(result.Board) {
			t.Errorf("%q: CheckSolution rejected the produced solution", p)
		}
		if solver.Solution() != result.Board {
			t.Errorf("Solution() did not return the last Solve's board")
		}
		if solver.SolutionTime() != result.Elapsed {
			t.Errorf("SolutionTime() did not match the last Solve's elapsed time")
		}
		if solver.Cycles() != result.Cycles {
			t.Errorf("Cycles() did not match the last Solve's cycle count")
		}
	}
}

// An empty 25x25 board with a short timeout must return promptly,
// honoring the deadline rather than running unbounded.
func TestBacktrackSolverRespectsTimeout(t *testing.T) {
	b, err := EmptyBoard(25)
	if err != nil {
		t.Fatal(err)
	}
	solver := NewBacktrackSolver()
	timeout := secondsTimeout(1)
	result := solver.Solve(b, timeout)
	if result.Elapsed > timeout+secondsTimeout(5) {
		t.Errorf("got elapsed=%v, want it bounded close to the %v timeout", result.Elapsed, timeout)
	}
}

func TestMostConstrainedCellPicksSmallestCandidateSet(t *testing.T) {
	// A hard 9x9 that propagation alone leaves with many open cells.
	b, err := FromPuzzleString("4.....8.5.3..........7......2.....6.....8.4......1.......6.3.7.5..2.....1.4......")
	if err != nil {
		t.Fatal(err)
	}
	cell, found := mostConstrainedCell(b)
	if !found {
		t.Fatalf("expected at least one cell with 2+ candidates")
	}
	count := b.Cell(cell).Count()
	for i := 0; i < b.NumCells(); i++ {
		c := b.Cell(i).Count()
		if c >= 2 && c < count {
			t.Errorf("cell %v has fewer candidates (%v) than the chosen cell %v (%v)", i, c, cell, count)
		}
	}
}
