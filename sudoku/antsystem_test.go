package sudoku

import "testing"

func TestAntSystemSolverSolvesEasyPuzzle(t *testing.T) {
	b, err := FromPuzzleString(easy9x9)
	if err != nil {
		t.Fatal(err)
	}
	solver := NewAntSystemSolver(10, 0.9, 0.9, 0.005, WithAntSeed(1))
	result := solver.Solve(b, secondsTimeout(20))
	if !result.Success {
		t.Fatalf("expected the ant system to solve the easy 9x9 puzzle")
	}
	if !b.CheckSolution(result.Board) {
		t.Errorf("CheckSolution rejected the produced solution")
	}
	if solver.Solution() != result.Board {
		t.Errorf("Solution() did not return the last Solve's board")
	}
}

func TestAntSystemSolverRespectsTimeoutWhenUnsolved(t *testing.T) {
	b, err := EmptyBoard(25)
	if err != nil {
		t.Fatal(err)
	}
	solver := NewAntSystemSolver(2, 0.9, 0.9, 0.005, WithAntSeed(2))
	timeout := secondsTimeout(1)
	result := solver.Solve(b, timeout)
	if result.Elapsed > timeout+secondsTimeout(5) {
		t.Errorf("got elapsed=%v, want it bounded close to the %v timeout", result.Elapsed, timeout)
	}
	if !result.Success && result.Board != nil {
		t.Errorf("expected a nil Board on failure")
	}
}

func TestMostConstrainedOrderCoversEveryNonFixedCell(t *testing.T) {
	b, err := FromPuzzleString(easy9x9)
	if err != nil {
		t.Fatal(err)
	}
	order := mostConstrainedOrder(b)

	want := 0
	for i := 0; i < b.NumCells(); i++ {
		if !b.Cell(i).IsFixed() {
			want++
		}
	}
	if len(order) != want {
		t.Fatalf("got %v cells in order, want %v non-Fixed cells", len(order), want)
	}
	for i := 0; i+1 < len(order); i++ {
		if b.Cell(order[i]).Count() > b.Cell(order[i+1]).Count() {
			t.Errorf("order not ascending by candidate count at index %v", i)
		}
	}
}

func TestConflictsForValueCountsPeers(t *testing.T) {
	b, err := EmptyBoard(9)
	if err != nil {
		t.Fatal(err)
	}
	b.rawSet(0, SingletonValueSet(9, 5))
	if got := conflictsForValue(b, 1, 5); got != 1 {
		t.Errorf("got %v conflicts for a row peer sharing the value, want 1", got)
	}
	if got := conflictsForValue(b, 1, 6); got != 0 {
		t.Errorf("got %v conflicts for a non-matching value, want 0", got)
	}
}
