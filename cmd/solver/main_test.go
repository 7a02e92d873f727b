package main

import (
	"io"
	"os"
	"testing"
)

// withCapturedStdout runs fn with os.Stdout redirected to a pipe and
// returns whatever fn wrote, so run()'s printing can be exercised without
// polluting the test binary's own output.
func withCapturedStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured stdout: %v", err)
	}
	return string(out)
}

// resetFlags restores every package flag to its zero/default value so
// tests don't leak state into one another (run() never calls
// flag.Parse(), so these package vars are the only shared state).
func resetFlags(t *testing.T) {
	t.Helper()
	*puzzleFlag = ""
	*fileFlag = ""
	*blankFlag = false
	*orderFlag = 0
	*algFlag = 1
	*timeoutFlag = 10
	*antsFlag = 10
	*q0Flag = 0.9
	*rhoFlag = 0.9
	*evapFlag = 0.005
	*verboseFlag = false
	*showInitialFlag = false
}

const solverTestEasy9x9 = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"

func TestRunSolvesPuzzleFlag(t *testing.T) {
	resetFlags(t)
	*puzzleFlag = solverTestEasy9x9
	*algFlag = 1
	*timeoutFlag = 5

	var code int
	out := withCapturedStdout(t, func() { code = run() })
	if code != 0 {
		t.Fatalf("got exit code %v, want 0; output:\n%s", code, out)
	}
}

func TestRunFailsWithNoPuzzleSpecified(t *testing.T) {
	resetFlags(t)

	var code int
	withCapturedStdout(t, func() { code = run() })
	if code != 1 {
		t.Errorf("got exit code %v, want 1 when no puzzle source is given", code)
	}
}

func TestRunBlankOrderSolves(t *testing.T) {
	resetFlags(t)
	// Order 3 gives a 9x9 board (numUnits=9), one of the eight supported
	// sizes; order 2 would give a 4x4 board, which FromPuzzleString
	// rejects (see TestBlankSmallestSupportedBoard in the sudoku package).
	*blankFlag = true
	*orderFlag = 3
	*algFlag = 1
	*timeoutFlag = 5

	var code int
	out := withCapturedStdout(t, func() { code = run() })
	if code != 0 {
		t.Fatalf("got exit code %v, want 0 for a blank order-3 board; output:\n%s", code, out)
	}
}

func TestRunVerboseReportsSuccess(t *testing.T) {
	resetFlags(t)
	*puzzleFlag = solverTestEasy9x9
	*algFlag = 1
	*timeoutFlag = 5
	*verboseFlag = true

	var code int
	out := withCapturedStdout(t, func() { code = run() })
	if code != 0 {
		t.Fatalf("got exit code %v, want 0; output:\n%s", code, out)
	}
	if len(out) == 0 {
		t.Errorf("expected --verbose to print the solved grid")
	}
}
