// Command solver is the external driver for the sudoku core: it parses a
// puzzle (from a string, a file, or a blank grid of the given order),
// dispatches it to the chosen solver, and reports the result. It builds
// boards with sudoku.FromPuzzleString (and sudoku.EncodeValue for puzzle
// files), solves through the Solver interface, validates with
// Board.CheckSolution, and prints through Board's read-only accessors and
// AsString.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/baxismyname101/sudoku-ant/sudoku"
)

var (
	puzzleFlag      = flag.String("puzzle", "", "puzzle string to solve")
	fileFlag        = flag.String("file", "", "path to a puzzle file (two-integer header format)")
	blankFlag       = flag.Bool("blank", false, "produce an empty board instead of reading a puzzle")
	orderFlag       = flag.Int("order", 0, "order k for --blank: produces an empty k^2 x k^2 board")
	algFlag         = flag.Int("alg", 1, "solver: 0=ant system, 1=backtracking")
	timeoutFlag     = flag.Float64("timeout", 10, "solve deadline, in seconds")
	antsFlag        = flag.Int("ants", 10, "ant system: colony size")
	q0Flag          = flag.Float64("q0", 0.9, "ant system: exploitation probability")
	rhoFlag         = flag.Float64("rho", 0.9, "ant system: local evaporation rate")
	evapFlag        = flag.Float64("evap", 0.005, "ant system: global evaporation rate")
	verboseFlag     = flag.Bool("verbose", false, "print the solved grid and timing")
	showInitialFlag = flag.Bool("showinitial", false, "print the grid after initial propagation, before search")
)

func main() {
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintln(out, "usage: solver [options]")
		fmt.Fprintln(out, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	os.Exit(run())
}

func run() int {
	puzzleString, err := puzzleInput()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	board, err := sudoku.FromPuzzleString(puzzleString)
	if err != nil {
		log.Fatal(err)
	}

	if *showInitialFlag {
		fmt.Println("Initial constrained grid")
		printColored(board)
		fmt.Println()
	}

	var solver sudoku.Solver
	if *algFlag == 0 {
		solver = sudoku.NewAntSystemSolver(*antsFlag, *q0Flag, *rhoFlag, *evapFlag)
	} else {
		solver = sudoku.NewBacktrackSolver()
	}

	result := solver.Solve(board, time.Duration(*timeoutFlag*float64(time.Second)))

	success := result.Success
	if success && !board.CheckSolution(result.Board) {
		fmt.Printf("solution not valid %s %d\n", *fileFlag, *algFlag)
		fmt.Println("numFixedCells", result.Board.FixedCount())
		fmt.Println(result.Board.AsString(true, false))
		success = false
	}

	if !*verboseFlag {
		fmt.Println(boolToFailInt(success))
		fmt.Println(result.Elapsed.Seconds())
		fmt.Println(result.Cycles)
	} else if !success {
		fmt.Printf("failed in time %v\n", result.Elapsed.Seconds())
	} else {
		fmt.Println("Solution:")
		printColored(result.Board)
		fmt.Printf("solved in %v\n", result.Elapsed.Seconds())
	}

	if success {
		return 0
	}
	return 1
}

// puzzleInput resolves the puzzle string from --blank/--order, --puzzle,
// or --file, in that priority order.
func puzzleInput() (string, error) {
	if *blankFlag && *orderFlag != 0 {
		n := *orderFlag * *orderFlag
		return strings.Repeat(".", n*n), nil
	}

	if *puzzleFlag != "" {
		return *puzzleFlag, nil
	}

	if *fileFlag != "" {
		return readPuzzleFile(*fileFlag)
	}

	return "", fmt.Errorf("no puzzle specified")
}

func boolToFailInt(success bool) int {
	if success {
		return 0
	}
	return 1
}

// printColored renders board with clues, solver-deduced Fixed cells, and
// unresolved cells in distinct colors, for the CLI's --verbose and
// --showinitial flags: clues in bold, deduced values in green, everything
// else (shown as '.') dimmed.
func printColored(board *sudoku.Board) {
	clue := color.New(color.Bold)
	solved := color.New(color.FgGreen)
	unknown := color.New(color.Faint)

	numUnits := board.NumUnits()
	boxCols := board.BoxCols()
	boxRows := board.BoxRows()
	numCells := board.NumCells()
	boxesPerRow := numUnits / boxCols

	for i := 0; i < numCells; i++ {
		cell := board.Cell(i)
		var text string
		var c *color.Color
		switch {
		case cell.IsFixed() && board.IsClue(i):
			text = fmt.Sprintf("%2d", cell.Index()+1)
			c = clue
		case cell.IsFixed():
			text = fmt.Sprintf("%2d", cell.Index()+1)
			c = solved
		default:
			text = " ."
			c = unknown
		}
		c.Print(text)
		fmt.Print(" ")

		if i%numUnits == numUnits-1 {
			fmt.Println()
		} else if i%boxCols == boxCols-1 {
			fmt.Print("|")
		}
		if i%(numUnits*boxRows) == numUnits*boxRows-1 && i != numCells-1 {
			for j := 0; j < boxesPerRow; j++ {
				fmt.Print(strings.Repeat("-", boxCols*4))
				if j != boxesPerRow-1 {
					fmt.Print("+")
				}
			}
			fmt.Println()
		}
	}
}
