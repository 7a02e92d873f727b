package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/baxismyname101/sudoku-ant/sudoku"
)

// readPuzzleFile reads the two-integer-header puzzle file format: the
// first integer is either an order (old format, the remaining value
// count equals order^4 — used historically for 9x9, 16x16, 25x25) or
// numUnits directly (new format, remaining value count equals
// numUnits^2 — used for 6x6, 12x12). Remaining integers are cell values
// row-major, -1 for unknown.
func readPuzzleFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)

	readInt := func() (int, bool) {
		if !scanner.Scan() {
			return 0, false
		}
		var v int
		_, err := fmt.Sscanf(scanner.Text(), "%d", &v)
		return v, err == nil
	}

	firstNumber, ok := readInt()
	if !ok {
		return "", fmt.Errorf("invalid file format: missing header")
	}
	// second header integer is read and discarded, matching ReadFile's
	// `inFile >> idum`.
	if _, ok := readInt(); !ok {
		return "", fmt.Errorf("invalid file format: missing second header value")
	}

	var values []int
	for {
		v, ok := readInt()
		if !ok {
			break
		}
		values = append(values, v)
	}

	var numUnits int
	switch len(values) {
	case firstNumber * firstNumber * firstNumber * firstNumber:
		numUnits = firstNumber * firstNumber
	case firstNumber * firstNumber:
		numUnits = firstNumber
	default:
		return "", fmt.Errorf("invalid file format: expected %d or %d values, got %d",
			firstNumber*firstNumber, firstNumber*firstNumber*firstNumber*firstNumber, len(values))
	}

	numCells := numUnits * numUnits
	if len(values) < numCells {
		return "", fmt.Errorf("invalid file format: not enough cell values")
	}

	buf := make([]byte, numCells)
	for i := 0; i < numCells; i++ {
		v := values[i]
		if v == -1 {
			buf[i] = '.'
			continue
		}
		buf[i] = sudoku.EncodeValue(numUnits, v)
	}
	return string(buf), nil
}
