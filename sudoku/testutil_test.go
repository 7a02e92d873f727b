package sudoku

import "time"

// secondsTimeout is a small helper shared by the table-driven tests to
// keep timeouts readable as plain seconds.
func secondsTimeout(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
