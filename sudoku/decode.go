package sudoku

import "fmt"

// sizeToGeometry maps a supported numUnits to its box dimensions
// (boxRows, boxCols).
var sizeToGeometry = map[int][2]int{
	6:  {2, 3},
	9:  {3, 3},
	12: {3, 4},
	16: {4, 4},
	25: {5, 5},
	36: {6, 6},
	49: {7, 7},
	64: {8, 8},
}

// lengthToNumUnits maps a puzzle string length to numUnits.
var lengthToNumUnits = map[int]int{
	36:   6,
	81:   9,
	144:  12,
	256:  16,
	625:  25,
	1296: 36,
	2401: 49,
	4096: 64,
}

// alphabet returns the symbol alphabet for a board of the given size:
// alphabet[k] is the rune standing for value k+1. Sizes up to 9 use plain
// digits, sizes up to 16 use hex digits, and larger sizes draw on an
// extended run of letters and digits to reach 64 distinct symbols.
func alphabet(numUnits int) string {
	switch {
	case numUnits <= 9:
		return "123456789"[:numUnits]
	case numUnits <= 16:
		return "0123456789abcdef"[:numUnits]
	default:
		const ext = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@"
		return ext[:numUnits]
	}
}

// decodeChar maps a single puzzle-string rune to a 1-based value for a
// board of the given size. '.' is rejected; callers check for '.'
// (unknown) before calling decodeChar.
func decodeChar(numUnits int, ch byte) (int, error) {
	switch {
	case numUnits == 6, numUnits == 9:
		if ch >= '1' && ch <= byte('0'+numUnits) {
			return int(ch - '0'), nil
		}
	case numUnits == 12, numUnits == 16:
		if ch >= '0' && ch <= '9' {
			return 1 + int(ch-'0'), nil
		}
		if ch >= 'a' && int(11+ch-'a') <= numUnits {
			return 11 + int(ch-'a'), nil
		}
	default:
		a := alphabet(numUnits)
		for i := 0; i < len(a); i++ {
			if a[i] == ch {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("sudoku: invalid symbol %q for a %d-unit board", ch, numUnits)
}

// encodeValue maps a 1-based value to its puzzle-string rune for a board
// of the given size; the inverse of decodeChar.
func encodeValue(numUnits, value int) byte {
	return alphabet(numUnits)[value-1]
}

// EncodeValue maps a 1-based value to its puzzle-string rune for a board
// of the given size. It is exported for external callers (such as the
// CLI driver's file-format reader) that build a puzzle string from raw
// integer values rather than parsing one.
func EncodeValue(numUnits, value int) byte {
	return encodeValue(numUnits, value)
}

// SupportedSize reports whether numUnits is one of the eight supported
// board sizes.
func SupportedSize(numUnits int) bool {
	_, ok := sizeToGeometry[numUnits]
	return ok
}
