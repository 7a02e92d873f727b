package sudoku

import "testing"

func TestAlphabetLengthMatchesSize(t *testing.T) {
	for numUnits := range sizeToGeometry {
		a := alphabet(numUnits)
		if len(a) != numUnits {
			t.Errorf("n=%v: alphabet length %v, want %v", numUnits, len(a), numUnits)
		}
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for numUnits := range sizeToGeometry {
		for value := 1; value <= numUnits; value++ {
			ch := encodeValue(numUnits, value)
			got, err := decodeChar(numUnits, ch)
			if err != nil {
				t.Fatalf("n=%v value=%v: decodeChar(%q) failed: %v", numUnits, value, ch, err)
			}
			if got != value {
				t.Errorf("n=%v value=%v: round-tripped to %v", numUnits, value, got)
			}
		}
	}
}

func TestDecodeCharRejectsUnknownSymbol(t *testing.T) {
	if _, err := decodeChar(9, 'x'); err == nil {
		t.Errorf("expected an error for an out-of-alphabet symbol")
	}
	if _, err := decodeChar(9, '0'); err == nil {
		t.Errorf("expected an error for '0' on a 9-unit board (1-indexed alphabet)")
	}
}

func TestSupportedSize(t *testing.T) {
	for numUnits := range sizeToGeometry {
		if !SupportedSize(numUnits) {
			t.Errorf("SupportedSize(%v) = false, want true", numUnits)
		}
	}
	for _, n := range []int{0, 5, 10, 100} {
		if SupportedSize(n) {
			t.Errorf("SupportedSize(%v) = true, want false", n)
		}
	}
}

func TestEncodeValueExported(t *testing.T) {
	if got := EncodeValue(9, 5); got != '5' {
		t.Errorf("got %q, want '5'", got)
	}
}
