package sudoku

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ErrInvalidPuzzleSize is returned by FromPuzzleString when the input
// string's length does not correspond to one of the eight supported
// board sizes.
var ErrInvalidPuzzleSize = fmt.Errorf("sudoku: invalid puzzle size")

// Board is a square Sudoku grid of ValueSets, propagated via constraint
// elimination on every cell assignment. It is mutated only through
// SetCell, ConstrainCell and ForceSetCell; Copy produces an independent
// deep clone for search branches.
type Board struct {
	numUnits int
	boxRows  int
	boxCols  int
	numCells int

	cells  []ValueSet
	isClue []bool

	numFixed      int
	numInfeasible int
}

// FromPuzzleString parses a puzzle string of length N^2 for one of the
// supported sizes (36, 81, 144, 256, 625, 1296, 2401, 4096), applying each
// given clue through SetCell so the returned Board is already propagated
// to its fixed point. '.' marks an unknown cell; any other character is
// decoded per the board's alphabet (see decode.go).
func FromPuzzleString(s string) (*Board, error) {
	numUnits, ok := lengthToNumUnits[len(s)]
	if !ok {
		return nil, fmt.Errorf("%w: got %d characters", ErrInvalidPuzzleSize, len(s))
	}
	geom := sizeToGeometry[numUnits]

	b := &Board{
		numUnits: numUnits,
		boxRows:  geom[0],
		boxCols:  geom[1],
		numCells: numUnits * numUnits,
	}
	b.cells = make([]ValueSet, b.numCells)
	b.isClue = make([]bool, b.numCells)
	for i := range b.cells {
		b.cells[i] = FullValueSet(numUnits)
	}

	for i := 0; i < b.numCells; i++ {
		if s[i] == '.' {
			continue
		}
		value, err := decodeChar(numUnits, s[i])
		if err != nil {
			return nil, err
		}
		b.SetCell(i, SingletonValueSet(numUnits, value))
		b.isClue[i] = true
	}
	return b, nil
}

// EmptyBoard returns a fully unconstrained board of the given numUnits,
// with no clues set.
func EmptyBoard(numUnits int) (*Board, error) {
	geom, ok := sizeToGeometry[numUnits]
	if !ok {
		return nil, fmt.Errorf("%w: %d is not a supported board size", ErrInvalidPuzzleSize, numUnits)
	}
	b := &Board{
		numUnits: numUnits,
		boxRows:  geom[0],
		boxCols:  geom[1],
		numCells: numUnits * numUnits,
	}
	b.cells = make([]ValueSet, b.numCells)
	b.isClue = make([]bool, b.numCells)
	for i := range b.cells {
		b.cells[i] = FullValueSet(numUnits)
	}
	return b, nil
}

// Copy returns an independent deep clone of b; mutating the clone never
// affects b.
func (b *Board) Copy() *Board {
	return &Board{
		numUnits:      b.numUnits,
		boxRows:       b.boxRows,
		boxCols:       b.boxCols,
		numCells:      b.numCells,
		cells:         slices.Clone(b.cells),
		isClue:        slices.Clone(b.isClue),
		numFixed:      b.numFixed,
		numInfeasible: b.numInfeasible,
	}
}

// NumUnits returns N, the symbol count / grid dimension.
func (b *Board) NumUnits() int { return b.numUnits }

// BoxRows returns the box height R.
func (b *Board) BoxRows() int { return b.boxRows }

// BoxCols returns the box width C.
func (b *Board) BoxCols() int { return b.boxCols }

// NumCells returns N^2.
func (b *Board) NumCells() int { return b.numCells }

// FixedCount returns the number of cells currently Fixed.
func (b *Board) FixedCount() int { return b.numFixed }

// InfeasibleCount returns the number of cells that were reduced to Empty
// during propagation; InfeasibleCount() > 0 means this board has no
// solution reachable from its current state.
func (b *Board) InfeasibleCount() int { return b.numInfeasible }

// Cell returns the candidate set of cell i.
func (b *Board) Cell(i int) ValueSet { return b.cells[i] }

// IsClue reports whether cell i was given in the original puzzle.
func (b *Board) IsClue(i int) bool { return b.isClue[i] }

// IsEmpty reports whether cell i has no remaining candidates.
func (b *Board) IsEmpty(i int) bool { return b.cells[i].IsEmpty() }

// --- geometry ---

// RowCell returns the index of the k'th cell (0-based) of row r.
func (b *Board) RowCell(r, k int) int { return r*b.numUnits + k }

// ColCell returns the index of the k'th cell of column c.
func (b *Board) ColCell(c, k int) int { return k*b.numUnits + c }

// BoxCell returns the index of the k'th cell of box bx.
func (b *Board) BoxCell(bx, k int) int {
	boxesPerRow := b.numUnits / b.boxCols
	boxCol := bx % boxesPerRow
	boxRow := bx / boxesPerRow
	top := boxCol*b.boxCols + boxRow*b.boxRows*b.numUnits
	cellCol := k % b.boxCols
	cellRow := k / b.boxCols
	return top + cellCol + cellRow*b.numUnits
}

// RowForCell returns the row index containing cell i.
func (b *Board) RowForCell(i int) int { return i / b.numUnits }

// ColForCell returns the column index containing cell i.
func (b *Board) ColForCell(i int) int { return i % b.numUnits }

// BoxForCell returns the box index containing cell i.
func (b *Board) BoxForCell(i int) int {
	cellRow := i / b.numUnits
	cellCol := i % b.numUnits
	boxRow := cellRow / b.boxRows
	boxCol := cellCol / b.boxCols
	boxesPerRow := b.numUnits / b.boxCols
	return boxRow*boxesPerRow + boxCol
}

// forEachPeer calls fn once for every peer of cell i: every other cell in
// i's row, column and box. A cell that shares more than one unit with i
// (a box-mate in i's row or column) is visited once per shared unit,
// since the row/col/box loops run independently without de-duplicating.
func (b *Board) forEachPeer(i int, fn func(k int)) {
	iBox := b.BoxForCell(i)
	iCol := b.ColForCell(i)
	iRow := b.RowForCell(i)
	for j := 0; j < b.numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != i {
			fn(k)
		}
		if k := b.ColCell(iCol, j); k != i {
			fn(k)
		}
		if k := b.RowCell(iRow, j); k != i {
			fn(k)
		}
	}
}

// ConstrainCell applies naked-single and hidden-single elimination to
// cell i. It is a no-op if the cell is already Fixed or Empty; otherwise
// it removes from the cell every value fixed in a peer, assigns it via
// SetCell if that leaves a single candidate, and checks each of the three
// units for a hidden single. If every rule leaves the cell Empty,
// numInfeasible is incremented.
func (b *Board) ConstrainCell(i int) {
	if b.cells[i].Empty() || b.cells[i].IsFixed() {
		return
	}
	iBox := b.BoxForCell(i)
	iCol := b.ColForCell(i)
	iRow := b.RowForCell(i)
	numUnits := b.numUnits

	boxFixed, colFixed, rowFixed := NewValueSet(numUnits), NewValueSet(numUnits), NewValueSet(numUnits)
	boxAll, colAll, rowAll := NewValueSet(numUnits), NewValueSet(numUnits), NewValueSet(numUnits)

	for j := 0; j < numUnits; j++ {
		if k := b.BoxCell(iBox, j); k != i {
			if b.cells[k].IsFixed() {
				boxFixed = boxFixed.Union(b.cells[k])
			}
			boxAll = boxAll.Union(b.cells[k])
		}
		if k := b.ColCell(iCol, j); k != i {
			if b.cells[k].IsFixed() {
				colFixed = colFixed.Union(b.cells[k])
			}
			colAll = colAll.Union(b.cells[k])
		}
		if k := b.RowCell(iRow, j); k != i {
			if b.cells[k].IsFixed() {
				rowFixed = rowFixed.Union(b.cells[k])
			}
			rowAll = rowAll.Union(b.cells[k])
		}
	}

	legalByFixed := rowFixed.Union(colFixed).Union(boxFixed).Complement()

	if legalByFixed.IsFixed() {
		b.SetCell(i, legalByFixed)
	} else {
		b.cells[i] = b.cells[i].Intersect(legalByFixed)
		switch {
		case b.cells[i].Diff(rowAll).IsFixed():
			b.SetCell(i, b.cells[i].Diff(rowAll))
		case b.cells[i].Diff(colAll).IsFixed():
			b.SetCell(i, b.cells[i].Diff(colAll))
		case b.cells[i].Diff(boxAll).IsFixed():
			b.SetCell(i, b.cells[i].Diff(boxAll))
		}
	}

	if b.cells[i].Empty() {
		b.numInfeasible++
	}
}

// SetCell assigns cell i to v (idempotent if already Fixed) and cascades
// ConstrainCell to every peer, recursively discovering further singles.
func (b *Board) SetCell(i int, v ValueSet) {
	if b.cells[i].IsFixed() {
		return
	}
	b.cells[i] = v
	b.numFixed++
	addAssign()
	b.forEachPeer(i, b.ConstrainCell)
}

// ForceSetCell unconditionally writes cell i, then propagates constraints
// to its peers without checking whether the cell was already Fixed. This
// is used only by AnnealingSolver, which operates on a fully-filled,
// non-propagated board view (a swap must be able to overwrite a Fixed
// cell with another Fixed value).
func (b *Board) ForceSetCell(i int, v ValueSet) {
	wasFixed := b.cells[i].IsFixed()
	b.cells[i] = v
	if !wasFixed {
		b.numFixed++
	}
	b.forEachPeer(i, b.ConstrainCell)
}

// rawSet writes cell i directly with no propagation and no peer
// cascade. It is used only by AntSystemSolver's rollouts, which build a
// speculative, possibly-conflicting assignment and score it afterward
// rather than propagating every placement.
func (b *Board) rawSet(i int, v ValueSet) {
	if !b.cells[i].IsFixed() {
		b.numFixed++
	}
	b.cells[i] = v
}

// CheckSolution reports whether other is both a valid completed Sudoku
// solution and consistent with every Fixed cell of b (the clues-plus-
// propagated state).
func (b *Board) CheckSolution(other *Board) bool {
	if other.NumCells() != b.NumCells() {
		return false
	}
	isSolution := true
	for i := 0; i < other.NumCells(); i++ {
		if !other.Cell(i).IsFixed() {
			isSolution = false
		}
	}
	for i := 0; i < b.numUnits; i++ {
		row, col, box := NewValueSet(b.numUnits), NewValueSet(b.numUnits), NewValueSet(b.numUnits)
		for j := 0; j < b.numUnits; j++ {
			row = row.Union(other.Cell(b.RowCell(i, j)))
			col = col.Union(other.Cell(b.ColCell(i, j)))
			box = box.Union(other.Cell(b.BoxCell(i, j)))
		}
		if row.Count() != b.numUnits || col.Count() != b.numUnits || box.Count() != b.numUnits {
			isSolution = false
		}
	}

	isConsistent := true
	for i := 0; i < b.NumCells(); i++ {
		if b.Cell(i).IsFixed() && b.Cell(i).Index() != other.Cell(i).Index() {
			isConsistent = false
		}
	}
	return isSolution && isConsistent
}

// AsString renders b in row-major order with '|' between box columns and
// a '-'-filled separator line between box rows: the only human-facing
// output the core produces. If useNumbers is set, cells print as 1-based
// numbers; otherwise they print using the board's symbol alphabet, with
// non-Fixed cells shown as '.' unless showUnfixed is set (which forces
// useNumbers off, since a multi-candidate cell can't be rendered as a
// single number).
func (b *Board) AsString(useNumbers, showUnfixed bool) string {
	if showUnfixed {
		useNumbers = false
	}

	var alpha string
	if !useNumbers {
		alpha = alphabet(b.numUnits)
	}

	cellStrings := make([]string, b.numCells)
	maxLen := 0
	for i := 0; i < b.numCells; i++ {
		var s string
		switch {
		case useNumbers:
			s = fmt.Sprintf("%d", b.cells[i].Index()+1)
		case !showUnfixed && !b.cells[i].IsFixed():
			s = "."
		default:
			s = b.cells[i].String(alpha)
		}
		if len(s) > maxLen {
			maxLen = len(s)
		}
		cellStrings[i] = s
	}
	pitch := maxLen + 1

	var sb strings.Builder
	boxesPerRow := b.numUnits / b.boxCols
	for i := 0; i < b.numCells; i++ {
		fmt.Fprintf(&sb, "%*s ", pitch, cellStrings[i])
		switch {
		case i%b.numUnits == b.numUnits-1:
			if i != b.numCells-1 {
				sb.WriteByte('\n')
			}
		case i%b.boxCols == b.boxCols-1:
			sb.WriteByte('|')
		}
		if i%(b.numUnits*b.boxRows) == b.numUnits*b.boxRows-1 && i != b.numCells-1 {
			for j := 0; j < boxesPerRow; j++ {
				sb.WriteString(strings.Repeat("-", b.boxCols*(pitch+1)))
				if j != boxesPerRow-1 {
					sb.WriteByte('+')
				}
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Empty reports whether v has no candidates; a tiny alias kept so Board's
// own methods read naturally at call sites like cells[i].Empty().
func (v ValueSet) Empty() bool { return v.IsEmpty() }
