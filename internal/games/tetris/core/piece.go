// Package core contains the tetris board state machine: piece geometry,
// the 7-bag randomizer, collision, settling and line clearing.
// It has no dependencies on the terminal platform and never does I/O.
package core

import "fmt"

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	KindNone Kind = iota
	KindO
	KindI
	KindS
	KindZ
	KindT
	KindL
	KindJ
)

// AllKinds lists every playable kind in bag order before shuffling.
var AllKinds = [7]Kind{KindO, KindI, KindS, KindZ, KindT, KindL, KindJ}

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	switch k {
	case KindO:
		return "O"
	case KindI:
		return "I"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindT:
		return "T"
	case KindL:
		return "L"
	case KindJ:
		return "J"
	default:
		return "."
	}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindO && k <= KindJ
}

// Offset is a block position relative to a piece anchor.
type Offset struct {
	Row, Col int
}

// shapes holds every orientation of every kind. Offsets fit the 4x4 box whose
// top-left corner is the anchor; orientation i+1 is orientation i turned
// clockwise inside a 3x3 box for S, Z, T, L and J.
var shapes = map[Kind][][4]Offset{
	KindO: {
		{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	KindI: {
		{{0, 0}, {0, 1}, {0, 2}, {0, 3}},
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
	},
	KindS: {
		{{0, 1}, {0, 2}, {1, 0}, {1, 1}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 1}, {1, 2}, {2, 0}, {2, 1}},
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindZ: {
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
		{{0, 2}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 0}},
	},
	KindT: {
		{{0, 1}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 1}},
		{{0, 1}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindL: {
		{{0, 2}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 0}},
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
	},
	KindJ: {
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {0, 2}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 0}, {2, 1}},
	},
}

// Orientations returns the number of distinct orientations of a kind.
func Orientations(k Kind) int {
	return len(shapes[k])
}

// normalize wraps an orientation index into [0, Orientations(k)).
func normalize(k Kind, orientation int) int {
	n := Orientations(k)
	if n == 0 {
		return 0
	}
	orientation %= n
	if orientation < 0 {
		orientation += n
	}
	return orientation
}

// Cells returns the block offsets of a kind in the given orientation.
// Orientation indices wrap, so Cells(k, o) == Cells(k, o+Orientations(k)).
// Panics on an unknown kind.
func Cells(k Kind, orientation int) [4]Offset {
	table, ok := shapes[k]
	if !ok {
		panic(fmt.Sprintf("tetris: unknown piece kind %d", k))
	}
	return table[normalize(k, orientation)]
}

// Piece is a tetromino with an orientation and an anchor on the board.
// Occupied cells are always derived from these four fields.
type Piece struct {
	Kind        Kind
	Orientation int
	Row         int
	Col         int
}

// NewPiece returns a piece of kind k in orientation 0 anchored at (0, 0).
func NewPiece(k Kind) Piece {
	return Piece{Kind: k}
}

// Blocks returns the absolute board positions the piece occupies.
func (p Piece) Blocks() [4]Offset {
	cells := Cells(p.Kind, p.Orientation)
	for i := range cells {
		cells[i].Row += p.Row
		cells[i].Col += p.Col
	}
	return cells
}

// Rotated returns the piece turned by delta quarter turns (positive is clockwise).
func (p Piece) Rotated(delta int) Piece {
	p.Orientation = normalize(p.Kind, p.Orientation+delta)
	return p
}

// Moved returns the piece shifted by the given rows and columns.
func (p Piece) Moved(dRow, dCol int) Piece {
	p.Row += dRow
	p.Col += dCol
	return p
}

// At returns the piece with its anchor set to (row, col).
func (p Piece) At(row, col int) Piece {
	p.Row = row
	p.Col = col
	return p
}

// WithOrientation returns the piece with the given (wrapped) orientation.
func (p Piece) WithOrientation(orientation int) Piece {
	p.Orientation = normalize(p.Kind, orientation)
	return p
}
