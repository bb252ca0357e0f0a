package core

import (
	"fmt"
	"strings"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20

	// MinDimension is the smallest width or height that can hold any piece.
	MinDimension = 4

	// SpawnRow is the anchor row of a freshly spawned piece.
	SpawnRow = 0

	// Unlimited disables the piece limit.
	Unlimited = -1
)

// Options configures a new board.
type Options struct {
	Width      int
	Height     int
	PieceLimit int   // number of pieces that may spawn; negative for no limit
	Seed       int64 // seed for the 7-bag
}

// DefaultOptions returns a standard 10x20 board with no piece limit.
func DefaultOptions() Options {
	return Options{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		PieceLimit: Unlimited,
	}
}

// Board is the tetris well: settled cells, the falling piece, the preview
// piece, score and the piece supply. Only its own methods mutate it.
type Board struct {
	width  int
	height int
	cells  []Kind // row-major, KindNone is empty

	falling *Piece // nil between landing and spawning, and after game over
	next    Piece
	primed  bool

	score      int
	lines      int
	placed     int
	pieceLimit int

	bag  Bag
	over *GameOverError
}

// New creates an empty board. Dimensions below MinDimension fail with
// ErrInvalidDimensions.
func New(opts Options) (*Board, error) {
	if opts.Width < MinDimension || opts.Height < MinDimension {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)",
			ErrInvalidDimensions, opts.Width, opts.Height, MinDimension, MinDimension)
	}
	return &Board{
		width:      opts.Width,
		height:     opts.Height,
		cells:      make([]Kind, opts.Width*opts.Height),
		pieceLimit: opts.PieceLimit,
		bag:        NewBag(opts.Seed),
	}, nil
}

// FromRows builds a board whose settled cells follow a text pattern, one
// string per row from top to bottom: '.' or ' ' is empty, any other rune is
// filled. Width and height come from the pattern; opts only supplies the
// piece limit and seed.
func FromRows(rows []string, opts Options) (*Board, error) {
	opts.Height = len(rows)
	opts.Width = 0
	if len(rows) > 0 {
		opts.Width = len(rows[0])
	}
	b, err := New(opts)
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		if len(line) != b.width {
			return nil, fmt.Errorf("tetris: row %d has width %d, want %d", r, len(line), b.width)
		}
		for c, ch := range line {
			if ch != '.' && ch != ' ' {
				b.cells[b.index(r, c)] = kindFromRune(ch)
			}
		}
	}
	return b, nil
}

func kindFromRune(r rune) Kind {
	for _, k := range AllKinds {
		if k.String() == string(r) {
			return k
		}
	}
	return KindO
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Filled reports whether the settled cell at (row, col) is occupied.
// Out-of-range positions read as empty.
func (b *Board) Filled(row, col int) bool {
	return b.KindAt(row, col) != KindNone
}

// KindAt returns the kind that settled at (row, col), or KindNone.
func (b *Board) KindAt(row, col int) Kind {
	if !b.inBounds(row, col) {
		return KindNone
	}
	return b.cells[b.index(row, col)]
}

// Falling returns the falling piece, if any.
func (b *Board) Falling() (Piece, bool) {
	if b.falling == nil {
		return Piece{}, false
	}
	return *b.falling, true
}

// Next returns the preview piece. It is meaningful once the game has started.
func (b *Board) Next() Piece { return b.next }

// Score returns the current score.
func (b *Board) Score() int { return b.score }

// Lines returns the total number of cleared rows.
func (b *Board) Lines() int { return b.lines }

// PiecesPlaced returns how many pieces have spawned so far.
func (b *Board) PiecesPlaced() int { return b.placed }

// PieceLimit returns the remaining number of pieces that may spawn, or a
// negative value when unlimited.
func (b *Board) PieceLimit() int { return b.pieceLimit }

// Over reports whether the game has ended.
func (b *Board) Over() bool { return b.over != nil }

// SpawnColumn returns the anchor column used for new pieces. It is
// width/2-1, pulled left on narrow boards so a flat I piece still fits.
func (b *Board) SpawnColumn() int { return min(b.width/2-1, b.width-4) }

// SettledCell is a settled block with its grid position.
type SettledCell struct {
	Row, Col int
	Kind     Kind
}

// Settled returns every settled cell in row-major order.
func (b *Board) Settled() []SettledCell {
	var out []SettledCell
	for i, k := range b.cells {
		if k != KindNone {
			out = append(out, SettledCell{Row: i / b.width, Col: i % b.width, Kind: k})
		}
	}
	return out
}

// CanPlace reports whether every block of p is inside the board and on an
// empty cell. It is the only legality check the board uses.
func (b *Board) CanPlace(p Piece) bool {
	for _, blk := range p.Blocks() {
		if !b.inBounds(blk.Row, blk.Col) {
			return false
		}
		if b.cells[b.index(blk.Row, blk.Col)] != KindNone {
			return false
		}
	}
	return true
}

// StartGame resets the score and, on first call, fills the preview and
// spawns the first falling piece.
func (b *Board) StartGame() error {
	if b.over != nil {
		return b.over
	}
	b.score = 0
	if b.primed {
		return nil
	}
	b.primed = true
	b.next = NewPiece(b.bag.Draw())
	return b.SpawnNext()
}

// SpawnNext promotes the preview piece to the falling piece at the spawn
// anchor and draws a new preview. The game ends instead when the piece limit
// is exhausted or the spawn position is blocked; the piece is then not
// installed.
func (b *Board) SpawnNext() error {
	if b.over != nil {
		return b.over
	}
	candidate := b.next.WithOrientation(0).At(SpawnRow, b.SpawnColumn())
	if b.pieceLimit == 0 || !b.CanPlace(candidate) {
		return b.end()
	}
	b.falling = &candidate
	b.next = NewPiece(b.bag.Draw())
	b.placed++
	if b.pieceLimit > 0 {
		b.pieceLimit--
	}
	return nil
}

func (b *Board) end() error {
	b.falling = nil
	b.over = &GameOverError{Score: b.score}
	return b.over
}

// Resign ends the game as it stands, leaving the falling piece unsettled.
// Players with no legal placement resign instead of dropping in place.
func (b *Board) Resign() error {
	if b.over != nil {
		return b.over
	}
	return b.end()
}

// try installs p as the falling piece if it is legal.
func (b *Board) try(p Piece) bool {
	if b.falling == nil || b.over != nil || !b.CanPlace(p) {
		return false
	}
	*b.falling = p
	return true
}

// MoveLeft shifts the falling piece one column left if legal.
func (b *Board) MoveLeft() bool {
	if b.falling == nil {
		return false
	}
	return b.try(b.falling.Moved(0, -1))
}

// MoveRight shifts the falling piece one column right if legal.
func (b *Board) MoveRight() bool {
	if b.falling == nil {
		return false
	}
	return b.try(b.falling.Moved(0, 1))
}

// RotateClockwise turns the falling piece a quarter turn clockwise if legal.
func (b *Board) RotateClockwise() bool {
	if b.falling == nil {
		return false
	}
	return b.try(b.falling.Rotated(1))
}

// RotateCounterclockwise turns the falling piece a quarter turn
// counterclockwise if legal.
func (b *Board) RotateCounterclockwise() bool {
	if b.falling == nil {
		return false
	}
	return b.try(b.falling.Rotated(-1))
}

// MoveTo relocates the falling piece to (row, col) in the given orientation
// in one step, rejecting the move if the target is illegal.
func (b *Board) MoveTo(row, col, orientation int) bool {
	if b.falling == nil {
		return false
	}
	return b.try(b.falling.WithOrientation(orientation).At(row, col))
}

// DropFrom lowers p one row at a time while it stays legal, then raises it
// back one row. It returns that resting piece and whether it is legal. The
// board is not modified.
func (b *Board) DropFrom(p Piece) (Piece, bool) {
	for b.CanPlace(p) {
		p = p.Moved(1, 0)
	}
	p = p.Moved(-1, 0)
	return p, b.CanPlace(p)
}

// Tick applies one step of gravity. The falling piece moves down a row if it
// can; otherwise it lands, completed rows clear and the next piece spawns.
// A piece that cannot stay where it is ends the game.
func (b *Board) Tick() (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil {
		return false, nil
	}
	if b.try(b.falling.Moved(1, 0)) {
		return true, nil
	}
	if !b.CanPlace(*b.falling) {
		return true, b.end()
	}
	return true, b.land()
}

// HardDrop lowers the falling piece as far as it goes and lands it.
func (b *Board) HardDrop() (bool, error) {
	if b.over != nil {
		return false, b.over
	}
	if b.falling == nil {
		return false, nil
	}
	rest, ok := b.DropFrom(*b.falling)
	if !ok {
		return true, b.end()
	}
	*b.falling = rest
	return true, b.land()
}

// land settles the falling piece, clears rows and spawns the next piece.
func (b *Board) land() error {
	p := *b.falling
	b.falling = nil
	b.SettleWithoutClear(p)
	b.ClearCompletedLines()
	return b.SpawnNext()
}

// SettleWithoutClear writes p into the grid without clearing rows or
// scoring. Settling a piece that CanPlace rejects is a programming error and
// panics.
func (b *Board) SettleWithoutClear(p Piece) {
	if !b.CanPlace(p) {
		panic(fmt.Sprintf("tetris: settling %s at illegal position (%d,%d)", p.Kind, p.Row, p.Col))
	}
	for _, blk := range p.Blocks() {
		b.cells[b.index(blk.Row, blk.Col)] = p.Kind
	}
}

// Clone returns an independent deep copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	c.cells = make([]Kind, len(b.cells))
	copy(c.cells, b.cells)
	if b.falling != nil {
		p := *b.falling
		c.falling = &p
	}
	if b.over != nil {
		over := *b.over
		c.over = &over
	}
	return &c
}

// String renders the settled grid and falling piece, one row per line.
func (b *Board) String() string {
	var falling [4]Offset
	hasFalling := b.falling != nil
	if hasFalling {
		falling = b.falling.Blocks()
	}

	var sb strings.Builder
	sb.Grow((b.width + 1) * b.height)
	for r := 0; r < b.height; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < b.width; c++ {
			ch := b.cells[b.index(r, c)].String()
			if hasFalling {
				for _, blk := range falling {
					if blk.Row == r && blk.Col == c {
						ch = "@"
					}
				}
			}
			sb.WriteString(ch)
		}
	}
	return sb.String()
}
