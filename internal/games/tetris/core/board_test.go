package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, opts Options) *Board {
	t.Helper()
	b, err := New(opts)
	require.NoError(t, err)
	return b
}

func startedBoard(t *testing.T, seed int64) *Board {
	t.Helper()
	opts := DefaultOptions()
	opts.Seed = seed
	b := newBoard(t, opts)
	require.NoError(t, b.StartGame())
	return b
}

func TestNewRejectsSmallBoards(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero", 0, 0},
		{"negative width", -1, 20},
		{"too narrow", 3, 20},
		{"too short", 10, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(Options{Width: tc.w, Height: tc.h})
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		})
	}
}

func TestStartGameSpawnsPieces(t *testing.T) {
	b := startedBoard(t, 1)

	p, ok := b.Falling()
	require.True(t, ok)
	assert.Equal(t, SpawnRow, p.Row)
	assert.Equal(t, 4, p.Col)
	assert.Equal(t, 0, p.Orientation)
	assert.True(t, b.Next().Kind.Valid())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, 1, b.PiecesPlaced())

	// A second start keeps the pieces already in play.
	require.NoError(t, b.StartGame())
	again, _ := b.Falling()
	assert.Equal(t, p, again)
	assert.Equal(t, 1, b.PiecesPlaced())
}

func TestNarrowestBoardSpawnsEveryKind(t *testing.T) {
	b := newBoard(t, Options{Width: MinDimension, Height: 20, PieceLimit: Unlimited})
	assert.Equal(t, 0, b.SpawnColumn())

	for _, k := range AllKinds {
		p := NewPiece(k).At(SpawnRow, b.SpawnColumn())
		assert.True(t, b.CanPlace(p), "%s should fit at spawn", k)
	}

	for seed := int64(0); seed < 14; seed++ {
		b := newBoard(t, Options{Width: MinDimension, Height: 20, PieceLimit: Unlimited, Seed: seed})
		require.NoError(t, b.StartGame(), "seed %d", seed)
	}
}

func TestSpawnColumnByWidth(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{4, 0},
		{5, 1},
		{6, 2},
		{10, 4},
		{11, 4},
	}

	for _, tc := range tests {
		b := newBoard(t, Options{Width: tc.width, Height: 20})
		assert.Equal(t, tc.want, b.SpawnColumn(), "width %d", tc.width)
	}
}

func TestCanPlaceBounds(t *testing.T) {
	b := newBoard(t, DefaultOptions())

	tests := []struct {
		name string
		p    Piece
		want bool
	}{
		{"inside", Piece{Kind: KindO, Row: 0, Col: 0}, true},
		{"bottom right corner", Piece{Kind: KindO, Row: 18, Col: 8}, true},
		{"past left wall", Piece{Kind: KindO, Row: 0, Col: -1}, false},
		{"past right wall", Piece{Kind: KindO, Row: 0, Col: 9}, false},
		{"past floor", Piece{Kind: KindO, Row: 19, Col: 0}, false},
		{"above ceiling", Piece{Kind: KindO, Row: -1, Col: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.CanPlace(tc.p))
		})
	}
}

func TestCanPlaceOverlap(t *testing.T) {
	b, err := FromRows([]string{
		"....",
		"....",
		"....",
		".#..",
	}, DefaultOptions())
	require.NoError(t, err)

	assert.False(t, b.CanPlace(Piece{Kind: KindO, Row: 2, Col: 0}))
	assert.True(t, b.CanPlace(Piece{Kind: KindO, Row: 2, Col: 2}))
}

func TestMovesRollBackWhenBlocked(t *testing.T) {
	b := startedBoard(t, 2)

	for b.MoveLeft() {
	}
	left, _ := b.Falling()
	assert.False(t, b.MoveLeft())
	after, _ := b.Falling()
	assert.Equal(t, left, after)
	for _, blk := range left.Blocks() {
		assert.GreaterOrEqual(t, blk.Col, 0)
	}

	for b.MoveRight() {
	}
	right, _ := b.Falling()
	assert.False(t, b.MoveRight())
	for _, blk := range right.Blocks() {
		assert.Less(t, blk.Col, b.Width())
	}
}

func TestRotateClockwiseThenBack(t *testing.T) {
	b := startedBoard(t, 5)
	b.Tick()
	b.Tick()
	before, _ := b.Falling()

	if b.RotateClockwise() {
		require.True(t, b.RotateCounterclockwise())
	}
	after, _ := b.Falling()
	assert.Equal(t, before, after)
}

func TestMoveToRejectsIllegalTarget(t *testing.T) {
	b := startedBoard(t, 9)
	before, _ := b.Falling()

	assert.False(t, b.MoveTo(0, -3, 0))
	after, _ := b.Falling()
	assert.Equal(t, before, after)

	assert.True(t, b.MoveTo(10, 3, 1))
	moved, _ := b.Falling()
	assert.Equal(t, 10, moved.Row)
	assert.Equal(t, 3, moved.Col)
}

func TestTickLowersThenLands(t *testing.T) {
	b := startedBoard(t, 4)
	start, _ := b.Falling()

	changed, err := b.Tick()
	require.NoError(t, err)
	assert.True(t, changed)
	p, _ := b.Falling()
	assert.Equal(t, start.Row+1, p.Row)

	for b.PiecesPlaced() == 1 {
		_, err := b.Tick()
		require.NoError(t, err)
	}
	assert.NotEmpty(t, b.Settled())
	next, ok := b.Falling()
	require.True(t, ok)
	assert.Equal(t, SpawnRow, next.Row)
}

func TestHardDropMatchesRepeatedTicks(t *testing.T) {
	a := startedBoard(t, 8)
	b := a.Clone()

	_, err := a.HardDrop()
	require.NoError(t, err)
	for b.PiecesPlaced() == 1 {
		_, err := b.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, a.Settled(), b.Settled())
}

func TestDropFromDoesNotMutate(t *testing.T) {
	b := newBoard(t, DefaultOptions())
	rest, ok := b.DropFrom(Piece{Kind: KindO, Row: 2, Col: 3})
	require.True(t, ok)
	assert.Equal(t, 18, rest.Row)
	assert.Empty(t, b.Settled())
}

func TestSettleWithoutClearKeepsFullRows(t *testing.T) {
	b, err := FromRows([]string{
		"....",
		"....",
		"....",
		"##..",
		"##..",
	}, DefaultOptions())
	require.NoError(t, err)

	b.SettleWithoutClear(Piece{Kind: KindO, Row: 3, Col: 2})
	assert.Len(t, b.CompletedRows(), 2)
	assert.Equal(t, 0, b.Score())
}

func TestSettleIllegalPanics(t *testing.T) {
	b := newBoard(t, DefaultOptions())
	assert.Panics(t, func() {
		b.SettleWithoutClear(Piece{Kind: KindO, Row: 19, Col: 0})
	})
}

func TestClearDropsBlocksIndependently(t *testing.T) {
	b, err := FromRows([]string{
		"......",
		"......",
		"......",
		"..#...",
		"......",
		"######",
		"....#.",
		"######",
	}, DefaultOptions())
	require.NoError(t, err)

	n := b.ClearCompletedLines()
	assert.Equal(t, 2, n)
	assert.Equal(t, 100, b.Score())
	assert.Equal(t, 2, b.Lines())

	assert.Equal(t, []SettledCell{
		{Row: 5, Col: 2, Kind: KindO},
		{Row: 7, Col: 4, Kind: KindO},
	}, b.Settled())
}

func TestClearIsIdempotent(t *testing.T) {
	b, err := FromRows([]string{
		"....",
		"#...",
		"####",
		".##.",
	}, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, 1, b.ClearCompletedLines())
	snapshot := b.String()
	score := b.Score()

	assert.Equal(t, 0, b.ClearCompletedLines())
	assert.Equal(t, snapshot, b.String())
	assert.Equal(t, score, b.Score())
}

func TestClearScoreTable(t *testing.T) {
	tests := []struct {
		rows int
		want int
	}{
		{0, 0},
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
		{5, 1200},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, PointsFor(tc.rows), "rows %d", tc.rows)
	}
}

func TestFourLineClear(t *testing.T) {
	b, err := FromRows([]string{
		"....",
		"....",
		"###.",
		"###.",
		"###.",
		"###.",
	}, DefaultOptions())
	require.NoError(t, err)

	b.SettleWithoutClear(Piece{Kind: KindI, Orientation: 1, Row: 2, Col: 2})
	assert.Equal(t, 4, b.ClearCompletedLines())
	assert.Equal(t, 1200, b.Score())
	assert.Empty(t, b.Settled())
}

func TestPieceLimitEndsGame(t *testing.T) {
	opts := DefaultOptions()
	opts.PieceLimit = 3
	b := newBoard(t, opts)
	require.NoError(t, b.StartGame())
	assert.Equal(t, 2, b.PieceLimit())

	var err error
	for err == nil {
		_, err = b.HardDrop()
	}
	score, over := IsGameOver(err)
	require.True(t, over)
	assert.Equal(t, b.Score(), score)
	assert.Equal(t, 3, b.PiecesPlaced())
	assert.Equal(t, 0, b.PieceLimit())
	assert.True(t, b.Over())
	_, falling := b.Falling()
	assert.False(t, falling)
}

func TestZeroPieceLimitEndsAtStart(t *testing.T) {
	opts := DefaultOptions()
	opts.PieceLimit = 0
	b := newBoard(t, opts)

	err := b.StartGame()
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, 0, b.PiecesPlaced())
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	b, err := FromRows([]string{
		"...####...",
		"..........",
		"..........",
		"..........",
	}, DefaultOptions())
	require.NoError(t, err)

	err = b.StartGame()
	require.Error(t, err)
	var over *GameOverError
	require.True(t, errors.As(err, &over))
	assert.Equal(t, 0, over.Score)
	_, falling := b.Falling()
	assert.False(t, falling)
}

func TestGameOverIsSticky(t *testing.T) {
	opts := DefaultOptions()
	opts.PieceLimit = 1
	b := newBoard(t, opts)
	require.NoError(t, b.StartGame())

	_, err := b.HardDrop()
	require.ErrorIs(t, err, ErrGameOver)

	assert.False(t, b.MoveLeft())
	assert.False(t, b.RotateClockwise())
	_, err = b.Tick()
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = b.HardDrop()
	assert.ErrorIs(t, err, ErrGameOver)
	assert.ErrorIs(t, b.SpawnNext(), ErrGameOver)
}

func TestResignEndsGameInPlace(t *testing.T) {
	b := startedBoard(t, 3)
	before := b.String()

	err := b.Resign()
	score, over := IsGameOver(err)
	require.True(t, over)
	assert.Equal(t, 0, score)
	assert.True(t, b.Over())
	assert.Empty(t, b.Settled())
	_, falling := b.Falling()
	assert.False(t, falling)
	assert.NotEqual(t, before, b.String())

	assert.Same(t, err, b.Resign())
	_, err = b.HardDrop()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestStackingToTheTopEndsGame(t *testing.T) {
	b := startedBoard(t, 12)

	var err error
	for i := 0; i < 1000 && err == nil; i++ {
		_, err = b.HardDrop()
	}
	require.ErrorIs(t, err, ErrGameOver)
	assert.True(t, b.Over())
}

func TestScoreNeverDecreases(t *testing.T) {
	b := startedBoard(t, 21)

	last := 0
	for i := 0; i < 300 && !b.Over(); i++ {
		switch i % 4 {
		case 0:
			b.MoveLeft()
		case 1:
			b.RotateClockwise()
		case 2:
			b.MoveRight()
		}
		b.Tick()
		require.GreaterOrEqual(t, b.Score(), last)
		last = b.Score()
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := startedBoard(t, 6)
	c := b.Clone()

	_, err := c.HardDrop()
	require.NoError(t, err)

	assert.Empty(t, b.Settled())
	assert.NotEmpty(t, c.Settled())
	assert.Equal(t, 1, b.PiecesPlaced())

	orig, _ := b.Falling()
	c.MoveLeft()
	now, _ := b.Falling()
	assert.Equal(t, orig, now)
}

func TestCloneDrawsSameSequence(t *testing.T) {
	b := startedBoard(t, 13)
	c := b.Clone()

	for i := 0; i < 5; i++ {
		_, errB := b.HardDrop()
		_, errC := c.HardDrop()
		require.NoError(t, errB)
		require.NoError(t, errC)
		pb, _ := b.Falling()
		pc, _ := c.Falling()
		assert.Equal(t, pb.Kind, pc.Kind)
		assert.Equal(t, b.Next().Kind, c.Next().Kind)
	}
}

func TestFromRowsRejectsRagged(t *testing.T) {
	_, err := FromRows([]string{"....", "..."}, DefaultOptions())
	assert.Error(t, err)
}
