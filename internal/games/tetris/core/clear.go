package core

// linePoints is the score awarded for clearing n rows at once.
var linePoints = [5]int{0, 40, 100, 300, 1200}

// PointsFor returns the score for clearing n rows in one landing.
// Counts above four only occur on hand-built boards and score as four.
func PointsFor(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(linePoints) {
		return linePoints[len(linePoints)-1]
	}
	return linePoints[n]
}

// rowFull reports whether every cell of row r is occupied.
func (b *Board) rowFull(r int) bool {
	for c := 0; c < b.width; c++ {
		if b.cells[b.index(r, c)] == KindNone {
			return false
		}
	}
	return true
}

// CompletedRows returns the indices of all full rows, top to bottom.
func (b *Board) CompletedRows() []int {
	var rows []int
	for r := 0; r < b.height; r++ {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

// ClearCompletedLines removes every full row at once and scores them.
// Each surviving row falls by the number of removed rows strictly below it,
// so blocks separated by a kept row drop different distances. It returns the
// number of rows removed.
func (b *Board) ClearCompletedLines() int {
	full := make([]bool, b.height)
	n := 0
	for r := 0; r < b.height; r++ {
		if b.rowFull(r) {
			full[r] = true
			n++
		}
	}
	if n == 0 {
		return 0
	}

	// Walk bottom-up so a row is always copied into a slot that has already
	// been read.
	below := 0
	for r := b.height - 1; r >= 0; r-- {
		if full[r] {
			below++
			continue
		}
		if below == 0 {
			continue
		}
		dst := r + below
		copy(b.cells[b.index(dst, 0):b.index(dst, 0)+b.width], b.cells[b.index(r, 0):b.index(r, 0)+b.width])
	}
	for r := 0; r < n; r++ {
		for c := 0; c < b.width; c++ {
			b.cells[b.index(r, c)] = KindNone
		}
	}

	b.lines += n
	b.score += PointsFor(n)
	return n
}
