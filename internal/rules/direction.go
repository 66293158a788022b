package rules

// Direction is one of the four diagonals. Up means increasing row.
type Direction int

const (
	UpLeft Direction = iota
	UpRight
	DownLeft
	DownRight
)

// Directions lists every diagonal in a fixed order
var Directions = [4]Direction{UpLeft, UpRight, DownLeft, DownRight}

func (d Direction) String() string {
	switch d {
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	case DownLeft:
		return "down-left"
	case DownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// Delta returns the row and column offset of a single step
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case UpLeft:
		return 1, -1
	case UpRight:
		return 1, 1
	case DownLeft:
		return -1, -1
	default:
		return -1, 1
	}
}

// Step returns the square n steps from (row, column) in direction d. The result
// may be off the board.
func (d Direction) Step(row, column, n int) (int, int) {
	dr, dc := d.Delta()
	return row + dr*n, column + dc*n
}

// canMoveToward reports whether target is exactly one step from current in
// direction d and is itself a valid square.
func canMoveToward(d Direction, currentRow, currentColumn, targetRow, targetColumn int) bool {
	r, c := d.Step(currentRow, currentColumn, 1)
	return targetRow == r && targetColumn == c && IsValidSquare(targetRow, targetColumn)
}

// canCaptureToward reports whether the opponent sits one step away in direction d
// and the landing square two steps away is valid. Occupancy of the landing square
// is not checked.
func canCaptureToward(d Direction, currentRow, currentColumn, opponentRow, opponentColumn int) bool {
	r, c := d.Step(currentRow, currentColumn, 1)
	if opponentRow != r || opponentColumn != c {
		return false
	}
	landRow, landColumn := d.Step(currentRow, currentColumn, 2)
	return IsValidSquare(landRow, landColumn)
}

func canMoveUpLeft(currentRow, currentColumn, targetRow, targetColumn int) bool {
	return canMoveToward(UpLeft, currentRow, currentColumn, targetRow, targetColumn)
}

func canMoveUpRight(currentRow, currentColumn, targetRow, targetColumn int) bool {
	return canMoveToward(UpRight, currentRow, currentColumn, targetRow, targetColumn)
}

func canMoveDownLeft(currentRow, currentColumn, targetRow, targetColumn int) bool {
	return canMoveToward(DownLeft, currentRow, currentColumn, targetRow, targetColumn)
}

func canMoveDownRight(currentRow, currentColumn, targetRow, targetColumn int) bool {
	return canMoveToward(DownRight, currentRow, currentColumn, targetRow, targetColumn)
}

func canCaptureUpLeft(currentRow, currentColumn, opponentRow, opponentColumn int) bool {
	return canCaptureToward(UpLeft, currentRow, currentColumn, opponentRow, opponentColumn)
}

func canCaptureUpRight(currentRow, currentColumn, opponentRow, opponentColumn int) bool {
	return canCaptureToward(UpRight, currentRow, currentColumn, opponentRow, opponentColumn)
}

func canCaptureDownLeft(currentRow, currentColumn, opponentRow, opponentColumn int) bool {
	return canCaptureToward(DownLeft, currentRow, currentColumn, opponentRow, opponentColumn)
}

func canCaptureDownRight(currentRow, currentColumn, opponentRow, opponentColumn int) bool {
	return canCaptureToward(DownRight, currentRow, currentColumn, opponentRow, opponentColumn)
}
