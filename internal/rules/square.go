// Package rules answers per-piece legality questions on an 8x8 checkers board:
// whether a piece can step to a square and whether it can jump another piece.
// It holds no board state; occupancy, turn order and multi-jump chaining belong
// to the caller.
package rules

import (
	"errors"
	"fmt"
)

// BoardSize is the number of rows and columns on the board
const BoardSize = 8

var ErrInvalidPosition = errors.New("invalid position")

// PositionError reports the coordinates rejected by NewPosition
type PositionError struct {
	Row    int
	Column int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("invalid position (%d,%d): must be a dark square within [0,%d]", e.Row, e.Column, BoardSize-1)
}

func (e *PositionError) Is(target error) bool {
	return target == ErrInvalidPosition
}

// IsValidSquare reports whether (row, column) is on the board and dark
func IsValidSquare(row, column int) bool {
	return row >= 0 && row < BoardSize &&
		column >= 0 && column < BoardSize &&
		(row+column)%2 == 0
}

// Position is a validated dark square. The zero value is (0,0), itself a legal square.
type Position struct {
	row    int
	column int
}

func NewPosition(row, column int) (Position, error) {
	if !IsValidSquare(row, column) {
		return Position{}, &PositionError{Row: row, Column: column}
	}
	return Position{row: row, column: column}, nil
}

func (p Position) Row() int {
	return p.row
}

func (p Position) Column() int {
	return p.column
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.row, p.column)
}
