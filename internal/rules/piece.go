package rules

import (
	"errors"
	"fmt"

	"checkers/internal/core"
)

var (
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidKind  = errors.New("invalid kind")
)

// Piece is the query surface shared by regular and royal pieces
type Piece interface {
	Row() int
	Column() int
	Color() core.Color
	Kind() core.Kind

	// CanMove reports whether the piece may step to (row, column). Off-board and
	// light squares yield false.
	CanMove(row, column int) bool

	// CanCapture reports whether the piece may jump other, assuming the landing
	// square is empty. A nil other yields false.
	CanCapture(other Piece) bool
}

// SameColor reports whether two pieces belong to the same side
func SameColor(a, b Piece) bool {
	return a.Color() == b.Color()
}

// New constructs a piece of the given kind
func New(kind core.Kind, row, column int, color core.Color) (Piece, error) {
	switch kind {
	case core.KindRegular:
		p, err := NewRegular(row, column, color)
		if err != nil {
			return nil, err
		}
		return p, nil
	case core.KindRoyal:
		p, err := NewRoyal(row, column, color)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
}

type base struct {
	pos   Position
	color core.Color
}

// newBase validates the square before the color, so a bad square wins when
// both are wrong.
func newBase(row, column int, color core.Color) (base, error) {
	pos, err := NewPosition(row, column)
	if err != nil {
		return base{}, err
	}
	if !color.Valid() {
		return base{}, fmt.Errorf("%w: %q", ErrInvalidColor, byte(color))
	}
	return base{pos: pos, color: color}, nil
}

func (b base) Row() int {
	return b.pos.Row()
}

func (b base) Column() int {
	return b.pos.Column()
}

func (b base) Color() core.Color {
	return b.color
}

// Regular moves and captures only toward the opponent's edge: black toward
// row 0, white toward row 7.
type Regular struct {
	base
}

func NewRegular(row, column int, color core.Color) (*Regular, error) {
	b, err := newBase(row, column, color)
	if err != nil {
		return nil, err
	}
	return &Regular{base: b}, nil
}

func (p *Regular) Kind() core.Kind {
	return core.KindRegular
}

func (p *Regular) CanMove(row, column int) bool {
	if !IsValidSquare(row, column) {
		return false
	}
	r, c := p.Row(), p.Column()
	if p.color == core.ColorBlack {
		return canMoveDownLeft(r, c, row, column) || canMoveDownRight(r, c, row, column)
	}
	return canMoveUpLeft(r, c, row, column) || canMoveUpRight(r, c, row, column)
}

func (p *Regular) CanCapture(other Piece) bool {
	if other == nil || SameColor(p, other) {
		return false
	}
	r, c := p.Row(), p.Column()
	or, oc := other.Row(), other.Column()
	if p.color == core.ColorBlack {
		return canCaptureDownLeft(r, c, or, oc) || canCaptureDownRight(r, c, or, oc)
	}
	return canCaptureUpLeft(r, c, or, oc) || canCaptureUpRight(r, c, or, oc)
}

// Royal moves and captures one step in any diagonal regardless of color.
type Royal struct {
	base
}

func NewRoyal(row, column int, color core.Color) (*Royal, error) {
	b, err := newBase(row, column, color)
	if err != nil {
		return nil, err
	}
	return &Royal{base: b}, nil
}

func (p *Royal) Kind() core.Kind {
	return core.KindRoyal
}

func (p *Royal) CanMove(row, column int) bool {
	if !IsValidSquare(row, column) {
		return false
	}
	r, c := p.Row(), p.Column()
	return canMoveUpLeft(r, c, row, column) ||
		canMoveUpRight(r, c, row, column) ||
		canMoveDownLeft(r, c, row, column) ||
		canMoveDownRight(r, c, row, column)
}

func (p *Royal) CanCapture(other Piece) bool {
	if other == nil || SameColor(p, other) {
		return false
	}
	r, c := p.Row(), p.Column()
	or, oc := other.Row(), other.Column()
	return canCaptureUpLeft(r, c, or, oc) ||
		canCaptureUpRight(r, c, or, oc) ||
		canCaptureDownLeft(r, c, or, oc) ||
		canCaptureDownRight(r, c, or, oc)
}

// MoveTargets lists the squares p can step to, in Directions order
func MoveTargets(p Piece) []Position {
	var targets []Position
	for _, d := range Directions {
		row, column := d.Step(p.Row(), p.Column(), 1)
		if !p.CanMove(row, column) {
			continue
		}
		// CanMove already validated the square
		pos, _ := NewPosition(row, column)
		targets = append(targets, pos)
	}
	return targets
}
