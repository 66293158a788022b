package core

import "fmt"

// Color identifies the side a piece belongs to. The zero value is an absent color
// and is rejected by piece constructors.
type Color byte

const (
	ColorBlack Color = 'b' // moves toward row 0
	ColorWhite Color = 'w' // moves toward row 7
)

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "b"
	case ColorWhite:
		return "w"
	default:
		return "-"
	}
}

// Valid reports whether c is one of the two sides
func (c Color) Valid() bool {
	return c == ColorBlack || c == ColorWhite
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "b", "black":
		return ColorBlack, nil
	case "w", "white":
		return ColorWhite, nil
	default:
		return 0, fmt.Errorf("invalid color %q: must be 'b' or 'w'", s)
	}
}

// OppositeColor returns the other side. Any color other than white maps to white.
func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

type Kind int

const (
	KindRegular Kind = iota + 1
	KindRoyal
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindRoyal:
		return "royal"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "regular", "man", "r":
		return KindRegular, nil
	case "royal", "king", "k":
		return KindRoyal, nil
	default:
		return 0, fmt.Errorf("invalid kind %q: must be 'regular' or 'royal'", s)
	}
}
