package commands

import (
	"fmt"
	"strconv"
	"strings"

	"checkers/internal/client/display"
	"checkers/internal/core"
)

func (r *Registry) registerRuleCommands() {
	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Check whether a piece can step to a square",
		Usage:       "move <kind> <color> <row> <col> <toRow> <toCol>",
		Group:       "Rules",
		Handler:     r.moveHandler,
	})

	r.Register(&Command{
		Name:        "capture",
		ShortName:   "c",
		Description: "Check whether a piece can jump another",
		Usage:       "capture <kind> <color> <row> <col> <kind> [color] <row> <col>",
		Group:       "Rules",
		Handler:     r.captureHandler,
	})

	r.Register(&Command{
		Name:        "targets",
		ShortName:   "t",
		Description: "List the squares a piece can step to",
		Usage:       "targets <kind> <color> <row> <col>",
		Group:       "Rules",
		Handler:     r.targetsHandler,
	})

	r.Register(&Command{
		Name:        "probes",
		ShortName:   "p",
		Description: "List recorded probes",
		Usage:       "probes [move|capture|*] [b|w|*] [limit]",
		Group:       "Rules",
		Handler:     r.probesHandler,
	})
}

// parsePiece reads a <kind> <color> <row> <col> descriptor
func parsePiece(args []string) (core.PieceSpec, error) {
	if len(args) < 4 {
		return core.PieceSpec{}, fmt.Errorf("piece needs <kind> <color> <row> <col>")
	}

	kind, err := core.ParseKind(strings.ToLower(args[0]))
	if err != nil {
		return core.PieceSpec{}, err
	}
	color, err := core.ParseColor(strings.ToLower(args[1]))
	if err != nil {
		return core.PieceSpec{}, err
	}
	row, column, err := parseSquare(args[2:4])
	if err != nil {
		return core.PieceSpec{}, err
	}

	return core.PieceSpec{
		Kind:   kind.String(),
		Color:  color.String(),
		Row:    core.Ptr(row),
		Column: core.Ptr(column),
	}, nil
}

func parseSquare(args []string) (int, int, error) {
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid row %q", args[0])
	}
	column, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q", args[1])
	}
	return row, column, nil
}

func describePiece(p core.PieceSpec) string {
	return fmt.Sprintf("%s %s at %s", display.ColorForSide(p.Color), p.Kind, display.Square(*p.Row, *p.Column))
}

func (r *Registry) moveHandler(s *Session, args []string) error {
	if len(args) != 6 {
		return fmt.Errorf("usage: move <kind> <color> <row> <col> <toRow> <toCol>")
	}
	piece, err := parsePiece(args[:4])
	if err != nil {
		return err
	}
	row, column, err := parseSquare(args[4:6])
	if err != nil {
		return err
	}

	resp, err := s.Client.CheckMove(core.MoveCheckRequest{Piece: piece, Row: core.Ptr(row), Column: core.Ptr(column)})
	if err != nil {
		return err
	}
	s.Last = resp.ProbeID

	fmt.Fprintf(r.out, "%s -> %s: %s\n", describePiece(piece), display.Square(row, column), display.Verdict(resp.Legal))
	if s.Verbose {
		display.PrettyPrintJSON(r.out, resp)
	}
	return nil
}

func (r *Registry) captureHandler(s *Session, args []string) error {
	if len(args) != 7 && len(args) != 8 {
		return fmt.Errorf("usage: capture <kind> <color> <row> <col> <kind> [color] <row> <col>")
	}
	piece, err := parsePiece(args[:4])
	if err != nil {
		return err
	}

	targetArgs := args[4:]
	if len(targetArgs) == 3 {
		// color omitted: the target belongs to the other side
		color, _ := core.ParseColor(piece.Color)
		targetArgs = []string{targetArgs[0], core.OppositeColor(color).String(), targetArgs[1], targetArgs[2]}
	}
	target, err := parsePiece(targetArgs)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	resp, err := s.Client.CheckCapture(core.CaptureCheckRequest{Piece: piece, Target: target})
	if err != nil {
		return err
	}
	s.Last = resp.ProbeID

	fmt.Fprintf(r.out, "%s x %s: %s\n", describePiece(piece), describePiece(target), display.Verdict(resp.Legal))
	if s.Verbose {
		display.PrettyPrintJSON(r.out, resp)
	}
	return nil
}

func (r *Registry) targetsHandler(s *Session, args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: targets <kind> <color> <row> <col>")
	}
	piece, err := parsePiece(args)
	if err != nil {
		return err
	}

	resp, err := s.Client.Targets(core.TargetsRequest{Piece: piece})
	if err != nil {
		return err
	}

	if len(resp.Targets) == 0 {
		fmt.Fprintf(r.out, "%s: no moves\n", describePiece(piece))
		return nil
	}
	squares := make([]string, 0, len(resp.Targets))
	for _, sq := range resp.Targets {
		squares = append(squares, display.Square(sq.Row, sq.Column))
	}
	fmt.Fprintf(r.out, "%s: %s\n", describePiece(piece), strings.Join(squares, " "))
	return nil
}

func (r *Registry) probesHandler(s *Session, args []string) error {
	var probeType, color string
	limit := 20
	if len(args) > 0 {
		probeType = args[0]
	}
	if len(args) > 1 {
		color = args[1]
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[2])
		}
		limit = n
	}

	resp, err := s.Client.Probes(probeType, color, limit)
	if err != nil {
		return err
	}

	if s.Verbose {
		display.PrettyPrintJSON(r.out, resp)
		return nil
	}
	for _, p := range resp.Probes {
		target := display.Square(p.TargetRow, p.TargetColumn)
		if p.Type == "capture" {
			target = fmt.Sprintf("%s %s at %s", p.TargetColor, p.TargetKind, target)
		}
		fmt.Fprintf(r.out, "  %s  %-7s %s %s %s -> %s: %s\n",
			shortID(p.ProbeID), p.Type, p.PieceColor, p.PieceKind,
			display.Square(p.PieceRow, p.PieceColumn), target, display.Verdict(p.Legal))
	}
	fmt.Fprintf(r.out, "%d probe(s)\n", resp.Count)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
