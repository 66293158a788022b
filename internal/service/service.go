// Package service answers legality probes for transport layers and records
// each answer in the optional probe store.
package service

import (
	"errors"
	"fmt"
	"time"

	"checkers/internal/core"
	"checkers/internal/rules"
	"checkers/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrStorageDisabled = errors.New("storage disabled")

// PieceSpec is the transport-neutral description of a piece to construct
type PieceSpec struct {
	Kind   core.Kind
	Color  core.Color
	Row    int
	Column int
}

// Verdict is the answer to a single probe
type Verdict struct {
	ProbeID string
	Type    string
	Legal   bool
}

// Service is stateless apart from the probe store; pieces are built per call.
type Service struct {
	store *storage.Store // nil if persistence disabled
	now   func() time.Time
}

func New(store *storage.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Piece constructs the piece described by desc
func (s *Service) Piece(desc PieceSpec) (rules.Piece, error) {
	p, err := rules.New(desc.Kind, desc.Row, desc.Column, desc.Color)
	if err != nil {
		return nil, fmt.Errorf("construct %s piece: %w", desc.Kind, err)
	}
	return p, nil
}

// CheckMove reports whether the piece can step to (row, column). Only piece
// construction can fail; any target square is accepted.
func (s *Service) CheckMove(desc PieceSpec, row, column int) (Verdict, error) {
	p, err := s.Piece(desc)
	if err != nil {
		return Verdict{}, err
	}

	v := Verdict{
		ProbeID: uuid.New().String(),
		Type:    storage.ProbeMove,
		Legal:   p.CanMove(row, column),
	}

	log.Debug().
		Str("probe", v.ProbeID).
		Stringer("piece", desc.Kind).
		Stringer("color", desc.Color).
		Int("row", desc.Row).Int("column", desc.Column).
		Int("targetRow", row).Int("targetColumn", column).
		Bool("legal", v.Legal).
		Msg("move probe")

	s.record(storage.ProbeRecord{
		ProbeID:      v.ProbeID,
		ProbeType:    v.Type,
		PieceKind:    desc.Kind.String(),
		PieceColor:   desc.Color.String(),
		PieceRow:     desc.Row,
		PieceColumn:  desc.Column,
		TargetRow:    row,
		TargetColumn: column,
		Legal:        v.Legal,
		ProbeTimeUTC: s.now(),
	})
	return v, nil
}

// CheckCapture reports whether the piece can jump target. Both pieces must be
// constructible.
func (s *Service) CheckCapture(desc, target PieceSpec) (Verdict, error) {
	p, err := s.Piece(desc)
	if err != nil {
		return Verdict{}, err
	}
	victim, err := s.Piece(target)
	if err != nil {
		return Verdict{}, fmt.Errorf("target: %w", err)
	}

	v := Verdict{
		ProbeID: uuid.New().String(),
		Type:    storage.ProbeCapture,
		Legal:   p.CanCapture(victim),
	}

	log.Debug().
		Str("probe", v.ProbeID).
		Stringer("piece", desc.Kind).
		Stringer("color", desc.Color).
		Int("row", desc.Row).Int("column", desc.Column).
		Stringer("target", target.Kind).
		Stringer("targetColor", target.Color).
		Int("targetRow", target.Row).Int("targetColumn", target.Column).
		Bool("legal", v.Legal).
		Msg("capture probe")

	s.record(storage.ProbeRecord{
		ProbeID:      v.ProbeID,
		ProbeType:    v.Type,
		PieceKind:    desc.Kind.String(),
		PieceColor:   desc.Color.String(),
		PieceRow:     desc.Row,
		PieceColumn:  desc.Column,
		TargetRow:    target.Row,
		TargetColumn: target.Column,
		TargetKind:   target.Kind.String(),
		TargetColor:  target.Color.String(),
		Legal:        v.Legal,
		ProbeTimeUTC: s.now(),
	})
	return v, nil
}

// Targets lists every square the piece can step to
func (s *Service) Targets(desc PieceSpec) ([]rules.Position, error) {
	p, err := s.Piece(desc)
	if err != nil {
		return nil, err
	}
	return rules.MoveTargets(p), nil
}

// Probes returns recorded probes, newest first
func (s *Service) Probes(probeType, color string, limit int) ([]storage.ProbeRecord, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	return s.store.QueryProbes(probeType, color, limit)
}

func (s *Service) record(r storage.ProbeRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.RecordProbe(r); err != nil {
		log.Warn().Err(err).Str("probe", r.ProbeID).Msg("probe not recorded")
	}
}

// StorageHealth returns the storage component status
func (s *Service) StorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

func (s *Service) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
