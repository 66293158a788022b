// Package transport defines what transport layers need from the rules service.
package transport

import (
	"checkers/internal/rules"
	"checkers/internal/service"
	"checkers/internal/storage"
)

// Prober answers legality probes independent of transport medium
type Prober interface {
	CheckMove(piece service.PieceSpec, row, column int) (service.Verdict, error)
	CheckCapture(piece, target service.PieceSpec) (service.Verdict, error)
	Targets(piece service.PieceSpec) ([]rules.Position, error)
	Probes(probeType, color string, limit int) ([]storage.ProbeRecord, error)
	StorageHealth() string
}

var _ Prober = (*service.Service)(nil)
