package storage

import "time"

// ProbeRecord represents a row in the probes table
type ProbeRecord struct {
	ProbeID      string    `db:"probe_id"`
	ProbeType    string    `db:"probe_type"` // "move" or "capture"
	PieceKind    string    `db:"piece_kind"`
	PieceColor   string    `db:"piece_color"` // "w" or "b"
	PieceRow     int       `db:"piece_row"`
	PieceColumn  int       `db:"piece_column"`
	TargetRow    int       `db:"target_row"`
	TargetColumn int       `db:"target_column"`
	TargetKind   string    `db:"target_kind"`  // empty for move probes
	TargetColor  string    `db:"target_color"` // empty for move probes
	Legal        bool      `db:"legal"`
	ProbeTimeUTC time.Time `db:"probe_time_utc"`
}

const (
	ProbeMove    = "move"
	ProbeCapture = "capture"
)

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS probes (
	probe_id TEXT PRIMARY KEY,
	probe_type TEXT NOT NULL CHECK(probe_type IN ('move', 'capture')),
	piece_kind TEXT NOT NULL CHECK(piece_kind IN ('regular', 'royal')),
	piece_color TEXT NOT NULL CHECK(piece_color IN ('w', 'b')),
	piece_row INTEGER NOT NULL,
	piece_column INTEGER NOT NULL,
	target_row INTEGER NOT NULL,
	target_column INTEGER NOT NULL,
	target_kind TEXT NOT NULL DEFAULT '',
	target_color TEXT NOT NULL DEFAULT '',
	legal INTEGER NOT NULL,
	probe_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_probes_type ON probes(probe_type);
CREATE INDEX IF NOT EXISTS idx_probes_color ON probes(piece_color);
`
