// Package storage keeps an audit log of legality probes in SQLite. Writes are
// queued to a single writer goroutine; a failed write marks the store degraded
// and later writes are dropped rather than blocking callers.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	writeQueueSize  = 1000
	shutdownTimeout = 2 * time.Second
)

var ErrQueueFull = errors.New("storage write queue full")

type Store struct {
	db      *sql.DB
	path    string
	writes  chan func(*sql.Tx) error
	healthy atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewStore opens the database and starts the writer. WAL journaling is enabled
// in dev mode.
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		db:     db,
		path:   dataSourceName,
		writes: make(chan func(*sql.Tx) error, writeQueueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	s.healthy.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.drain()
			return
		case fn := <-s.writes:
			if s.healthy.Load() {
				s.executeWrite(fn)
			}
		}
	}
}

// drain flushes whatever is already queued, bounded by shutdownTimeout
func (s *Store) drain() {
	deadline := time.After(shutdownTimeout)
	for {
		select {
		case fn := <-s.writes:
			if s.healthy.Load() {
				s.executeWrite(fn)
			}
		case <-deadline:
			return
		default:
			return
		}
	}
}

func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		s.degrade(fmt.Errorf("begin transaction: %w", err))
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		s.degrade(fmt.Errorf("write: %w", err))
		return
	}

	if err := tx.Commit(); err != nil {
		s.degrade(fmt.Errorf("commit: %w", err))
	}
}

func (s *Store) degrade(err error) {
	log.Error().Err(err).Str("path", s.path).Msg("storage degraded")
	s.healthy.Store(false)
}

// enqueue hands fn to the writer without blocking
func (s *Store) enqueue(fn func(*sql.Tx) error) error {
	if !s.healthy.Load() {
		return nil
	}
	select {
	case s.writes <- fn:
		return nil
	default:
		log.Warn().Msg("storage write queue full, dropping record")
		return ErrQueueFull
	}
}

// RecordProbe asynchronously records a legality probe
func (s *Store) RecordProbe(record ProbeRecord) error {
	return s.enqueue(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO probes (
			probe_id, probe_type,
			piece_kind, piece_color, piece_row, piece_column,
			target_row, target_column, target_kind, target_color,
			legal, probe_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ProbeID, record.ProbeType,
			record.PieceKind, record.PieceColor, record.PieceRow, record.PieceColumn,
			record.TargetRow, record.TargetColumn, record.TargetKind, record.TargetColor,
			record.Legal, record.ProbeTimeUTC,
		)
		return err
	})
}

// QueryProbes returns recorded probes, newest first. Empty or "*" filters match
// everything; limit <= 0 means no limit.
func (s *Store) QueryProbes(probeType, color string, limit int) ([]ProbeRecord, error) {
	query := `SELECT
		probe_id, probe_type,
		piece_kind, piece_color, piece_row, piece_column,
		target_row, target_column, target_kind, target_color,
		legal, probe_time_utc
	FROM probes WHERE 1=1`

	var args []any
	if probeType != "" && probeType != "*" {
		query += " AND probe_type = ?"
		args = append(args, probeType)
	}
	if color != "" && color != "*" {
		query += " AND piece_color = ?"
		args = append(args, color)
	}
	query += " ORDER BY probe_time_utc DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var probes []ProbeRecord
	for rows.Next() {
		var p ProbeRecord
		if err := rows.Scan(
			&p.ProbeID, &p.ProbeType,
			&p.PieceKind, &p.PieceColor, &p.PieceRow, &p.PieceColumn,
			&p.TargetRow, &p.TargetColumn, &p.TargetKind, &p.TargetColor,
			&p.Legal, &p.ProbeTimeUTC,
		); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		probes = append(probes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return probes, nil
}

func (s *Store) IsHealthy() bool {
	return s.healthy.Load()
}

// Close stops the writer, flushing queued writes, and closes the database
func (s *Store) Close() error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		log.Warn().Msg("storage writer shutdown timeout, some writes may be lost")
	}

	return s.db.Close()
}

// InitDB creates the schema if it does not exist
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}
