package service

import (
	"errors"
	"path/filepath"
	"testing"

	"checkers/internal/core"
	"checkers/internal/rules"
	"checkers/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regular(color core.Color, row, column int) PieceSpec {
	return PieceSpec{Kind: core.KindRegular, Color: color, Row: row, Column: column}
}

func royal(color core.Color, row, column int) PieceSpec {
	return PieceSpec{Kind: core.KindRoyal, Color: color, Row: row, Column: column}
}

func TestCheckMove(t *testing.T) {
	svc := New(nil)

	v, err := svc.CheckMove(regular(core.ColorBlack, 5, 1), 4, 0)
	require.NoError(t, err)
	assert.True(t, v.Legal)
	assert.Equal(t, storage.ProbeMove, v.Type)
	_, err = uuid.Parse(v.ProbeID)
	assert.NoError(t, err)

	v, err = svc.CheckMove(regular(core.ColorBlack, 5, 1), 6, 0)
	require.NoError(t, err)
	assert.False(t, v.Legal)

	// arbitrary targets are probed without error
	v, err = svc.CheckMove(royal(core.ColorWhite, 2, 4), 100, -3)
	require.NoError(t, err)
	assert.False(t, v.Legal)
}

func TestCheckMoveConstructionErrors(t *testing.T) {
	svc := New(nil)

	_, err := svc.CheckMove(regular(core.ColorBlack, 5, 6), 4, 5)
	assert.True(t, errors.Is(err, rules.ErrInvalidPosition))

	_, err = svc.CheckMove(regular(0, 5, 1), 4, 0)
	assert.True(t, errors.Is(err, rules.ErrInvalidColor))

	_, err = svc.CheckMove(PieceSpec{Color: core.ColorBlack, Row: 5, Column: 1}, 4, 0)
	assert.True(t, errors.Is(err, rules.ErrInvalidKind))
}

func TestCheckCapture(t *testing.T) {
	svc := New(nil)

	v, err := svc.CheckCapture(regular(core.ColorWhite, 2, 2), regular(core.ColorBlack, 3, 1))
	require.NoError(t, err)
	assert.True(t, v.Legal)
	assert.Equal(t, storage.ProbeCapture, v.Type)

	v, err = svc.CheckCapture(royal(core.ColorWhite, 2, 6), royal(core.ColorBlack, 3, 7))
	require.NoError(t, err)
	assert.False(t, v.Legal)

	_, err = svc.CheckCapture(regular(core.ColorWhite, 2, 2), regular(core.ColorBlack, 3, 2))
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrInvalidPosition))
	assert.Contains(t, err.Error(), "target")
}

func TestTargets(t *testing.T) {
	svc := New(nil)

	targets, err := svc.Targets(royal(core.ColorBlack, 0, 0))
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, 1, targets[0].Row())
	assert.Equal(t, 1, targets[0].Column())

	_, err = svc.Targets(royal(core.ColorBlack, 0, 9))
	assert.Error(t, err)
}

func TestProbesWithoutStorage(t *testing.T) {
	svc := New(nil)
	_, err := svc.Probes("", "", 0)
	assert.ErrorIs(t, err, ErrStorageDisabled)
	assert.Equal(t, "disabled", svc.StorageHealth())
	assert.NoError(t, svc.Close())
}

func TestProbesRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probes.db")
	store, err := storage.NewStore(path, false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())

	svc := New(store)
	assert.Equal(t, "ok", svc.StorageHealth())

	move, err := svc.CheckMove(regular(core.ColorWhite, 2, 2), 3, 3)
	require.NoError(t, err)
	capture, err := svc.CheckCapture(royal(core.ColorBlack, 0, 0), regular(core.ColorWhite, 1, 1))
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	store, err = storage.NewStore(path, false)
	require.NoError(t, err)
	svc = New(store)
	defer svc.Close()

	probes, err := svc.Probes(storage.ProbeCapture, "", 0)
	require.NoError(t, err)
	require.Len(t, probes, 1)
	assert.Equal(t, capture.ProbeID, probes[0].ProbeID)
	assert.Equal(t, "royal", probes[0].PieceKind)
	assert.Equal(t, "w", probes[0].TargetColor)
	assert.True(t, probes[0].Legal)

	probes, err = svc.Probes(storage.ProbeMove, "w", 0)
	require.NoError(t, err)
	require.Len(t, probes, 1)
	assert.Equal(t, move.ProbeID, probes[0].ProbeID)
}
