package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"checkers/internal/core"
	"checkers/internal/rules"
	"checkers/internal/service"
	"checkers/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, store *storage.Store) *fiber.App {
	t.Helper()
	svc := service.New(store)
	t.Cleanup(func() { svc.Close() })
	return NewFiberApp(svc, true)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func piece(kind, color string, row, column int) core.PieceSpec {
	return core.PieceSpec{Kind: kind, Color: color, Row: core.Ptr(row), Column: core.Ptr(column)}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.HealthResponse
	status := doJSON(t, app, nethttp.MethodGet, "/health", nil, &resp)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "disabled", resp.Storage)
}

func TestCheckMove(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name        string
		piece       core.PieceSpec
		row, column int
		want        bool
	}{
		{name: "black forward", piece: piece("regular", "b", 5, 1), row: 4, column: 0, want: true},
		{name: "black backward", piece: piece("regular", "b", 5, 1), row: 6, column: 0},
		{name: "black light square", piece: piece("regular", "b", 5, 1), row: 4, column: 1},
		{name: "royal backward", piece: piece("royal", "w", 2, 4), row: 1, column: 3, want: true},
		{name: "royal two steps", piece: piece("royal", "w", 2, 4), row: 4, column: 4},
		{name: "off board target", piece: piece("royal", "w", 7, 7), row: 8, column: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp core.VerdictResponse
			status := doJSON(t, app, nethttp.MethodPost, "/api/v1/moves/check", core.MoveCheckRequest{
				Piece:  tt.piece,
				Row:    core.Ptr(tt.row),
				Column: core.Ptr(tt.column),
			}, &resp)
			require.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tt.want, resp.Legal)
			assert.Equal(t, "move", resp.Type)
			assert.NotEmpty(t, resp.ProbeID)
		})
	}
}

func TestCheckMoveInvalidPiece(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.ErrorResponse
	status := doJSON(t, app, nethttp.MethodPost, "/api/v1/moves/check", core.MoveCheckRequest{
		Piece:  piece("regular", "b", 5, 6),
		Row:    core.Ptr(4),
		Column: core.Ptr(5),
	}, &resp)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, core.ErrInvalidPosition, resp.Code)
}

func TestCheckMoveValidation(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.ErrorResponse
	status := doJSON(t, app, nethttp.MethodPost, "/api/v1/moves/check", map[string]any{
		"piece": map[string]any{"kind": "queen", "color": "b", "row": 5},
		"row":   4,
	}, &resp)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidRequest, resp.Code)
	assert.Contains(t, resp.Details, "piece.kind must be one of [regular royal]")
	assert.Contains(t, resp.Details, "piece.column is required")
	assert.Contains(t, resp.Details, "; column is required")
}

func TestCheckCapture(t *testing.T) {
	app := newTestApp(t, nil)

	tests := []struct {
		name          string
		piece, target core.PieceSpec
		want          bool
	}{
		{name: "white jumps black", piece: piece("regular", "w", 2, 2), target: piece("regular", "b", 3, 1), want: true},
		{name: "same color", piece: piece("regular", "w", 2, 2), target: piece("regular", "w", 3, 1)},
		{name: "out of range", piece: piece("regular", "w", 2, 2), target: piece("regular", "b", 4, 4)},
		{name: "landing off board", piece: piece("royal", "w", 2, 6), target: piece("royal", "b", 3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp core.VerdictResponse
			status := doJSON(t, app, nethttp.MethodPost, "/api/v1/captures/check", core.CaptureCheckRequest{
				Piece:  tt.piece,
				Target: tt.target,
			}, &resp)
			require.Equal(t, fiber.StatusOK, status)
			assert.Equal(t, tt.want, resp.Legal)
			assert.Equal(t, "capture", resp.Type)
		})
	}
}

func TestTargets(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.TargetsResponse
	status := doJSON(t, app, nethttp.MethodPost, "/api/v1/targets", core.TargetsRequest{
		Piece: piece("royal", "w", 2, 4),
	}, &resp)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "royal", resp.Kind)
	assert.Equal(t, core.Square{Row: 2, Column: 4}, resp.From)
	assert.Equal(t, []core.Square{{Row: 3, Column: 3}, {Row: 3, Column: 5}, {Row: 1, Column: 3}, {Row: 1, Column: 5}}, resp.Targets)
}

func TestUnsupportedContentType(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/targets", bytes.NewReader([]byte("kind=royal")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestProbesStorageDisabled(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.ErrorResponse
	status := doJSON(t, app, nethttp.MethodGet, "/api/v1/probes", nil, &resp)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, core.ErrStorageDisabled, resp.Code)
}

func TestProbesRecorded(t *testing.T) {
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "probes.db"), false)
	require.NoError(t, err)
	require.NoError(t, store.InitDB())
	app := newTestApp(t, store)

	status := doJSON(t, app, nethttp.MethodPost, "/api/v1/moves/check", core.MoveCheckRequest{
		Piece: piece("regular", "w", 2, 2), Row: core.Ptr(3), Column: core.Ptr(3),
	}, nil)
	require.Equal(t, fiber.StatusOK, status)
	status = doJSON(t, app, nethttp.MethodPost, "/api/v1/captures/check", core.CaptureCheckRequest{
		Piece: piece("royal", "b", 0, 0), Target: piece("regular", "w", 1, 1),
	}, nil)
	require.Equal(t, fiber.StatusOK, status)

	// writes are asynchronous
	require.Eventually(t, func() bool {
		var resp core.ProbesResponse
		doJSON(t, app, nethttp.MethodGet, "/api/v1/probes", nil, &resp)
		return resp.Count == 2
	}, 2*time.Second, 20*time.Millisecond)

	var resp core.ProbesResponse
	status = doJSON(t, app, nethttp.MethodGet, "/api/v1/probes?type=capture&color=b", nil, &resp)
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, resp.Probes, 1)
	assert.Equal(t, "royal", resp.Probes[0].PieceKind)
	assert.True(t, resp.Probes[0].Legal)

	var errResp core.ErrorResponse
	status = doJSON(t, app, nethttp.MethodGet, "/api/v1/probes?type=jump", nil, &errResp)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, core.ErrInvalidRequest, errResp.Code)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, nil)

	var resp core.ErrorResponse
	status := doJSON(t, app, nethttp.MethodGet, "/api/v1/boards", nil, &resp)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, core.ErrNotFound, resp.Code)
}

type failingProber struct{}

func (failingProber) CheckMove(service.PieceSpec, int, int) (service.Verdict, error) {
	return service.Verdict{}, errors.New("disk on fire")
}

func (failingProber) CheckCapture(service.PieceSpec, service.PieceSpec) (service.Verdict, error) {
	return service.Verdict{}, errors.New("disk on fire")
}

func (failingProber) Targets(service.PieceSpec) ([]rules.Position, error) {
	return nil, errors.New("disk on fire")
}

func (failingProber) Probes(string, string, int) ([]storage.ProbeRecord, error) {
	return nil, errors.New("disk on fire")
}

func (failingProber) StorageHealth() string { return "degraded" }

func TestInternalErrorHidesDetails(t *testing.T) {
	app := NewFiberApp(failingProber{}, true)

	var resp core.ErrorResponse
	status := doJSON(t, app, nethttp.MethodPost, "/api/v1/moves/check", core.MoveCheckRequest{
		Piece:  piece("regular", "b", 5, 1),
		Row:    core.Ptr(4),
		Column: core.Ptr(0),
	}, &resp)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, core.ErrInternalError, resp.Code)
	assert.Empty(t, resp.Details)

	var health core.HealthResponse
	status = doJSON(t, app, nethttp.MethodGet, "/health", nil, &health)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "degraded", health.Storage)
}
