package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"checkers/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckMove(t *testing.T) {
	var got core.MoveCheckRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/moves/check", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.VerdictResponse{ProbeID: "abc", Type: "move", Legal: true})
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	assert.Equal(t, srv.URL, c.BaseURL())

	resp, err := c.CheckMove(core.MoveCheckRequest{
		Piece: core.PieceSpec{Kind: "regular", Color: "b", Row: core.Ptr(5), Column: core.Ptr(1)},
		Row:   core.Ptr(4), Column: core.Ptr(0),
	})
	require.NoError(t, err)
	assert.True(t, resp.Legal)
	assert.Equal(t, "abc", resp.ProbeID)
	assert.Equal(t, "regular", got.Piece.Kind)
	require.NotNil(t, got.Column)
	assert.Equal(t, 0, *got.Column)
}

func TestErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(core.ErrorResponse{
			Error: "invalid position", Code: core.ErrInvalidPosition, Details: "(5,6)",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Targets(core.TargetsRequest{})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, core.ErrInvalidPosition, apiErr.Response.Code)
	assert.Contains(t, err.Error(), "(5,6)")
}

func TestProbesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "capture", r.URL.Query().Get("type"))
		assert.Equal(t, "w", r.URL.Query().Get("color"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.ProbesResponse{Count: 1, Probes: []core.ProbeResponse{{ProbeID: "p1"}}})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Probes("capture", "w", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "p1", resp.Probes[0].ProbeID)
}

func TestProbesQueryEscapesValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("type"))
		assert.Equal(t, "b&limit=1", q.Get("color"))
		assert.Equal(t, []string{"7"}, q["limit"])
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.ProbesResponse{})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Probes("*", "b&limit=1", 7)
	require.NoError(t, err)
}

func TestProbesQueryOmitsEmptyFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(core.ProbesResponse{})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Probes("", "", 0)
	require.NoError(t, err)
}
