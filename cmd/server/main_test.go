package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ndsquared/snakecore/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg = config.Load()
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestHandleIndexReportsAPIVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handleIndex(rec, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1", body["apiversion"])
}

func TestHandleStartRegistersDefaultEngine(t *testing.T) {
	req := sampleRequest()
	req.Game.ID = "start-game"
	rec := postJSON(t, handleStart, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "alphabeta", engines.get("start-game").engine)
}

func TestHandleStartSelectsMCTSEngine(t *testing.T) {
	req := sampleRequest()
	req.Game.ID = "mcts-game"
	req.Game.Ruleset.Name = "mcts-experimental"
	postJSON(t, handleStart, req)

	assert.Equal(t, "mcts", engines.get("mcts-game").engine)
}

func TestHandleMoveReturnsAViableDirection(t *testing.T) {
	req := sampleRequest()
	req.Game.ID = "move-game"
	req.Game.Timeout = 200
	postJSON(t, handleStart, req)

	rec := postJSON(t, handleMove, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, []string{"up", "down", "left", "right"}, body["move"])
}

func TestHandleMoveRejectsMalformedBoard(t *testing.T) {
	req := sampleRequest()
	req.Board.Width = 0
	rec := postJSON(t, handleMove, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEndClearsEngineRecord(t *testing.T) {
	oldDir := diagnosticsDir
	diagnosticsDir = t.TempDir()
	defer func() { diagnosticsDir = oldDir }()

	req := sampleRequest()
	req.Game.ID = "end-game"
	postJSON(t, handleStart, req)
	rec := postJSON(t, handleEnd, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "", engines.get("end-game").engine)
}

func TestHandleMoveAccumulatesDiagnosticFrames(t *testing.T) {
	req := sampleRequest()
	req.Game.ID = "frames-game"
	req.Game.Timeout = 200
	postJSON(t, handleStart, req)

	postJSON(t, handleMove, req)
	postJSON(t, handleMove, req)

	assert.Len(t, engines.get("frames-game").frames, 2)
}

func TestHandleMoveCapsDiagnosticFrames(t *testing.T) {
	req := sampleRequest()
	req.Game.ID = "frames-cap-game"
	req.Game.Timeout = 200
	postJSON(t, handleStart, req)

	for i := 0; i < maxDiagnosticFrames+5; i++ {
		postJSON(t, handleMove, req)
	}

	assert.Len(t, engines.get("frames-cap-game").frames, maxDiagnosticFrames)
}

func TestHandleEndPersistsGIF(t *testing.T) {
	oldDir := diagnosticsDir
	diagnosticsDir = t.TempDir()
	defer func() { diagnosticsDir = oldDir }()

	req := sampleRequest()
	req.Game.ID = "gif-game"
	postJSON(t, handleStart, req)
	postJSON(t, handleMove, req)
	rec := postJSON(t, handleEnd, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := os.ReadFile(filepath.Join(diagnosticsDir, "gif-game.gif"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestHandleEndPersistsGIFWithoutPriorMoves(t *testing.T) {
	oldDir := diagnosticsDir
	diagnosticsDir = t.TempDir()
	defer func() { diagnosticsDir = oldDir }()

	req := sampleRequest()
	req.Game.ID = "gif-no-move-game"
	postJSON(t, handleStart, req)
	rec := postJSON(t, handleEnd, req)
	require.Equal(t, http.StatusOK, rec.Code)

	data, err := os.ReadFile(filepath.Join(diagnosticsDir, "gif-no-move-game.gif"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRecoverMoveReturns500OnPanic(t *testing.T) {
	rec := httptest.NewRecorder()
	func() {
		defer recoverMove(rec)
		panic("boom")
	}()
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleHealthzReportsOK(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	handleHealthz(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
