package main

import (
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ndsquared/snakecore/internal/applog"
	"github.com/ndsquared/snakecore/internal/config"
	"github.com/ndsquared/snakecore/internal/mcts"
	"github.com/ndsquared/snakecore/internal/outcome"
	"github.com/ndsquared/snakecore/internal/render"
	"github.com/ndsquared/snakecore/internal/search"
	"github.com/ndsquared/snakecore/internal/snake"
)

// maxDiagnosticFrames bounds how many per-turn board snapshots a game
// keeps around for its end-of-game GIF, so a very long game can't grow
// the in-memory frame list without bound.
const maxDiagnosticFrames = 40

// diagnosticsDir is where /end writes the rendered end-of-game GIF. A
// var, not a const, so tests can redirect it to a scratch directory.
var diagnosticsDir = "diagnostics"

// gameRecord is what the driver remembers about one in-progress game:
// which search engine is driving its moves (the alpha-beta search by
// default, MCTS when requested via the ruleset name — spec.md §4.7
// calls MCTS an optional variant the driver selects) and a diagnostic
// id used to correlate log lines across /start, /move and /end.
type gameRecord struct {
	engine       string
	diagnosticID string
	// frames is the board snapshot fed to the search on every /move call
	// this game has seen so far, capped at maxDiagnosticFrames, used to
	// render the end-of-game diagnostic GIF.
	frames []*snake.Board
}

type engineStore struct {
	mu      sync.Mutex
	engines map[string]gameRecord
}

func newEngineStore() *engineStore {
	return &engineStore{engines: make(map[string]gameRecord)}
}

func (e *engineStore) set(gameID string, rec gameRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engines[gameID] = rec
}

func (e *engineStore) get(gameID string) gameRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engines[gameID]
}

func (e *engineStore) delete(gameID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.engines, gameID)
}

// appendFrame records one more board snapshot for gameID's end-of-game
// GIF, dropping the oldest frame once maxDiagnosticFrames is reached.
func (e *engineStore) appendFrame(gameID string, b *snake.Board) {
	e.mu.Lock()
	defer e.mu.Unlock()
	rec := e.engines[gameID]
	rec.frames = append(rec.frames, b)
	if len(rec.frames) > maxDiagnosticFrames {
		rec.frames = rec.frames[len(rec.frames)-maxDiagnosticFrames:]
	}
	e.engines[gameID] = rec
}

var (
	engines = newEngineStore()
	stream  = render.NewStreamServer()
	cfg     config.Config
)

func main() {
	handler := applog.New(os.Stdout, slog.LevelInfo)
	slog.SetDefault(slog.New(handler))

	cfg = config.Load()
	slog.Info("starting snake engine", "port", cfg.Port)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex)
	mux.HandleFunc("/start", handleStart)
	mux.HandleFunc("/move", handleMove)
	mux.HandleFunc("/end", handleEnd)
	mux.HandleFunc("/healthz", handleHealthz)
	mux.HandleFunc("/debug/stream/{gameID}", stream.ServeHTTP)

	log.Fatal(http.ListenAndServe(":"+cfg.Port, mux))
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "snakecore",
		"color":      "#0a84ff",
		"head":       "default",
		"tail":       "default",
		"version":    "1.0.0",
	})
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

func handleStart(w http.ResponseWriter, r *http.Request) {
	var req WireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	engine := "alphabeta"
	if req.Game.Ruleset.Name == "mcts-experimental" {
		engine = "mcts"
	}
	rec := gameRecord{engine: engine, diagnosticID: newDiagnosticID()}
	engines.set(req.Game.ID, rec)

	slog.Info("game started", "game_id", req.Game.ID, "you", req.You.ID, "engine", engine, "diagnostic_id", rec.diagnosticID)
	writeJSON(w, map[string]string{})
}

func handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer recoverMove(w)

	var req WireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := toGameState(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	timeout := time.Duration(req.Game.Timeout) * time.Millisecond
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}

	var (
		direction string
		diag      string
		depth     int
		scoreRank int64
	)
	rec := engines.get(req.Game.ID)
	switch rec.engine {
	case "mcts":
		mctsOpts := mcts.DefaultOptions()
		mctsOpts.Exploration = cfg.MCTSExploration
		mctsOpts.MaxPlayoutTurns = cfg.MCTSMaxPlayoutTurns
		result := mcts.Search(state, timeout, mctsOpts)
		direction = result.Direction.String()
		diag = result.Diagnostic
		depth = result.Iterations
	default:
		opts := search.Options{SafetyMargin: cfg.SafetyMargin, MaxDepth: cfg.MaxDepth}
		result := search.Search(state, timeout, opts)
		direction = result.Direction.String()
		diag = result.Diagnostic
		depth = result.DeepestDepth
		scoreRank = result.Score
	}

	stream.Publish(render.Progress{
		GameID:    req.Game.ID,
		Turn:      req.Turn,
		Depth:     depth,
		Direction: direction,
		Score:     scoreRank,
		Board:     render.RenderASCII(&state.Board),
	})
	engines.appendFrame(req.Game.ID, &state.Board)

	writeJSON(w, map[string]string{"move": direction, "shout": diag})

	slog.Info("move processed",
		"game_id", req.Game.ID,
		"diagnostic_id", rec.diagnosticID,
		"turn", req.Turn,
		"move", direction,
		"duration_ms", time.Since(start).Milliseconds(),
		"depth", depth,
	)
}

func handleEnd(w http.ResponseWriter, r *http.Request) {
	var req WireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec := engines.get(req.Game.ID)
	engines.delete(req.Game.ID)

	bounds := toBounds(req.Board)
	you := toSnapshot(req.You, req.Board.Hazards)
	var others []outcome.AgentSnapshot
	for _, s := range req.Board.Snakes {
		if s.ID == req.You.ID {
			continue
		}
		others = append(others, toSnapshot(s, req.Board.Hazards))
	}
	result, reason := outcome.Describe(bounds, you, others)

	slog.Info("game ended",
		"game_id", req.Game.ID,
		"diagnostic_id", rec.diagnosticID,
		"turn", req.Turn,
		"outcome", result.String(),
		"reason", reason,
	)

	frames := rec.frames
	if len(frames) == 0 {
		frames = []*snake.Board{toBoard(req.Board)}
	}
	if data, err := render.RenderGIF(frames, 0); err != nil {
		slog.Error("failed to render end-of-game gif", "game_id", req.Game.ID, "error", err)
	} else if err := persistGIF(req.Game.ID, data); err != nil {
		slog.Error("failed to persist end-of-game gif", "game_id", req.Game.ID, "error", err)
	} else {
		slog.Info("persisted end-of-game gif", "game_id", req.Game.ID, "frames", len(frames))
	}

	writeJSON(w, map[string]string{})
}

// persistGIF writes a rendered end-of-game GIF to diagnosticsDir, named
// after the game id, for offline review (spec.md §4.12).
func persistGIF(gameID string, data []byte) error {
	if err := os.MkdirAll(diagnosticsDir, 0o755); err != nil {
		return fmt.Errorf("persistGIF: mkdir: %w", err)
	}
	path := filepath.Join(diagnosticsDir, gameID+".gif")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("persistGIF: write %s: %w", path, err)
	}
	return nil
}

// recoverMove is handleMove's single recover() point (spec.md §7): a
// panic on a malformed snapshot that slipped past decode is logged and
// answered with a 500, never a 200 with a guessed move.
func recoverMove(w http.ResponseWriter) {
	if rec := recover(); rec != nil {
		slog.Error("panic while computing move", "recover", fmt.Sprint(rec))
		http.Error(w, "internal error computing move", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func newDiagnosticID() string {
	return uuid.NewString()
}
