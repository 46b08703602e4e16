package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openwager/betchain/internal/betting"
	"github.com/openwager/betchain/pkg/cache"
	"github.com/openwager/betchain/pkg/types"
)

const winnersCacheTTL = 30 * time.Second

// StateReader provides consistent read-only snapshots of engine state.
// Implementations must copy; handlers run concurrently with the block
// pipeline.
type StateReader interface {
	Games() []types.Game
	Game(id uuid.UUID) (types.Game, bool)
	PendingBets(game uuid.UUID) []types.PendingBet
	MatchedBets(game uuid.UUID) []types.MatchedBet
	Winners(game uuid.UUID) ([]betting.Winner, error)
	Balance(account string) types.Asset
}

// OpSubmitter queues an operation for the next block.
type OpSubmitter interface {
	Submit(op any) error
}

// EngineHandler serves engine state queries and operation submission.
type EngineHandler struct {
	state  StateReader
	ops    OpSubmitter
	cache  cache.Cache
	logger *zap.Logger
}

// NewEngineHandler creates an engine handler. The cache may be nil, in
// which case winners responses are rebuilt on every request.
func NewEngineHandler(state StateReader, ops OpSubmitter, c cache.Cache, logger *zap.Logger) *EngineHandler {
	return &EngineHandler{
		state:  state,
		ops:    ops,
		cache:  c,
		logger: logger,
	}
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleListGames handles GET /api/games. An optional ?status= query
// parameter narrows the listing to created, started or finished games.
func (h *EngineHandler) HandleListGames(w http.ResponseWriter, r *http.Request) {
	games := h.state.Games()

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := parseGameStatus(raw)
		if !ok {
			h.writeError(w, "unknown game status", http.StatusBadRequest)
			return
		}

		filtered := make([]types.Game, 0, len(games))
		for _, g := range games {
			if g.Status == status {
				filtered = append(filtered, g)
			}
		}
		games = filtered
	}

	h.writeJSON(w, http.StatusOK, games)
}

func parseGameStatus(s string) (types.GameStatus, bool) {
	switch s {
	case "created":
		return types.GameCreated, true
	case "started":
		return types.GameStarted, true
	case "finished":
		return types.GameFinished, true
	default:
		return 0, false
	}
}

// HandleGame handles GET /api/games/{uuid}.
func (h *EngineHandler) HandleGame(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameUUID(w, r)
	if !ok {
		return
	}

	g, found := h.state.Game(id)
	if !found {
		h.writeError(w, "game not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, g)
}

// HandlePendingBets handles GET /api/games/{uuid}/pending.
func (h *EngineHandler) HandlePendingBets(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameUUID(w, r)
	if !ok {
		return
	}
	if _, found := h.state.Game(id); !found {
		h.writeError(w, "game not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, h.state.PendingBets(id))
}

// HandleMatchedBets handles GET /api/games/{uuid}/matched.
func (h *EngineHandler) HandleMatchedBets(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameUUID(w, r)
	if !ok {
		return
	}
	if _, found := h.state.Game(id); !found {
		h.writeError(w, "game not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, h.state.MatchedBets(id))
}

// HandleWinners handles GET /api/games/{uuid}/winners. Responses for
// finished games are cached; the winning set can still change while
// the resolve window is open, hence the short TTL.
func (h *EngineHandler) HandleWinners(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameUUID(w, r)
	if !ok {
		return
	}

	cacheKey := "winners:" + id.String()
	if h.cache != nil {
		if cached, found := h.cache.Get(cacheKey); found {
			h.writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	winners, err := h.state.Winners(id)
	if err != nil {
		if types.IsCode(err, types.CodeNotFound) {
			h.writeError(w, "game not found", http.StatusNotFound)
			return
		}
		if types.IsCode(err, types.CodeWrongStatus) {
			h.writeError(w, "game is not finished", http.StatusConflict)
			return
		}
		h.logger.Error("winners-query-failed", zap.Error(err))
		h.writeError(w, "internal error", http.StatusInternalServerError)
		return
	}

	if h.cache != nil {
		h.cache.Set(cacheKey, winners, winnersCacheTTL)
	}

	h.writeJSON(w, http.StatusOK, winners)
}

// HandleBalance handles GET /api/accounts/{account}/balance.
func (h *EngineHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		h.writeError(w, "missing account", http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, h.state.Balance(account))
}

// HandleSubmitOp handles POST /api/operations. The body is an
// envelope naming the operation type; the operation itself is queued
// and applied in the next block, so acceptance here only means the
// envelope decoded.
func (h *EngineHandler) HandleSubmitOp(w http.ResponseWriter, r *http.Request) {
	var envelope struct {
		Type string          `json:"type"`
		Op   json.RawMessage `json:"op"`
	}
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	op, err := decodeOp(envelope.Type, envelope.Op)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ops.Submit(op); err != nil {
		h.writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	h.logger.Debug("operation-queued", zap.String("type", envelope.Type))

	h.writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *EngineHandler) gameUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "uuid")

	id, err := uuid.Parse(raw)
	if err != nil {
		h.writeError(w, "invalid game uuid", http.StatusBadRequest)
		return uuid.UUID{}, false
	}

	return id, true
}

func (h *EngineHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func (h *EngineHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
