// Package server streams generated maps to browser clients over HTTP and
// websockets.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-logr/logr"

	"github.com/samdwyer/dungeongen/internal/game"
	"github.com/samdwyer/dungeongen/internal/gamedata"
	"github.com/samdwyer/dungeongen/internal/protocol"
	"github.com/samdwyer/dungeongen/internal/world"
)

const writeTimeout = 5 * time.Second

// Server serves level listings and map snapshots.
type Server struct {
	levels   *gamedata.LevelRegistry
	tileSets *gamedata.TileSetRegistry
	builder  *game.Builder
	log      logr.Logger

	mux      *http.ServeMux
	sequence atomic.Uint64

	// seeds picks seeds for requests that do not name one.
	seedMu sync.Mutex
	seeds  *rand.Rand
}

// New creates a server over the given registries.
func New(levels *gamedata.LevelRegistry, tileSets *gamedata.TileSetRegistry, builder *game.Builder, log logr.Logger) *Server {
	s := &Server{
		levels:   levels,
		tileSets: tileSets,
		builder:  builder,
		log:      log,
		mux:      http.NewServeMux(),
		seeds:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.mux.HandleFunc("GET /api/levels", s.handleLevels)
	s.mux.HandleFunc("GET /api/maps", s.handleMap)
	s.mux.HandleFunc("/ws", s.handleStream)
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("map server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleLevels(w http.ResponseWriter, _ *http.Request) {
	all := s.levels.All()
	out := make([]protocol.LevelSummary, 0, len(all))
	for i := range all {
		out = append(out, Summary(&all[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var seed int64
	if v := r.URL.Query().Get("seed"); v != "" {
		var err error
		if seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(http.StatusBadRequest, "seed must be an integer"))
			return
		}
	}

	snap, status, err := s.generate(r.Context(), r.URL.Query().Get("level"), seed)
	if err != nil {
		writeJSON(w, status, errorBody(status, err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleStream answers generate requests on a websocket until the client
// goes away.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.V(1).Info("websocket accept failed", "error", err.Error())
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")
	ctx := r.Context()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if status := websocket.CloseStatus(err); status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				s.log.V(1).Info("websocket read ended", "error", err.Error())
			}
			return
		}

		var req protocol.Request
		if err := json.Unmarshal(data, &req); err != nil {
			msg := protocol.Message{Type: protocol.TypeError, Error: errorBody(http.StatusBadRequest, "malformed request")}
			if s.reply(ctx, conn, msg) != nil {
				return
			}
			continue
		}

		msg := protocol.Message{Type: protocol.TypeError}
		switch req.Type {
		case protocol.TypeGenerate:
			if snap, status, err := s.generate(ctx, req.Level, req.Seed); err != nil {
				msg.Error = errorBody(status, err.Error())
			} else {
				msg.Type, msg.Map = protocol.TypeMap, &snap
			}
		default:
			msg.Error = errorBody(http.StatusBadRequest, "unknown request type "+strconv.Quote(req.Type))
		}
		if err := s.reply(ctx, conn, msg); err != nil {
			return
		}
	}
}

func (s *Server) reply(ctx context.Context, conn *websocket.Conn, msg protocol.Message) error {
	msg.Sequence = s.sequence.Add(1)
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, msg)
}

// generate builds a snapshot and reports the HTTP status for failures. An
// empty level ID picks the first level.
func (s *Server) generate(ctx context.Context, levelID string, seed int64) (protocol.MapSnapshot, int, error) {
	if levelID == "" {
		levelID = s.levels.At(0).ID
	}
	spec := s.levels.GetByID(levelID)
	if spec == nil {
		return protocol.MapSnapshot{}, http.StatusNotFound, errors.New("unknown level " + strconv.Quote(levelID))
	}
	if seed == 0 {
		s.seedMu.Lock()
		seed = s.seeds.Int63()
		s.seedMu.Unlock()
	}

	level, err := s.builder.Build(ctx, spec, seed)
	if err != nil {
		s.log.Error(err, "map generation failed", "level", levelID, "seed", seed)
		status := http.StatusUnprocessableEntity
		if errors.Is(err, world.ErrConfiguration) {
			status = http.StatusInternalServerError
		}
		return protocol.MapSnapshot{}, status, err
	}
	return Snapshot(level, s.tileSets.Resolve(spec.TileSet)), http.StatusOK, nil
}

func errorBody(status int, message string) *protocol.ErrorBody {
	return &protocol.ErrorBody{Status: status, Message: message}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
