// Package host runs one authoritative game session: a single goroutine owns
// the engine, drains the intent inbox once per tick into an ordered Turn,
// executes it, records the replay entry, and broadcasts the turn to every
// subscriber. No other goroutine ever touches canonical state.
package host

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine/executions"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/replay"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

// TurnEvent is what subscribers receive after each executed tick.
type TurnEvent struct {
	Turn   protocol.Turn
	Digest string
}

type Config struct {
	SessionID    string
	Map          *terrain.Map
	Tuning       tuning.Tuning
	TickInterval time.Duration
	Bots         int
	Nations      int

	// Optional persistence. Nil disables recording.
	ReplayDir string
	Index     *replay.Index
}

type Host struct {
	cfg Config
	log zerolog.Logger

	g *engine.Game
	x *executions.Executor

	inbox chan protocol.Intent

	mu   sync.Mutex
	subs map[chan TurnEvent]struct{}

	rec *replay.Writer
}

func New(cfg Config, log zerolog.Logger) (*Host, error) {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	g := engine.NewGame(engine.Config{SessionID: cfg.SessionID, Tuning: cfg.Tuning}, cfg.Map, log)
	h := &Host{
		cfg:   cfg,
		log:   log.With().Str("component", "host").Logger(),
		g:     g,
		x:     executions.NewExecutor(g),
		inbox: make(chan protocol.Intent, 4096),
		subs:  map[chan TurnEvent]struct{}{},
	}

	if cfg.ReplayDir != "" {
		rec, err := replay.NewWriter(cfg.ReplayDir, replay.Header{
			Version:   replay.FormatVersion,
			SessionID: cfg.SessionID,
			Width:     cfg.Map.Width,
			Height:    cfg.Map.Height,
			Terrain:   cfg.Map.Encode(),
			Bots:      cfg.Bots,
			Nations:   cfg.Nations,
		})
		if err != nil {
			return nil, err
		}
		h.rec = rec
		if cfg.Index != nil {
			if err := cfg.Index.RecordGame(replay.GameRow{
				SessionID: cfg.SessionID,
				Path:      rec.Path(),
				Width:     cfg.Map.Width,
				Height:    cfg.Map.Height,
			}); err != nil {
				h.log.Warn().Err(err).Msg("index: record game failed")
			}
		}
	}
	return h, nil
}

// Submit queues an intent for the next tick. Returns false when the inbox
// is full; the client should retry rather than the host block.
func (h *Host) Submit(in protocol.Intent) bool {
	select {
	case h.inbox <- in:
		return true
	default:
		return false
	}
}

// Subscribe registers a turn feed. The returned channel is closed by
// Unsubscribe, never by the host; slow subscribers miss events instead of
// stalling the tick loop.
func (h *Host) Subscribe() chan TurnEvent {
	ch := make(chan TurnEvent, 64)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Host) Unsubscribe(ch chan TurnEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Run drives the session until ctx is cancelled. It is the single writer of
// the underlying game.
func (h *Host) Run(ctx context.Context) {
	for _, e := range h.x.SpawnBots(h.cfg.Bots) {
		h.g.AddExecution(e)
	}
	for _, e := range h.x.SynthesizeNations(h.cfg.Nations) {
		h.g.AddExecution(e)
	}

	ticker := time.NewTicker(h.cfg.TickInterval)
	defer ticker.Stop()
	defer h.closeRecorder()

	h.log.Info().
		Str("session", h.cfg.SessionID).
		Int("bots", h.cfg.Bots).
		Int("nations", h.cfg.Nations).
		Dur("tick", h.cfg.TickInterval).
		Msg("session started")

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Uint64("ticks", h.g.Ticks()).Msg("session stopped")
			return
		case <-ticker.C:
			h.step()
		}
	}
}

func (h *Host) step() {
	turn := protocol.Turn{Number: h.g.Ticks(), Intents: h.drain()}
	for _, e := range h.x.CreateExecutions(turn) {
		h.g.AddExecution(e)
	}
	h.g.ExecuteNextTick()
	digest := h.g.Hash()

	if h.rec != nil {
		entry := replay.Entry{Tick: turn.Number, Intents: turn.Intents, Digest: digest}
		if err := h.rec.WriteEntry(entry); err != nil {
			h.log.Error().Err(err).Msg("replay write failed; recording disabled")
			h.closeRecorder()
		} else if h.cfg.Index != nil {
			h.cfg.Index.RecordTick(h.cfg.SessionID, entry)
		}
	}

	ev := TurnEvent{Turn: turn, Digest: digest}
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

// drain empties the inbox into a deterministic arrival-ordered slice.
func (h *Host) drain() []protocol.Intent {
	var out []protocol.Intent
	for {
		select {
		case in := <-h.inbox:
			out = append(out, in)
		default:
			return out
		}
	}
}

func (h *Host) closeRecorder() {
	if h.rec == nil {
		return
	}
	if err := h.rec.Close(); err != nil {
		h.log.Warn().Err(err).Msg("replay close failed")
	}
	h.rec = nil
}
