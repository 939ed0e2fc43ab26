// Command server hosts one authoritative game session over websocket.
// Clients connect to /v1/ws, send a HELLO, then stream intents; the server
// broadcasts every executed turn with its state digest and records the
// session to a replay log.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/host"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/replay"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/transport/ws"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		session    = flag.String("session", "game_1", "session id (hashed into the simulation seed)")
		width      = flag.Int("width", 256, "map width in tiles")
		height     = flag.Int("height", 192, "map height in tiles")
		mapSeed    = flag.Int64("map_seed", 1337, "terrain generation seed")
		bots       = flag.Int("bots", 16, "number of scripted bot players")
		nations    = flag.Int("nations", 4, "number of AI nation players")
		tickMs     = flag.Int("tick_ms", 100, "tick interval in milliseconds")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: built-in values)")
		disableRec = flag.Bool("disable_replay", false, "disable replay recording and indexing")
		pprofOn    = flag.Bool("pprof", false, "expose net/http/pprof handlers")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tun := tuning.Default()
	if tp := strings.TrimSpace(*tuningPath); tp != "" {
		var err error
		tun, err = tuning.Load(tp)
		if err != nil {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning loaded from %s", tp)
	}

	m, err := terrain.Generate(*width, *height, *mapSeed)
	if err != nil {
		logger.Fatalf("generate terrain: %v", err)
	}

	cfg := host.Config{
		SessionID:    *session,
		Map:          m,
		Tuning:       tun,
		TickInterval: time.Duration(*tickMs) * time.Millisecond,
		Bots:         *bots,
		Nations:      *nations,
	}
	if !*disableRec {
		cfg.ReplayDir = filepath.Join(*dataDir, "replays")
		idx, err := replay.OpenIndex(filepath.Join(*dataDir, "index", "replays.db"))
		if err != nil {
			logger.Fatalf("open replay index: %v", err)
		}
		defer idx.Close()
		cfg.Index = idx
	}

	engineLog := zerolog.New(os.Stdout).With().Timestamp().Logger()
	h, err := host.New(cfg, engineLog)
	if err != nil {
		logger.Fatalf("create host: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", ws.NewServer(h, logger).Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	if *pprofOn {
		mux.HandleFunc("/debug/pprof/", pprof.Index)
		mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}

	srv := &http.Server{Addr: *addr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("listening on %s (session %s, %dx%d, %d bots, %d nations)",
			*addr, *session, *width, *height, *bots, *nations)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	h.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	logger.Printf("bye")
}
