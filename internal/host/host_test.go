package host

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/replay"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

func fixtureMap(t *testing.T, width, height int) *terrain.Map {
	t.Helper()
	water := strings.Repeat(".", width)
	land := strings.Repeat("#", width)
	rows := make([]string, 0, height)
	rows = append(rows, water)
	for i := 0; i < height-2; i++ {
		rows = append(rows, land)
	}
	rows = append(rows, water)
	m, err := terrain.ParseASCII(rows)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return m
}

func newHost(t *testing.T, cfg Config) *Host {
	t.Helper()
	if cfg.Map == nil {
		cfg.Map = fixtureMap(t, 32, 24)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = "host_test"
	}
	if cfg.Tuning.SpawnPhaseTicks == 0 {
		cfg.Tuning = tuning.Default()
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = time.Millisecond
	}
	h, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return h
}

func TestTicksAdvanceAndBroadcast(t *testing.T) {
	h := newHost(t, Config{})
	feed := h.Subscribe()
	defer h.Unsubscribe(feed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Run(ctx)
	}()

	var last uint64
	for i := 0; i < 20; i++ {
		select {
		case ev := <-feed:
			if i > 0 {
				require.Equal(t, last+1, ev.Turn.Number, "turns must be consecutive")
			}
			last = ev.Turn.Number
			require.NotEmpty(t, ev.Digest)
		case <-time.After(5 * time.Second):
			t.Fatal("no turn event")
		}
	}
	cancel()
	<-done
}

func TestSubmittedIntentReachesATurn(t *testing.T) {
	m := fixtureMap(t, 32, 24)
	h := newHost(t, Config{Map: m})
	feed := h.Subscribe()
	defer h.Unsubscribe(feed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Run(ctx)
	}()

	ok := h.Submit(protocol.Intent{
		Type:     protocol.IntentSpawn,
		ClientID: "h1",
		Name:     "Alice",
		Tile:     int(m.Ref(10, 10)),
	})
	require.True(t, ok)

	deadline := time.After(5 * time.Second)
	found := false
	for !found {
		select {
		case ev := <-feed:
			for _, in := range ev.Turn.Intents {
				if in.Type == protocol.IntentSpawn && in.ClientID == "h1" {
					found = true
				}
			}
		case <-deadline:
			t.Fatal("spawn intent never appeared in a turn")
		}
	}
	cancel()
	<-done
}

func TestSubmitRejectsWhenInboxFull(t *testing.T) {
	h := newHost(t, Config{})
	// Never run, so nothing drains the inbox.
	for i := 0; i < cap(h.inbox); i++ {
		require.True(t, h.Submit(protocol.Intent{Type: protocol.IntentAttack}))
	}
	require.False(t, h.Submit(protocol.Intent{Type: protocol.IntentAttack}))
}

func TestUnsubscribeClosesFeedOnce(t *testing.T) {
	h := newHost(t, Config{})
	feed := h.Subscribe()
	h.Unsubscribe(feed)
	h.Unsubscribe(feed) // second call is a no-op

	_, open := <-feed
	require.False(t, open)
}

func TestRunWritesVerifiableRecording(t *testing.T) {
	dir := t.TempDir()
	m := fixtureMap(t, 32, 24)
	tun := tuning.Default()
	tun.SpawnPhaseTicks = 5
	h := newHost(t, Config{
		SessionID: "rec_test",
		Map:       m,
		Tuning:    tun,
		Bots:      2,
		ReplayDir: dir,
	})
	feed := h.Subscribe()
	defer h.Unsubscribe(feed)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		h.Run(ctx)
	}()

	for i := 0; i < 30; i++ {
		select {
		case <-feed:
		case <-time.After(5 * time.Second):
			t.Fatal("no turn event")
		}
	}
	cancel()
	<-done // recorder is closed when Run returns

	hdr, entries, err := replay.Read(filepath.Join(dir, "rec_test.jsonl.zst"))
	require.NoError(t, err)
	require.Equal(t, "rec_test", hdr.SessionID)
	require.Equal(t, 2, hdr.Bots)
	require.GreaterOrEqual(t, len(entries), 30)

	require.NoError(t, replay.Verify(hdr, entries, tun, zerolog.Nop()))
}
