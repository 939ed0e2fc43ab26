package replay

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine/executions"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/terrain"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/tuning"
)

// DivergenceError reports the first tick where a re-run disagreed with the
// recording.
type DivergenceError struct {
	Tick     uint64
	Recorded string
	Computed string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("replay: digest divergence at tick %d: recorded %s, computed %s",
		e.Tick, e.Recorded, e.Computed)
}

// Verify re-runs a recording against a fresh engine and checks every tick
// digest. tun must match the tuning the session ran with; recordings do not
// embed it.
func Verify(hdr Header, entries []Entry, tun tuning.Tuning, log zerolog.Logger) error {
	m, err := terrain.Decode(hdr.Width, hdr.Height, hdr.Terrain)
	if err != nil {
		return err
	}
	g := engine.NewGame(engine.Config{SessionID: hdr.SessionID, Tuning: tun}, m, log)
	x := executions.NewExecutor(g)

	for _, e := range x.SpawnBots(hdr.Bots) {
		g.AddExecution(e)
	}
	for _, e := range x.SynthesizeNations(hdr.Nations) {
		g.AddExecution(e)
	}

	for _, entry := range entries {
		if entry.Tick != g.Ticks() {
			return fmt.Errorf("replay: entry tick %d does not match engine tick %d", entry.Tick, g.Ticks())
		}
		turn := protocol.Turn{Number: entry.Tick, Intents: entry.Intents}
		for _, ex := range x.CreateExecutions(turn) {
			g.AddExecution(ex)
		}
		g.ExecuteNextTick()
		if got := g.Hash(); got != entry.Digest {
			return &DivergenceError{Tick: entry.Tick, Recorded: entry.Digest, Computed: got}
		}
	}
	return nil
}
