// Package replay records finished-to-the-byte game sessions and plays them
// back. A recording is a zstd-compressed JSONL file: one header line with
// the session id and the full terrain, then one line per tick carrying that
// tick's intents and the resulting state digest. Because the engine is
// deterministic, the log is both an audit trail and a divergence detector:
// re-running the intents must reproduce every digest exactly.
package replay

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/protocol"
)

const FormatVersion = 1

// Header is the first line of every recording.
type Header struct {
	Version   int    `json:"version"`
	SessionID string `json:"session_id"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Terrain   string `json:"terrain"` // terrain.Map Encode form
	Bots      int    `json:"bots"`
	Nations   int    `json:"nations"`
}

// Entry is one recorded tick.
type Entry struct {
	Tick    uint64            `json:"tick"`
	Intents []protocol.Intent `json:"intents,omitempty"`
	Digest  string            `json:"digest"`
}
