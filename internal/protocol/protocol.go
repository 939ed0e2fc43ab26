// Package protocol defines the wire model the engine consumes: Intents (one
// requested effect, tagged by type) batched into Turns (the ordered intent
// list for one tick). Intents arrive from untrusted clients; the executor
// validates them before any state is touched. Order within a Turn is
// semantically significant and must survive transport unchanged.
package protocol

import (
	"encoding/json"
	"fmt"
)

const Version = "1.0"

// Intent types.
const (
	IntentSpawn           = "SPAWN"
	IntentAttack          = "ATTACK"
	IntentBoatAttack      = "BOAT_ATTACK"
	IntentAllianceRequest = "ALLIANCE_REQUEST"
	IntentAllianceReply   = "ALLIANCE_REPLY"
	IntentBreakAlliance   = "BREAK_ALLIANCE"
	IntentBuild           = "BUILD"
	IntentLaunchNuke      = "LAUNCH_NUKE"
	IntentEmbargo         = "EMBARGO"
	IntentSetTarget       = "SET_TARGET"
	IntentTroopRatio      = "TROOP_RATIO"
	IntentCancelAttack    = "CANCEL_ATTACK"
	IntentCancelBoat      = "CANCEL_BOAT"
)

// SupportedIntents lists every type the current protocol version carries.
var SupportedIntents = []string{
	IntentSpawn,
	IntentAttack,
	IntentBoatAttack,
	IntentAllianceRequest,
	IntentAllianceReply,
	IntentBreakAlliance,
	IntentBuild,
	IntentLaunchNuke,
	IntentEmbargo,
	IntentSetTarget,
	IntentTroopRatio,
	IntentCancelAttack,
	IntentCancelBoat,
}

// Intent is the tagged union of every requested effect. Unused fields stay
// at their zero value; which fields are meaningful depends on Type.
type Intent struct {
	Type     string `json:"type"`
	ClientID string `json:"client_id"`

	Name          string `json:"name,omitempty"`           // SPAWN
	Flag          string `json:"flag,omitempty"`           // SPAWN (cosmetic)
	Tile          int    `json:"tile,omitempty"`           // SPAWN, BOAT_ATTACK, BUILD, LAUNCH_NUKE
	TargetID      string `json:"target_id,omitempty"`      // other player's client id
	Troops        int64  `json:"troops,omitempty"`         // ATTACK, BOAT_ATTACK
	Unit          string `json:"unit,omitempty"`           // BUILD, LAUNCH_NUKE
	Accept        bool   `json:"accept,omitempty"`         // ALLIANCE_REPLY
	Embargo       bool   `json:"embargo,omitempty"`        // EMBARGO on/off
	RatioPermille int    `json:"ratio_permille,omitempty"` // TROOP_RATIO
}

// Turn is the ordered batch of intents for exactly one simulation tick,
// the unit of network synchronization.
type Turn struct {
	Number  uint64   `json:"number"`
	Intents []Intent `json:"intents"`
}

// Session envelope types, exchanged outside the intent stream.
const (
	MsgHello = "HELLO"
	MsgTurn  = "TURN"
)

// Hello opens a connection: the client declares its protocol version and
// stable client id before any intent is accepted.
type Hello struct {
	Type     string `json:"type"`
	Version  string `json:"version"`
	ClientID string `json:"client_id"`
}

// TurnEnvelope is the host's per-tick broadcast: the executed turn plus the
// resulting state digest, so clients can detect desync immediately.
type TurnEnvelope struct {
	Type   string `json:"type"`
	Turn   Turn   `json:"turn"`
	Digest string `json:"digest"`
}

// base routes unknown JSON by its type tag, mirroring how replicas sniff
// messages before full decode.
type base struct {
	Type string `json:"type"`
}

// DecodeIntent parses one intent and rejects syntactically unusable input.
// Semantic validation (does the player exist, does the client id match) is
// the executor's job.
func DecodeIntent(b []byte) (Intent, error) {
	var probe base
	if err := json.Unmarshal(b, &probe); err != nil {
		return Intent{}, fmt.Errorf("intent: %w", err)
	}
	if probe.Type == "" {
		return Intent{}, fmt.Errorf("intent: missing type")
	}
	var in Intent
	if err := json.Unmarshal(b, &in); err != nil {
		return Intent{}, fmt.Errorf("intent %s: %w", probe.Type, err)
	}
	return in, nil
}

func DecodeTurn(b []byte) (Turn, error) {
	var t Turn
	if err := json.Unmarshal(b, &t); err != nil {
		return Turn{}, fmt.Errorf("turn: %w", err)
	}
	return t, nil
}

func EncodeTurn(t Turn) ([]byte, error) { return json.Marshal(t) }
