package executions

import "github.com/openfrontio/OpenFrontIO-sub010/internal/engine"

// NoOpExecution is what invalid or unauthorized intents degrade to. It is
// never active, so the engine sweeps it without ever stepping it.
type NoOpExecution struct{}

func (*NoOpExecution) Init(*engine.Game, uint64)    {}
func (*NoOpExecution) Step(uint64)                  {}
func (*NoOpExecution) IsActive() bool               { return false }
func (*NoOpExecution) ActiveDuringSpawnPhase() bool { return true }

// EmbargoExecution toggles a trade embargo against another player.
type EmbargoExecution struct {
	player *engine.Player
	target engine.SmallID
	on     bool

	active bool
}

func (e *EmbargoExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *EmbargoExecution) Init(g *engine.Game, tick uint64) { e.active = true }

func (e *EmbargoExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	if e.target == engine.TerraNullius || e.target == e.player.ID() {
		return
	}
	e.player.SetEmbargo(e.target, e.on)
}

func (e *EmbargoExecution) IsActive() bool { return e.active }

// SetTargetExecution marks another player as this player's declared target,
// which feeds AI retaliation and ally-assist decisions.
type SetTargetExecution struct {
	player *engine.Player
	target engine.SmallID

	g      *engine.Game
	active bool
}

func (e *SetTargetExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *SetTargetExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *SetTargetExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	if e.target == e.player.ID() {
		return
	}
	e.player.SetTarget(e.target)
	if t := e.g.Player(e.target); t != nil {
		t.AdjustRelation(e.player.ID(), -10)
	}
}

func (e *SetTargetExecution) IsActive() bool { return e.active }

// TroopRatioExecution adjusts how the player's population splits between
// troops and workers.
type TroopRatioExecution struct {
	player        *engine.Player
	ratioPermille int

	active bool
}

func (e *TroopRatioExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *TroopRatioExecution) Init(g *engine.Game, tick uint64) { e.active = true }

func (e *TroopRatioExecution) Step(tick uint64) {
	e.player.SetTroopRatioPermille(e.ratioPermille)
	e.active = false
}

func (e *TroopRatioExecution) IsActive() bool { return e.active }

// CancelAttackExecution cooperatively cancels the player's oldest live
// attack: it sets the flag and the attack notices on its own next step.
// There is no forced mid-step interruption.
type CancelAttackExecution struct {
	player *engine.Player

	g      *engine.Game
	active bool
}

func (e *CancelAttackExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *CancelAttackExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *CancelAttackExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	for _, ex := range e.g.ActiveExecutions() {
		if atk, ok := ex.(*AttackExecution); ok && atk.IsActive() && atk.Attacker() == e.player {
			atk.Cancel()
			return
		}
	}
}

func (e *CancelAttackExecution) IsActive() bool { return e.active }

// CancelBoatExecution recalls the player's oldest live transport.
type CancelBoatExecution struct {
	player *engine.Player

	g      *engine.Game
	active bool
}

func (e *CancelBoatExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *CancelBoatExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *CancelBoatExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	for _, ex := range e.g.ActiveExecutions() {
		if tr, ok := ex.(*TransportExecution); ok && tr.IsActive() && tr.Attacker() == e.player {
			tr.Cancel()
			return
		}
	}
}

func (e *CancelBoatExecution) IsActive() bool { return e.active }
