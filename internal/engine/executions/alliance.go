package executions

import "github.com/openfrontio/OpenFrontIO-sub010/internal/engine"

// AllianceRequestExecution files a pending offer; the target answers with an
// AllianceReplyExecution (humans) or through its nation behavior (AI).
type AllianceRequestExecution struct {
	requester *engine.Player
	target    engine.SmallID

	g      *engine.Game
	active bool
}

func (e *AllianceRequestExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *AllianceRequestExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *AllianceRequestExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	target := e.g.Player(e.target)
	if target == nil || !target.Alive() || e.target == e.requester.ID() {
		return
	}
	if e.g.AlliedWith(e.requester.ID(), e.target) {
		return
	}
	e.g.RequestAlliance(e.requester.ID(), e.target)
}

func (e *AllianceRequestExecution) IsActive() bool { return e.active }

// AllianceReplyExecution resolves a pending offer addressed to the
// responder. Replying to an offer that never existed (or expired) is a
// no-op.
type AllianceReplyExecution struct {
	responder *engine.Player
	requester engine.SmallID
	accept    bool

	g      *engine.Game
	active bool
}

func (e *AllianceReplyExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *AllianceReplyExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *AllianceReplyExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	e.g.ResolveAlliance(e.requester, e.responder.ID(), e.accept)
}

func (e *AllianceReplyExecution) IsActive() bool { return e.active }

// BreakAllianceExecution dissolves an existing pact, branding the breaker a
// traitor.
type BreakAllianceExecution struct {
	breaker *engine.Player
	other   engine.SmallID

	g      *engine.Game
	active bool
}

func (e *BreakAllianceExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *BreakAllianceExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
}

func (e *BreakAllianceExecution) Step(tick uint64) {
	defer func() { e.active = false }()
	e.g.BreakAlliance(e.breaker.ID(), e.other)
}

func (e *BreakAllianceExecution) IsActive() bool { return e.active }
