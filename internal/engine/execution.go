package engine

// Execution is a stateful, possibly multi-tick unit of simulation work,
// derived from a validated player intent or synthesized by AI behavior.
//
// Lifecycle: Created -> Init (exactly once, on the tick the execution is
// admitted) -> Step every tick while IsActive -> swept permanently once
// IsActive reports false. The engine never calls Step before Init and never
// revisits a swept execution.
//
// Executions run in creation order: turn-intent order first, then any
// synthesized AI work. That ordering is observable: it decides the outcome
// of two conflicting intents landing on the same tick.
type Execution interface {
	Init(g *Game, tick uint64)
	Step(tick uint64)
	IsActive() bool

	// ActiveDuringSpawnPhase gates whether this kind may run before the
	// initial spawn phase ends.
	ActiveDuringSpawnPhase() bool
}
