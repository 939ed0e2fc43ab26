package executions

import (
	"github.com/openfrontio/OpenFrontIO-sub010/internal/ai"
	"github.com/openfrontio/OpenFrontIO-sub010/internal/engine"
)

// BotExecution drives one bot player for the whole game. Bots are simple:
// they expand into free land, pick on weak neighbors, and occasionally shift
// their troop ratio. Every decision draws on the bot's own prng stream, so
// behavior is a pure function of world state and stream, never the clock.
type BotExecution struct {
	clientID string

	g      *engine.Game
	player *engine.Player
	active bool
}

func (e *BotExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *BotExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
	p, ok := g.PlayerByClient(e.clientID)
	if !ok {
		g.Log().Warn().Str("client", e.clientID).Msg("bot behavior without player")
		e.active = false
		return
	}
	e.player = p
}

func (e *BotExecution) Step(tick uint64) {
	p := e.player
	if !p.Alive() {
		e.active = false
		return
	}
	tun := e.g.Tuning()

	if p.Rand().Chance(tun.AI.AttackChance) {
		if target, ok := ai.PickAttackTarget(e.g, p); ok {
			troops := p.Troops() * int64(tun.AI.AttackTroopsPermille) / 1000
			if troops >= tun.AttackCostPerTile {
				e.g.AddExecution(NewAttackExecution(p, target, troops))
			}
		}
	}

	if p.Rand().Chance(200) {
		p.SetTroopRatioPermille(p.Rand().NextInt(300, 800))
	}
}

func (e *BotExecution) IsActive() bool { return e.active }

// NationExecution drives an AI nation: bot expansion plus the structure
// economy, alliance diplomacy, and nuke targeting.
type NationExecution struct {
	clientID string

	g      *engine.Game
	player *engine.Player
	active bool
}

func (e *NationExecution) ActiveDuringSpawnPhase() bool { return false }

func (e *NationExecution) Init(g *engine.Game, tick uint64) {
	e.g = g
	e.active = true
	p, ok := g.PlayerByClient(e.clientID)
	if !ok {
		g.Log().Warn().Str("client", e.clientID).Msg("nation behavior without player")
		e.active = false
		return
	}
	e.player = p
}

func (e *NationExecution) Step(tick uint64) {
	p := e.player
	if !p.Alive() {
		e.active = false
		return
	}
	tun := e.g.Tuning()

	// Diplomacy first: answer pending offers from our current relations.
	for _, req := range e.g.RequestsTo(p.ID()) {
		accept := p.Relation(req.From) >= 0
		e.g.AddExecution(&AllianceReplyExecution{
			responder: p,
			requester: req.From,
			accept:    accept,
		})
	}

	// Structure economy: one build or upgrade decision per tick.
	if plan, ok := ai.PlanStructure(e.g, p); ok {
		if plan.Upgrade != nil {
			e.g.AddExecution(&UpgradeExecution{player: p, unit: plan.Upgrade})
		} else {
			e.g.AddExecution(&ConstructionExecution{player: p, kind: plan.Kind, tile: plan.Tile})
		}
	}

	// Nuke when armed, funded, and a worthwhile victim exists.
	if p.BuildCount(engine.UnitMissileSilo) > 0 &&
		p.Gold() >= tun.CostAtomBomb &&
		p.Rand().Chance(30) {
		if victim, ok := ai.PickNukeVictim(e.g, p); ok {
			if tile, ok := ai.PickNukeTile(e.g, p, victim, tun.AtomBombRadius); ok {
				e.g.AddExecution(NewNukeExecution(p, engine.UnitAtomBomb, tile))
			}
		}
	}

	if p.Rand().Chance(tun.AI.AttackChance) {
		if target, ok := ai.PickAttackTarget(e.g, p); ok {
			troops := p.Troops() * int64(tun.AI.AttackTroopsPermille) / 1000
			if troops >= tun.AttackCostPerTile {
				e.g.AddExecution(NewAttackExecution(p, target, troops))
			}
		}
	}
}

func (e *NationExecution) IsActive() bool { return e.active }
