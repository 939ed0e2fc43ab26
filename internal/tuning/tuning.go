// Package tuning centralizes the engine's empirically tuned constants. None
// of these are correctness invariants; they are game balance, kept as named
// configuration so behavior-parity tests can pin exact figures and product
// can retune without code changes. Values load from yaml over compiled-in
// defaults. A malformed file is a deployment bug and fails startup.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	// Pacing.
	SpawnPhaseTicks int   `yaml:"spawn_phase_ticks"`
	SpawnBlobRadius int   `yaml:"spawn_blob_radius"`
	StartTroops     int64 `yaml:"start_troops"`

	// Per-tick economy regen.
	TroopsPerTileCap   int64 `yaml:"troops_per_tile_cap"`
	TroopBaseCap       int64 `yaml:"troop_base_cap"`
	TroopGrowthDivisor int64 `yaml:"troop_growth_divisor"`
	GoldPerTick        int64 `yaml:"gold_per_tick"`
	GoldPerPortTick    int64 `yaml:"gold_per_port_tick"`

	// Attacks.
	AttackTilesPerTickBase int   `yaml:"attack_tiles_per_tick_base"`
	AttackTroopsPerTile    int64 `yaml:"attack_troops_per_tile"`
	AttackCostPerTile      int64 `yaml:"attack_cost_per_tile"`
	AttackDefenderLoss     int64 `yaml:"attack_defender_loss"`
	DefensePostRadius      int   `yaml:"defense_post_radius"`
	DefensePostCostFactor  int64 `yaml:"defense_post_cost_factor"`

	// Boats.
	BoatSearchDist    int   `yaml:"boat_search_dist"`
	TransportSpeed    int   `yaml:"transport_speed"`
	TradeShipSpeed    int   `yaml:"trade_ship_speed"`
	TradeShipGold     int64 `yaml:"trade_ship_gold"`
	TradeSpawnChance  int   `yaml:"trade_spawn_chance"` // 1-in-N per port per tick
	MaxTradeRouteDist int   `yaml:"max_trade_route_dist"`

	// Structures.
	CostCity        int64 `yaml:"cost_city"`
	CostPort        int64 `yaml:"cost_port"`
	CostDefensePost int64 `yaml:"cost_defense_post"`
	CostSAMLauncher int64 `yaml:"cost_sam_launcher"`
	CostMissileSilo int64 `yaml:"cost_missile_silo"`

	// Nukes.
	NukeSpeed            int   `yaml:"nuke_speed"`
	AtomBombRadius       int   `yaml:"atom_bomb_radius"`
	HydrogenBombRadius   int   `yaml:"hydrogen_bomb_radius"`
	NukeTroopDamage      int64 `yaml:"nuke_troop_damage"`
	CostAtomBomb         int64 `yaml:"cost_atom_bomb"`
	CostHydrogenBomb     int64 `yaml:"cost_hydrogen_bomb"`
	SAMCoverageRadius    int   `yaml:"sam_coverage_radius"`
	SAMInterceptChance   int   `yaml:"sam_intercept_chance"` // 1-in-N miss; see NukeExecution
	NukeRetargetCooldown int   `yaml:"nuke_retarget_cooldown_ticks"`
	RecentTargetPenalty  int   `yaml:"recent_target_penalty"`

	// Alliances.
	AllianceRequestTTL int `yaml:"alliance_request_ttl_ticks"`
	AllianceDuration   int `yaml:"alliance_duration_ticks"`

	AI AITuning `yaml:"ai"`
}

// AITuning gathers the bot/nation heuristic weights. The inflation and
// weight figures are product-tuned; tests pin the defaults, they do not
// derive them.
type AITuning struct {
	// Structure economy.
	PortsPerCity           int `yaml:"ports_per_city"`           // x10: 7 => 0.7 ports per city
	SilosPerCity           int `yaml:"silos_per_city"`           // x10
	SAMsPerCity            int `yaml:"sams_per_city"`            // x10
	DefensePostsPerCity    int `yaml:"defense_posts_per_city"`   // x10
	UpgradeDensityPermille int `yaml:"upgrade_density_permille"` // structures per owned tile, x1000

	CostInflationPercent int `yaml:"cost_inflation_percent"` // perceived cost +N% per owned structure

	// Placement score weights.
	WeightElevation      int `yaml:"weight_elevation"`
	WeightBorderDist     int `yaml:"weight_border_dist"`
	WeightKindSpacing    int `yaml:"weight_kind_spacing"`
	WeightAssetProximity int `yaml:"weight_asset_proximity"`
	MinKindSpacing       int `yaml:"min_kind_spacing"`

	// Nuke targeting.
	WeightTargetCity     int `yaml:"weight_target_city"`
	WeightTargetPort     int `yaml:"weight_target_port"`
	WeightTargetSilo     int `yaml:"weight_target_silo"`
	WeightTargetSAM      int `yaml:"weight_target_sam"`
	WeightTargetDefense  int `yaml:"weight_target_defense"`
	LeaderAheadPercent   int `yaml:"leader_ahead_percent"`   // free-for-all runaway threshold
	HatedStrengthDivisor int `yaml:"hated_strength_divisor"` // victim weaker than strength/N

	RespectSAMCoverage bool `yaml:"respect_sam_coverage"` // harder settings only

	// Expansion impulses.
	AttackChance         int `yaml:"attack_chance"` // 1-in-N per tick
	AttackTroopsPermille int `yaml:"attack_troops_permille"`
}

func Default() Tuning {
	return Tuning{
		SpawnPhaseTicks: 50,
		SpawnBlobRadius: 2,
		StartTroops:     5000,

		TroopsPerTileCap:   50,
		TroopBaseCap:       10000,
		TroopGrowthDivisor: 200,
		GoldPerTick:        10,
		GoldPerPortTick:    15,

		AttackTilesPerTickBase: 2,
		AttackTroopsPerTile:    1500,
		AttackCostPerTile:      20,
		AttackDefenderLoss:     10,
		DefensePostRadius:      6,
		DefensePostCostFactor:  3,

		BoatSearchDist:    60,
		TransportSpeed:    2,
		TradeShipSpeed:    1,
		TradeShipGold:     500,
		TradeSpawnChance:  40,
		MaxTradeRouteDist: 120,

		CostCity:        5000,
		CostPort:        4000,
		CostDefensePost: 2500,
		CostSAMLauncher: 7500,
		CostMissileSilo: 10000,

		NukeSpeed:            4,
		AtomBombRadius:       4,
		HydrogenBombRadius:   10,
		NukeTroopDamage:      2500,
		CostAtomBomb:         12500,
		CostHydrogenBomb:     25000,
		SAMCoverageRadius:    12,
		SAMInterceptChance:   4,
		NukeRetargetCooldown: 100,
		RecentTargetPenalty:  1000,

		AllianceRequestTTL: 30,
		AllianceDuration:   600,

		AI: AITuning{
			PortsPerCity:           7,
			SilosPerCity:           5,
			SAMsPerCity:            5,
			DefensePostsPerCity:    10,
			UpgradeDensityPermille: 20,

			CostInflationPercent: 75,

			WeightElevation:      2,
			WeightBorderDist:     3,
			WeightKindSpacing:    4,
			WeightAssetProximity: 5,
			MinKindSpacing:       8,

			WeightTargetCity:     25,
			WeightTargetPort:     10,
			WeightTargetSilo:     30,
			WeightTargetSAM:      20,
			WeightTargetDefense:  5,
			LeaderAheadPercent:   150,
			HatedStrengthDivisor: 2,

			RespectSAMCoverage: false,

			AttackChance:         20,
			AttackTroopsPermille: 300,
		},
	}
}

// Load reads yaml from path over the defaults. Missing keys keep their
// default value; an unreadable or malformed file is an error.
func Load(path string) (Tuning, error) {
	t := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}
