package ai

import (
	"cmp"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/fragbots/internal/model"
)

const (
	sniperRange        = 2000.0
	farRange           = 1000.0
	middleRange        = 300.0
	pointBlankRange    = 150.0
	finishThreshold    = 50.0
	armorProtection    = 0.66
	hysteresisBonus    = 1.15
	marginalScoreRatio = 0.9
	quadDamageScale    = 4.0
)

// builtinWeapons lists builtin weapons in a fixed evaluation order.
var builtinWeapons = []model.ItemTag{
	model.WeapGunblade,
	model.WeapMachinegun,
	model.WeapRiotgun,
	model.WeapGrenadeLauncher,
	model.WeapRocketLauncher,
	model.WeapPlasmagun,
	model.WeapLasergun,
	model.WeapElectrobolt,
	model.WeapInstagun,
}

type weaponScore struct {
	weapon model.ItemTag
	score  float64
}

var (
	sniperRangeScores = []weaponScore{
		{model.WeapElectrobolt, 2.0},
		{model.WeapMachinegun, 1.0},
		{model.WeapPlasmagun, 0.5},
		{model.WeapRocketLauncher, 0.4},
	}
	farRangeScores = []weaponScore{
		{model.WeapElectrobolt, 1.8},
		{model.WeapMachinegun, 1.2},
		{model.WeapRocketLauncher, 1.0},
		{model.WeapPlasmagun, 1.0},
		{model.WeapGrenadeLauncher, 0.3},
		{model.WeapRiotgun, 0.3},
	}
	middleRangeScores = []weaponScore{
		{model.WeapRocketLauncher, 1.6},
		{model.WeapLasergun, 1.5},
		{model.WeapPlasmagun, 1.4},
		{model.WeapElectrobolt, 1.0},
		{model.WeapRiotgun, 1.0},
		{model.WeapGrenadeLauncher, 0.9},
		{model.WeapMachinegun, 0.8},
	}
	closeRangeScores = []weaponScore{
		{model.WeapRiotgun, 1.6},
		{model.WeapLasergun, 1.6},
		{model.WeapPlasmagun, 1.3},
		{model.WeapRocketLauncher, 1.0},
		{model.WeapMachinegun, 0.9},
		{model.WeapGunblade, 0.8},
		{model.WeapElectrobolt, 0.6},
		{model.WeapGrenadeLauncher, 0.5},
	}
)

// WorldState is the per-frame input of weapon selection.
type WorldState struct {
	Now             int64
	Self            SelfState
	HasEnemy        bool
	Enemy           EnemyView
	EnemiesHaveQuad bool
}

// EnemyDistance returns the distance to the primary enemy.
func (ws WorldState) EnemyDistance() float64 {
	return ws.Self.Origin.Distance(ws.Enemy.Origin)
}

// WeaponSelector picks a builtin weapon and an optional script weapon
// for the primary enemy and publishes the result to SelectedWeapons.
type WeaponSelector struct {
	bot          model.EntityID
	skill        float64
	gametype     Gametype
	weapons      *SelectedWeapons
	rng          *rand.Rand
	nextInstance func() uint32

	choicePeriod    int64
	fastCheckPeriod int64
	jitterPeriod    int64

	jitter          float64
	jitterTimeoutAt int64
	nextFastCheckAt int64
}

func newWeaponSelector(bot model.EntityID, skill float64, gametype Gametype, weapons *SelectedWeapons,
	rng *rand.Rand, nextInstance func() uint32, cfg Config) *WeaponSelector {
	return &WeaponSelector{
		bot:             bot,
		skill:           skill,
		gametype:        gametype,
		weapons:         weapons,
		rng:             rng,
		nextInstance:    nextInstance,
		choicePeriod:    cfg.WeaponChoicePeriod.Milliseconds(),
		fastCheckPeriod: cfg.FastSwitchCheckPeriod.Milliseconds(),
		jitterPeriod:    cfg.WeaponJitterPeriod.Milliseconds(),
	}
}

// Frame re-selects weapons when the previous choice lapsed or a fast switch is needed.
func (s *WeaponSelector) Frame(ws WorldState) {
	if !ws.HasEnemy {
		if s.weapons.hasBuiltin || s.weapons.hasScript {
			s.weapons.Invalidate()
		}
		return
	}

	if ws.Now >= s.jitterTimeoutAt {
		s.jitter = s.rng.Float64()
		s.jitterTimeoutAt = ws.Now + s.jitterPeriod
	}

	if s.weapons.AreValid() && !s.checkFastSwitch(ws) {
		return
	}

	s.think(ws)
}

func (s *WeaponSelector) checkFastSwitch(ws WorldState) bool {
	if ws.Now < s.nextFastCheckAt {
		return false
	}
	s.nextFastCheckAt = ws.Now + s.fastCheckPeriod

	if !s.weapons.hasBuiltin {
		return false
	}
	w := s.weapons.builtin
	if ws.Self.Inventory.ReadyAmmo(w) == 0 {
		return true
	}
	def, _ := model.WeaponDefByTag(w)
	dist := ws.EnemyDistance()
	if dist < pointBlankRange && def.Fire.SplashRadius > 0 && !ws.Self.Status.HasShell {
		return true
	}
	return dist > def.MaxRange*1.25
}

func (s *WeaponSelector) think(ws WorldState) {
	builtin := s.suggestBuiltin(ws)
	script, scriptTier := s.suggestScript(ws)
	if builtin == model.ItemNone && script == nil {
		return
	}

	preferBuiltin := true
	if script != nil {
		if builtin == model.ItemNone {
			preferBuiltin = false
		} else if def, _ := model.WeaponDefByTag(builtin); float64(def.Tier) < scriptTier {
			preferBuiltin = false
		}
	}

	period := int64(float64(s.choicePeriod) * (1 - s.skill/3))
	s.weapons.set(builtin, script, preferBuiltin, s.nextInstance(), ws.Now+period)

	if IsDebugEnabled() {
		scriptNum := 0
		if script != nil {
			scriptNum = script.WeaponNum
		}
		slog.Debug("weapons selected",
			"bot", s.bot,
			"builtin", builtin,
			"script", scriptNum,
			"preferBuiltin", preferBuiltin,
			"instance", s.weapons.instanceID)
	}
}

func (s *WeaponSelector) suggestBuiltin(ws WorldState) model.ItemTag {
	inv := &ws.Self.Inventory
	dist := ws.EnemyDistance()

	if inv.ReadyAmmo(model.WeapInstagun) > 0 {
		return model.WeapInstagun
	}
	if w, ok := s.suggestFinishWeapon(ws, dist); ok {
		return w
	}
	if ws.Self.Status.HasQuad {
		if w, ok := s.suggestQuadBearerWeapon(ws, dist); ok {
			return w
		}
	}
	if isEnemyEscaping(ws) {
		if w, ok := s.suggestHitEscapingEnemyWeapon(ws, dist); ok {
			return w
		}
	}
	if w, ok := s.chooseByScores(s.rangeScores(ws, dist)); ok {
		return w
	}
	return s.suggestShotOfDespairWeapon(ws, dist)
}

// suggestFinishWeapon picks a sure-hit weapon that kills a nearly dead enemy in one shot.
func (s *WeaponSelector) suggestFinishWeapon(ws WorldState, dist float64) (model.ItemTag, bool) {
	dtk := ws.Enemy.Status.DamageToKill(armorProtection)
	if dtk <= 0 || dtk >= finishThreshold {
		return model.ItemNone, false
	}
	scale := 1.0
	if ws.Self.Status.HasQuad {
		scale = quadDamageScale
	}

	best := model.ItemNone
	var bestDef model.WeaponDef
	for _, w := range builtinWeapons {
		if ws.Self.Inventory.ReadyAmmo(w) == 0 {
			continue
		}
		def, _ := model.WeaponDefByTag(w)
		if def.Fire.AimType != model.AimTypeInstantHit || def.MaxRange < dist || def.Damage*scale < dtk {
			continue
		}
		if best == model.ItemNone || def.Tier < bestDef.Tier || (def.Tier == bestDef.Tier && def.Damage > bestDef.Damage) {
			best, bestDef = w, def
		}
	}
	return best, best != model.ItemNone
}

func (s *WeaponSelector) suggestQuadBearerWeapon(ws WorldState, dist float64) (model.ItemTag, bool) {
	order := []model.ItemTag{
		model.WeapRocketLauncher, model.WeapPlasmagun, model.WeapLasergun, model.WeapRiotgun, model.WeapMachinegun,
	}
	if dist > farRange {
		order = []model.ItemTag{
			model.WeapElectrobolt, model.WeapMachinegun, model.WeapPlasmagun, model.WeapRocketLauncher,
		}
	}
	return firstReadyInRange(&ws.Self.Inventory, order, dist)
}

func (s *WeaponSelector) suggestHitEscapingEnemyWeapon(ws WorldState, dist float64) (model.ItemTag, bool) {
	order := []model.ItemTag{
		model.WeapLasergun, model.WeapElectrobolt, model.WeapMachinegun, model.WeapRiotgun,
	}
	if dist > 700 {
		order = []model.ItemTag{model.WeapElectrobolt, model.WeapMachinegun, model.WeapPlasmagun}
	}
	return firstReadyInRange(&ws.Self.Inventory, order, dist)
}

// suggestShotOfDespairWeapon returns the hardest hitting weapon that can fire at all.
func (s *WeaponSelector) suggestShotOfDespairWeapon(ws WorldState, dist float64) model.ItemTag {
	best, bestInRange := model.ItemNone, false
	bestDamage := 0.0
	for _, w := range builtinWeapons {
		if ws.Self.Inventory.ReadyAmmo(w) == 0 {
			continue
		}
		def, _ := model.WeaponDefByTag(w)
		inRange := def.MaxRange >= dist
		if best == model.ItemNone || (inRange && !bestInRange) || (inRange == bestInRange && def.Damage > bestDamage) {
			best, bestInRange, bestDamage = w, inRange, def.Damage
		}
	}
	return best
}

func (s *WeaponSelector) rangeScores(ws WorldState, dist float64) []weaponScore {
	var base []weaponScore
	switch {
	case dist > sniperRange && ws.Enemy.Visible:
		base = sniperRangeScores
	case dist > farRange:
		base = farRangeScores
	case dist > middleRange:
		base = middleRangeScores
	default:
		base = closeRangeScores
	}

	inv := &ws.Self.Inventory
	scores := make([]weaponScore, 0, len(base))
	for _, entry := range base {
		ready := inv.ReadyAmmo(entry.weapon)
		if ready == 0 {
			continue
		}
		def, _ := model.WeaponDefByTag(entry.weapon)
		score := entry.score * ammoFactor(entry.weapon, ready)

		if entry.weapon == model.WeapGunblade && dist <= def.MaxRange {
			score = 1.5
		}
		if def.Fire.SplashRadius > 0 && dist < pointBlankRange && !ws.Self.Status.HasShell {
			score *= 0.3
		}
		if !ws.Enemy.Visible {
			if def.Fire.AimType == model.AimTypeInstantHit {
				score *= 0.3
			} else if def.Fire.SplashRadius > 0 {
				score *= 1.3
			}
		}
		if ws.EnemiesHaveQuad {
			if def.MaxRange >= sniperRange {
				score *= 1.2
			} else {
				score *= 0.8
			}
		}
		if s.weapons.builtin == entry.weapon {
			score *= hysteresisBonus
		}
		scores = append(scores, weaponScore{entry.weapon, score})
	}
	return scores
}

// chooseByScores picks the top scored weapon; marginal runner-ups win when jitter says so.
func (s *WeaponSelector) chooseByScores(scores []weaponScore) (model.ItemTag, bool) {
	if len(scores) == 0 {
		return model.ItemNone, false
	}
	slices.SortStableFunc(scores, func(a, b weaponScore) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(a.weapon, b.weapon)
	})
	best := scores[0]
	if best.score <= 0 {
		return model.ItemNone, false
	}
	if len(scores) > 1 && scores[1].score >= best.score*marginalScoreRatio && s.jitter > 0.5 {
		return scores[1].weapon, true
	}
	return best.weapon, true
}

// suggestScript picks the best ready script weapon and returns its effective tier.
func (s *WeaponSelector) suggestScript(ws WorldState) (*model.ScriptWeaponDef, float64) {
	var best *model.ScriptWeaponDef
	bestTier := math.Inf(-1)
	dist := ws.EnemyDistance()
	for _, sw := range s.gametype.ScriptWeapons(s.bot) {
		if !sw.Ready {
			continue
		}
		def := sw.Def
		if dist < def.MinRange || (def.MaxRange > 0 && dist > def.MaxRange) {
			continue
		}
		tier := float64(def.Tier)
		if def.BestRange > 0 && math.Abs(dist-def.BestRange)/def.BestRange > 0.5 {
			tier--
		}
		if tier > bestTier {
			best, bestTier = &def, tier
		}
	}
	return best, bestTier
}

func isEnemyEscaping(ws WorldState) bool {
	toEnemy := ws.Enemy.Origin.Sub(ws.Self.Origin)
	if toEnemy.LengthSquared() < 1 {
		return false
	}
	dir := toEnemy.Normalized()
	away := ws.Enemy.Velocity.Dot(dir)
	chase := ws.Self.Velocity.Dot(dir)
	return away > 300 && away > chase+100
}

func firstReadyInRange(inv *model.Inventory, order []model.ItemTag, dist float64) (model.ItemTag, bool) {
	for _, w := range order {
		if inv.ReadyAmmo(w) == 0 {
			continue
		}
		if def, _ := model.WeaponDefByTag(w); def.MaxRange >= dist {
			return w, true
		}
	}
	return model.ItemNone, false
}

// ammoFactor lowers scores of weapons that are about to run dry.
func ammoFactor(weapon model.ItemTag, ready int) float64 {
	it := model.ItemByTag(weapon)
	if it == nil {
		return 1
	}
	ammo := model.ItemByTag(it.AmmoTag)
	if ammo == nil || ammo.InventoryMax <= 0 {
		return 1
	}
	comfortable := max(1, ammo.InventoryMax/4)
	return 0.4 + 0.6*min(1, float64(ready)/float64(comfortable))
}
