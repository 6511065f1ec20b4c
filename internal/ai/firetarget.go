package ai

import (
	"math"

	"github.com/udisondev/fragbots/internal/model"
)

const (
	gravity             = 850.0
	instantLeadSeconds  = 0.05
	maxInterceptSeconds = 3.0
	floorSplashSlack    = 1.0
	hitTolerance        = 24.0

	accuracyInstant        = 3.0
	accuracyPredict        = 5.0
	accuracyExplosiveEnv   = 4.0
	accuracyExplosiveAir   = 7.0
	accuracyDropProjectile = 8.0
)

// AimParams is where and how precisely a bot should shoot.
type AimParams struct {
	FireOrigin            model.Vec3
	FireTarget            model.Vec3
	SuggestedBaseAccuracy float64
}

// EffectiveAccuracy scales the base spread by skill; skilled bots aim tighter.
func (a AimParams) EffectiveAccuracy(skill float64) float64 {
	return a.SuggestedBaseAccuracy * (1 - 0.75*skill)
}

type cachedFireTarget struct {
	origin            model.Vec3
	accuracy          float64
	enemiesInstanceID uint32
	weaponsInstanceID uint32
	kind              model.FireDefKind
	invalidAt         int64
	valid             bool
}

// FireTargetCache memoizes the aim point for the current enemy and weapon
// selections for a short time.
type FireTargetCache struct {
	tracer Tracer
	areas  AreaGeometry
	ttl    int64

	cached     cachedFireTarget
	recomputes int
}

func newFireTargetCache(tracer Tracer, areas AreaGeometry, ttl int64) *FireTargetCache {
	return &FireTargetCache{tracer: tracer, areas: areas, ttl: ttl}
}

// Recomputes returns how many times the aim point was computed from scratch.
func (c *FireTargetCache) Recomputes() int {
	return c.recomputes
}

// AimParams returns aim parameters for firing fireDef from fireOrigin at the primary enemy.
func (c *FireTargetCache) AimParams(now int64, fireOrigin model.Vec3, enemies *SelectedEnemies,
	weapons *SelectedWeapons, fireDef model.FireDef) (AimParams, error) {
	enemy, err := enemies.Primary()
	if err != nil {
		return AimParams{}, err
	}
	if _, err := weapons.Current(); err != nil {
		return AimParams{}, err
	}

	if c.isValid(now, enemies.InstanceID(), weapons.InstanceID(), fireDef.Kind) {
		return AimParams{
			FireOrigin:            fireOrigin,
			FireTarget:            c.cached.origin,
			SuggestedBaseAccuracy: c.cached.accuracy,
		}, nil
	}

	target, accuracy := c.compute(fireOrigin, enemy, fireDef)
	c.recomputes++
	c.cached = cachedFireTarget{
		origin:            target,
		accuracy:          accuracy,
		enemiesInstanceID: enemies.InstanceID(),
		weaponsInstanceID: weapons.InstanceID(),
		kind:              fireDef.Kind,
		invalidAt:         now + c.ttl,
		valid:             true,
	}
	return AimParams{FireOrigin: fireOrigin, FireTarget: target, SuggestedBaseAccuracy: accuracy}, nil
}

// Invalidate drops the cached aim point.
func (c *FireTargetCache) Invalidate() {
	c.cached.valid = false
}

func (c *FireTargetCache) isValid(now int64, enemiesID, weaponsID uint32, kind model.FireDefKind) bool {
	return c.cached.valid &&
		c.cached.enemiesInstanceID == enemiesID &&
		c.cached.weaponsInstanceID == weaponsID &&
		c.cached.kind == kind &&
		now < c.cached.invalidAt
}

func (c *FireTargetCache) compute(fireOrigin model.Vec3, enemy EnemyView, fd model.FireDef) (model.Vec3, float64) {
	target := enemy.Center

	switch fd.AimType {
	case model.AimTypeInstantHit:
		return target.Add(enemy.Velocity.Scale(instantLeadSeconds)), accuracyInstant

	case model.AimTypePredict:
		predicted, _ := predictIntercept(fireOrigin, target, enemy.Velocity, fd.ProjectileSpeed, !enemy.OnGround)
		return predicted, accuracyPredict

	case model.AimTypeDrop:
		predicted, t := predictIntercept(fireOrigin, target, enemy.Velocity, fd.ProjectileSpeed, !enemy.OnGround)
		predicted.Z += 0.5 * gravity * t * t
		return predicted, accuracyDropProjectile

	case model.AimTypePredictExplosive:
		predicted, _ := predictIntercept(fireOrigin, target, enemy.Velocity, fd.ProjectileSpeed, !enemy.OnGround)
		if point, ok := c.adjustByEnvironment(fireOrigin, predicted, enemy, fd.SplashRadius); ok {
			return point, accuracyExplosiveEnv
		}
		return predicted, accuracyExplosiveAir
	}
	return target, accuracyInstant
}

// predictIntercept solves for the point a projectile with speed meets a target
// moving with velocity. Airborne targets fall under gravity. Returns the point
// and the flight time in seconds.
func predictIntercept(origin, target, velocity model.Vec3, speed float64, airborne bool) (model.Vec3, float64) {
	if speed <= 0 {
		return target, 0
	}
	t, ok := interceptTime(target.Sub(origin), velocity, speed)
	if !ok {
		return target, origin.Distance(target) / speed
	}
	predicted := target.Add(velocity.Scale(t))
	if airborne {
		for range 3 {
			p := predicted
			p.Z -= 0.5 * gravity * t * t
			t = min(origin.Distance(p)/speed, maxInterceptSeconds)
			predicted = target.Add(velocity.Scale(t))
			predicted.Z -= 0.5 * gravity * t * t
		}
	}
	return predicted, t
}

// interceptTime solves |d + v t| = s t for the smallest positive t.
func interceptTime(d, v model.Vec3, s float64) (float64, bool) {
	a := v.Dot(v) - s*s
	b := 2 * d.Dot(v)
	c := d.Dot(d)

	if math.Abs(a) < 1e-6 {
		if b >= 0 {
			return 0, false
		}
		t := -c / b
		return t, t > 0 && t <= maxInterceptSeconds
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)
	t := math.Inf(1)
	if t1 > 0 {
		t = t1
	}
	if t2 > 0 && t2 < t {
		t = t2
	}
	if math.IsInf(t, 1) || t > maxInterceptSeconds {
		return 0, false
	}
	return t, true
}

// adjustByEnvironment looks for solid geometry near target to land splash damage on.
// Uses the area floor when the target stands in a known grounded area; otherwise
// probes six directions around the target and checks the closest hit is visible.
func (c *FireTargetCache) adjustByEnvironment(fireOrigin, target model.Vec3, enemy EnemyView, splash float64) (model.Vec3, bool) {
	if c.tracer == nil || splash <= 0 {
		return target, false
	}

	if c.areas != nil {
		if area := c.areas.AreaAt(target); area != 0 {
			if floor, ok := c.areas.AreaFloor(area); ok && target.Z-floor <= splash {
				point := model.Vec3{X: target.X, Y: target.Y, Z: floor + floorSplashSlack}
				if c.canHit(fireOrigin, point) {
					return point, true
				}
			}
		}
	}

	forward := target.Sub(fireOrigin)
	forward.Z = 0
	if forward.LengthSquared() < 1 {
		forward = model.Vec3{X: 1}
	}
	forward = forward.Normalized()
	up := model.Vec3{Z: 1}
	right := forward.Cross(up)

	dirs := [6]model.Vec3{
		up.Scale(-1),      // below
		forward.Scale(-1), // front, facing the shooter
		right.Scale(-1),   // left
		right,             // right
		forward,           // behind
		up,                // above
	}
	depth := splash + enemy.Maxs.Sub(enemy.Mins).Length()*0.5

	best := target
	bestDist := math.Inf(1)
	for _, dir := range dirs {
		tr := c.tracer.Trace(target, target.Add(dir.Scale(depth)))
		if !tr.Hit {
			continue
		}
		if d := target.DistanceSquared(tr.EndPos); d < bestDist {
			best, bestDist = tr.EndPos, d
		}
	}
	if math.IsInf(bestDist, 1) || !c.canHit(fireOrigin, best) {
		return target, false
	}
	return best, true
}

func (c *FireTargetCache) canHit(fireOrigin, point model.Vec3) bool {
	tr := c.tracer.Trace(fireOrigin, point)
	return !tr.Hit || tr.EndPos.DistanceSquared(point) < hitTolerance*hitTolerance
}
