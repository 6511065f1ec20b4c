package model

// AimType tells the aim logic how a weapon's shots travel.
type AimType uint8

const (
	// AimTypeInstantHit - hitscan, aim at the target directly
	AimTypeInstantHit AimType = iota
	// AimTypePredict - projectile, aim at the predicted intercept point
	AimTypePredict
	// AimTypePredictExplosive - projectile with splash, aim at intercept or nearby geometry
	AimTypePredictExplosive
	// AimTypeDrop - projectile affected by gravity
	AimTypeDrop
)

// String returns human-readable aim type name
func (a AimType) String() string {
	switch a {
	case AimTypeInstantHit:
		return "instant"
	case AimTypePredict:
		return "predict"
	case AimTypePredictExplosive:
		return "predict_explosive"
	case AimTypeDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// FireDefKind discriminates builtin and script-defined fire definitions.
type FireDefKind uint8

const (
	FireDefBuiltin FireDefKind = iota
	FireDefScripted
)

// FireDef describes how a selected weapon fires. Builtin and script weapons share it;
// Kind tells them apart.
type FireDef struct {
	Kind            FireDefKind
	WeaponNum       int
	ProjectileSpeed float64
	SplashRadius    float64
	AimType         AimType
	Continuous      bool
}

// IsBuiltin reports whether the fire definition belongs to a builtin weapon.
func (f FireDef) IsBuiltin() bool {
	return f.Kind == FireDefBuiltin
}

// WeaponDef holds static builtin weapon parameters used by weapon selection.
type WeaponDef struct {
	Weapon   ItemTag
	Fire     FireDef
	Damage   float64 // damage of a single shot (all pellets for riotgun)
	MaxRange float64
	Tier     int
	// InfiniteWeakAmmo marks weapons that can always fire (gunblade blade).
	InfiniteWeakAmmo bool
}

var weaponDefs = map[ItemTag]WeaponDef{
	WeapGunblade: {
		Weapon: WeapGunblade, Damage: 50, MaxRange: 96, Tier: 0, InfiniteWeakAmmo: true,
		Fire: FireDef{AimType: AimTypeInstantHit},
	},
	WeapMachinegun: {
		Weapon: WeapMachinegun, Damage: 8, MaxRange: 4000, Tier: 1,
		Fire: FireDef{AimType: AimTypeInstantHit, Continuous: true},
	},
	WeapRiotgun: {
		Weapon: WeapRiotgun, Damage: 60, MaxRange: 800, Tier: 2,
		Fire: FireDef{AimType: AimTypeInstantHit},
	},
	WeapGrenadeLauncher: {
		Weapon: WeapGrenadeLauncher, Damage: 80, MaxRange: 1500, Tier: 2,
		Fire: FireDef{AimType: AimTypeDrop, ProjectileSpeed: 1000, SplashRadius: 125},
	},
	WeapRocketLauncher: {
		Weapon: WeapRocketLauncher, Damage: 80, MaxRange: 3000, Tier: 3,
		Fire: FireDef{AimType: AimTypePredictExplosive, ProjectileSpeed: 1150, SplashRadius: 125},
	},
	WeapPlasmagun: {
		Weapon: WeapPlasmagun, Damage: 15, MaxRange: 3000, Tier: 3,
		Fire: FireDef{AimType: AimTypePredict, ProjectileSpeed: 2400, SplashRadius: 45, Continuous: true},
	},
	WeapLasergun: {
		Weapon: WeapLasergun, Damage: 7, MaxRange: 700, Tier: 3,
		Fire: FireDef{AimType: AimTypeInstantHit, Continuous: true},
	},
	WeapElectrobolt: {
		Weapon: WeapElectrobolt, Damage: 75, MaxRange: 8000, Tier: 3,
		Fire: FireDef{AimType: AimTypeInstantHit},
	},
	WeapInstagun: {
		Weapon: WeapInstagun, Damage: 200, MaxRange: 8000, Tier: 4,
		Fire: FireDef{AimType: AimTypeInstantHit},
	},
}

// WeaponDefByTag returns builtin weapon parameters.
func WeaponDefByTag(weapon ItemTag) (WeaponDef, bool) {
	def, ok := weaponDefs[weapon]
	return def, ok
}

// BuiltinFireDef returns the fire definition of a builtin weapon.
func BuiltinFireDef(weapon ItemTag) (FireDef, bool) {
	def, ok := weaponDefs[weapon]
	if !ok {
		return FireDef{}, false
	}
	fd := def.Fire
	fd.Kind = FireDefBuiltin
	fd.WeaponNum = int(weapon)
	return fd, true
}

// ScriptWeaponDef is a gametype-defined auxiliary weapon.
type ScriptWeaponDef struct {
	WeaponNum       int
	Name            string
	Tier            int
	MinRange        float64
	MaxRange        float64
	BestRange       float64
	ProjectileSpeed float64
	SplashRadius    float64
	AimType         AimType
	Continuous      bool
}

// FireDef converts the script weapon into a generic fire definition.
func (d ScriptWeaponDef) FireDef() FireDef {
	return FireDef{
		Kind:            FireDefScripted,
		WeaponNum:       d.WeaponNum,
		ProjectileSpeed: d.ProjectileSpeed,
		SplashRadius:    d.SplashRadius,
		AimType:         d.AimType,
		Continuous:      d.Continuous,
	}
}
