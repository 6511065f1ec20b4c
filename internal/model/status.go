package model

import "fmt"

// MoveMask is a set of movement capabilities used for travel cost queries.
type MoveMask uint32

const (
	MoveWalk MoveMask = 1 << iota
	MoveJump
	MoveSwim
	MoveRocketJump
	MoveTeleport

	MoveAll = MoveWalk | MoveJump | MoveSwim | MoveRocketJump | MoveTeleport
)

// Status is a combatant's health/armor/powerup state.
type Status struct {
	Health    float64
	MaxHealth float64
	Armor     float64
	HasQuad   bool
	HasShell  bool
	IsCarrier bool
}

// DamageToKill estimates damage needed to kill, accounting for armor.
// armorProtection is the share of damage armor absorbs (0.66 by default).
func (s Status) DamageToKill(armorProtection float64) float64 {
	if s.Health <= 0 {
		return 0
	}
	if s.Armor <= 0 || armorProtection <= 0 {
		return s.Health
	}
	if armorProtection >= 1 {
		return s.Health + s.Armor
	}
	// armor absorbs armorProtection of each hit until depleted
	if s.Health*armorProtection/(1-armorProtection) <= s.Armor {
		return s.Health / (1 - armorProtection)
	}
	return s.Health + s.Armor
}

var moveNames = map[string]MoveMask{
	"walk":       MoveWalk,
	"jump":       MoveJump,
	"swim":       MoveSwim,
	"rocketjump": MoveRocketJump,
	"teleport":   MoveTeleport,
}

// ParseMoveMask builds a mask from movement names (walk, jump, swim, rocketjump, teleport).
func ParseMoveMask(names []string) (MoveMask, error) {
	var mask MoveMask
	for _, n := range names {
		m, ok := moveNames[n]
		if !ok {
			return 0, fmt.Errorf("unknown movement %q", n)
		}
		mask |= m
	}
	return mask, nil
}
