package model

// EntityID identifies a world entity. Zero means "none".
type EntityID int32

// NoEntity is the zero EntityID.
const NoEntity EntityID = 0

// NavEntityFlags describe a nav entity.
type NavEntityFlags uint8

const (
	NavEntDisabled NavEntityFlags = 1 << iota
	NavEntClient
	NavEntDropped
)

// NavEntity is a world object usable as a bot goal (pickup, flag, movable target, client).
// Owned by the world tracker; bots only read copies.
type NavEntity struct {
	ID      EntityID
	Name    string
	AreaNum int
	Origin  Vec3
	Flags   NavEntityFlags
	Item    *Item

	// SpawnTime is the level time (ms) the entity is or will be available; 0 = unknown.
	SpawnTime int64
	// Timeout is the level time (ms) a dropped entity disappears.
	Timeout int64
	// MaxWaitDuration is the longest a bot should wait at the entity for it to spawn (ms).
	MaxWaitDuration int64
	// CostInfluence scales the travel cost of reaching the entity.
	CostInfluence float64
}

// IsDisabled reports whether the entity is not a goal candidate.
func (e *NavEntity) IsDisabled() bool { return e.Flags&NavEntDisabled != 0 }

// IsClient reports whether the entity is a player.
func (e *NavEntity) IsClient() bool { return e.Flags&NavEntClient != 0 }

// IsDropped reports whether the entity is transient and expires at Timeout.
func (e *NavEntity) IsDropped() bool { return e.Flags&NavEntDropped != 0 }

// Influence returns CostInfluence or 1 if unset.
func (e *NavEntity) Influence() float64 {
	if e.CostInfluence <= 0 {
		return 1
	}
	return e.CostInfluence
}
