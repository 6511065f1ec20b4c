package ai

import "github.com/udisondev/fragbots/internal/model"

// WeaponChoice is a copy of a valid weapon selection.
type WeaponChoice struct {
	InstanceID    uint32
	Builtin       model.ItemTag
	BuiltinFire   model.FireDef
	HasBuiltin    bool
	ScriptFire    model.FireDef
	HasScript     bool
	PreferBuiltin bool
}

// Preferred returns the fire definition the bot should use now.
func (c WeaponChoice) Preferred() (model.FireDef, bool) {
	switch {
	case c.HasBuiltin && (c.PreferBuiltin || !c.HasScript):
		return c.BuiltinFire, true
	case c.HasScript:
		return c.ScriptFire, true
	default:
		return model.FireDef{}, false
	}
}

// SelectedWeapons holds a builtin and an optional script weapon choice
// stamped with an instance id and a timeout.
type SelectedWeapons struct {
	clock *frameClock

	builtin       model.ItemTag
	builtinFire   model.FireDef
	hasBuiltin    bool
	scriptFire    model.FireDef
	hasScript     bool
	preferBuiltin bool
	instanceID    uint32
	timeoutAt     int64
}

func newSelectedWeapons(clock *frameClock) *SelectedWeapons {
	return &SelectedWeapons{clock: clock}
}

// AreValid reports whether the selection can be read.
func (w *SelectedWeapons) AreValid() bool {
	return (w.hasBuiltin || w.hasScript) && w.clock.now < w.timeoutAt
}

// InstanceID identifies the current selection.
func (w *SelectedWeapons) InstanceID() uint32 {
	return w.instanceID
}

// TimeoutAt returns the level time the selection lapses at.
func (w *SelectedWeapons) TimeoutAt() int64 {
	return w.timeoutAt
}

// Invalidate drops the selection; the next frame picks weapons anew.
func (w *SelectedWeapons) Invalidate() {
	w.hasBuiltin = false
	w.hasScript = false
	w.builtin = model.ItemNone
	w.timeoutAt = 0
}

// Current returns a copy of the selection.
func (w *SelectedWeapons) Current() (WeaponChoice, error) {
	if !w.AreValid() {
		return WeaponChoice{}, staleSelection("weapons", w.instanceID)
	}
	return WeaponChoice{
		InstanceID:    w.instanceID,
		Builtin:       w.builtin,
		BuiltinFire:   w.builtinFire,
		HasBuiltin:    w.hasBuiltin,
		ScriptFire:    w.scriptFire,
		HasScript:     w.hasScript,
		PreferBuiltin: w.preferBuiltin,
	}, nil
}

func (w *SelectedWeapons) set(builtin model.ItemTag, script *model.ScriptWeaponDef, preferBuiltin bool, instanceID uint32, timeoutAt int64) {
	w.builtin = builtin
	w.hasBuiltin = false
	if fd, ok := model.BuiltinFireDef(builtin); ok {
		w.builtinFire = fd
		w.hasBuiltin = true
	}
	w.hasScript = script != nil
	if script != nil {
		w.scriptFire = script.FireDef()
	}
	w.preferBuiltin = preferBuiltin
	w.instanceID = instanceID
	w.timeoutAt = timeoutAt
}
