package model

// Inventory holds item counts indexed by ItemTag.
type Inventory [ItemTagTotal]int

// Has reports whether at least one item with tag is held.
func (inv *Inventory) Has(tag ItemTag) bool {
	return inv.Count(tag) > 0
}

// Count returns the number of items with tag.
func (inv *Inventory) Count(tag ItemTag) int {
	if tag <= ItemNone || tag >= ItemTagTotal {
		return 0
	}
	return inv[tag]
}

// Set sets the count for tag, clamped at zero.
func (inv *Inventory) Set(tag ItemTag, count int) {
	if tag <= ItemNone || tag >= ItemTagTotal {
		return
	}
	inv[tag] = max(count, 0)
}

// Add adds delta to the count for tag, clamped to [0, InventoryMax] for known items.
func (inv *Inventory) Add(tag ItemTag, delta int) {
	c := inv.Count(tag) + delta
	if it := ItemByTag(tag); it != nil && it.InventoryMax > 0 {
		c = min(c, it.InventoryMax)
	}
	inv.Set(tag, c)
}

// ReadyAmmo returns how many shots weapon can fire right now.
// Zero when the weapon is not held.
func (inv *Inventory) ReadyAmmo(weapon ItemTag) int {
	if !weapon.IsWeapon() || !inv.Has(weapon) {
		return 0
	}
	it := ItemByTag(weapon)
	ready := inv.Count(it.AmmoTag) + inv.Count(it.WeakAmmoTag)
	if def, ok := WeaponDefByTag(weapon); ok && def.InfiniteWeakAmmo {
		ready++
	}
	return ready
}

// OnlyStartingWeapon reports whether the gunblade is the only weapon held.
func (inv *Inventory) OnlyStartingWeapon() bool {
	for w := WeapGunblade + 1; w < WeapTotal; w++ {
		if inv.Has(w) {
			return false
		}
	}
	return true
}
