package model

// ItemType classifies pickups.
type ItemType uint8

const (
	ItemTypeNone ItemType = iota
	ItemTypeWeapon
	ItemTypeAmmo
	ItemTypeHealth
	ItemTypeArmor
	ItemTypePowerup
	ItemTypeFlag
)

// String returns human-readable item type name
func (t ItemType) String() string {
	switch t {
	case ItemTypeWeapon:
		return "weapon"
	case ItemTypeAmmo:
		return "ammo"
	case ItemTypeHealth:
		return "health"
	case ItemTypeArmor:
		return "armor"
	case ItemTypePowerup:
		return "powerup"
	case ItemTypeFlag:
		return "flag"
	default:
		return "none"
	}
}

// ItemTag identifies an item kind and indexes Inventory.
// Weapon tags double as weapon numbers.
type ItemTag int

const (
	ItemNone ItemTag = iota

	WeapGunblade
	WeapMachinegun
	WeapRiotgun
	WeapGrenadeLauncher
	WeapRocketLauncher
	WeapPlasmagun
	WeapLasergun
	WeapElectrobolt
	WeapInstagun
	WeapTotal
)

// Strong ammo, weak ammo, armor, health, powerups and flags follow the weapons.
const (
	AmmoGunblade ItemTag = WeapTotal + iota
	AmmoBullets
	AmmoShells
	AmmoGrenades
	AmmoRockets
	AmmoPlasma
	AmmoLasers
	AmmoBolts
	AmmoInstas

	AmmoWeakGunblade
	AmmoWeakBullets
	AmmoWeakShells
	AmmoWeakGrenades
	AmmoWeakRockets
	AmmoWeakPlasma
	AmmoWeakLasers
	AmmoWeakBolts
	AmmoWeakInstas

	ArmorShard
	ArmorGA
	ArmorYA
	ArmorRA

	HealthSmall
	HealthMedium
	HealthLarge
	HealthMega
	HealthUltra

	PowerupQuad
	PowerupShell
	PowerupRegen

	FlagAlpha
	FlagBeta

	ItemTagTotal
)

// Item is a static item definition.
type Item struct {
	Tag          ItemTag
	Type         ItemType
	Name         string
	AmmoTag      ItemTag // weapons: strong ammo tag
	WeakAmmoTag  ItemTag // weapons: weak ammo tag
	InventoryMax int
	Pickable     bool
}

// IsWeapon reports whether tag is a weapon tag.
func (t ItemTag) IsWeapon() bool {
	return t >= WeapGunblade && t < WeapTotal
}

// String returns the item name, or "none" for unknown tags.
func (t ItemTag) String() string {
	if it := ItemByTag(t); it != nil {
		return it.Name
	}
	return "none"
}

var itemDefs [ItemTagTotal]*Item

func init() {
	weapons := []struct {
		tag, ammo, weak ItemTag
		name            string
	}{
		{WeapGunblade, AmmoGunblade, AmmoWeakGunblade, "Gunblade"},
		{WeapMachinegun, AmmoBullets, AmmoWeakBullets, "Machinegun"},
		{WeapRiotgun, AmmoShells, AmmoWeakShells, "Riotgun"},
		{WeapGrenadeLauncher, AmmoGrenades, AmmoWeakGrenades, "Grenade Launcher"},
		{WeapRocketLauncher, AmmoRockets, AmmoWeakRockets, "Rocket Launcher"},
		{WeapPlasmagun, AmmoPlasma, AmmoWeakPlasma, "Plasmagun"},
		{WeapLasergun, AmmoLasers, AmmoWeakLasers, "Lasergun"},
		{WeapElectrobolt, AmmoBolts, AmmoWeakBolts, "Electrobolt"},
		{WeapInstagun, AmmoInstas, AmmoWeakInstas, "Instagun"},
	}
	for _, w := range weapons {
		register(&Item{Tag: w.tag, Type: ItemTypeWeapon, Name: w.name, AmmoTag: w.ammo, WeakAmmoTag: w.weak, InventoryMax: 1, Pickable: true})
	}

	ammo := []struct {
		tag, weak ItemTag
		name      string
		max       int
	}{
		{AmmoGunblade, AmmoWeakGunblade, "Cells", 10},
		{AmmoBullets, AmmoWeakBullets, "Bullets", 150},
		{AmmoShells, AmmoWeakShells, "Shells", 20},
		{AmmoGrenades, AmmoWeakGrenades, "Grenades", 20},
		{AmmoRockets, AmmoWeakRockets, "Rockets", 20},
		{AmmoPlasma, AmmoWeakPlasma, "Plasma", 150},
		{AmmoLasers, AmmoWeakLasers, "Lasers", 150},
		{AmmoBolts, AmmoWeakBolts, "Bolts", 10},
		{AmmoInstas, AmmoWeakInstas, "Instas", 5},
	}
	for _, a := range ammo {
		register(&Item{Tag: a.tag, Type: ItemTypeAmmo, Name: a.name, InventoryMax: a.max, Pickable: true})
		register(&Item{Tag: a.weak, Type: ItemTypeAmmo, Name: "Weak " + a.name, InventoryMax: a.max, Pickable: true})
	}

	register(&Item{Tag: ArmorShard, Type: ItemTypeArmor, Name: "Armor Shard", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: ArmorGA, Type: ItemTypeArmor, Name: "Green Armor", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: ArmorYA, Type: ItemTypeArmor, Name: "Yellow Armor", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: ArmorRA, Type: ItemTypeArmor, Name: "Red Armor", InventoryMax: 1, Pickable: true})

	register(&Item{Tag: HealthSmall, Type: ItemTypeHealth, Name: "5 Health", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: HealthMedium, Type: ItemTypeHealth, Name: "25 Health", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: HealthLarge, Type: ItemTypeHealth, Name: "50 Health", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: HealthMega, Type: ItemTypeHealth, Name: "Mega Health", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: HealthUltra, Type: ItemTypeHealth, Name: "Ultra Health", InventoryMax: 1, Pickable: true})

	register(&Item{Tag: PowerupQuad, Type: ItemTypePowerup, Name: "Quad Damage", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: PowerupShell, Type: ItemTypePowerup, Name: "Warshell", InventoryMax: 1, Pickable: true})
	register(&Item{Tag: PowerupRegen, Type: ItemTypePowerup, Name: "Regeneration", InventoryMax: 1, Pickable: true})

	// Flags are carried, not picked into inventory.
	register(&Item{Tag: FlagAlpha, Type: ItemTypeFlag, Name: "Alpha Flag", InventoryMax: 1})
	register(&Item{Tag: FlagBeta, Type: ItemTypeFlag, Name: "Beta Flag", InventoryMax: 1})
}

func register(it *Item) {
	itemDefs[it.Tag] = it
}

// ItemByTag returns the static definition for tag, or nil if unknown.
func ItemByTag(tag ItemTag) *Item {
	if tag <= ItemNone || tag >= ItemTagTotal {
		return nil
	}
	return itemDefs[tag]
}

// ItemByName looks up an item definition by its display name.
func ItemByName(name string) *Item {
	for _, it := range itemDefs {
		if it != nil && it.Name == name {
			return it
		}
	}
	return nil
}
