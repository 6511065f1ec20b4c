package ai

import "github.com/udisondev/fragbots/internal/model"

var topTierWeapons = []model.ItemTag{
	model.WeapElectrobolt,
	model.WeapLasergun,
	model.WeapRocketLauncher,
	model.WeapPlasmagun,
}

// weaponClassFactor scales ammo-driven weights by how much the weapon matters.
func weaponClassFactor(weapon model.ItemTag) float64 {
	switch weapon {
	case model.WeapElectrobolt, model.WeapRocketLauncher:
		return 1.0
	case model.WeapLasergun, model.WeapPlasmagun:
		return 1.1
	default:
		return 0.5
	}
}

// ItemWeight returns how desirable item is for a bot with inventory and status.
// Zero means the item is useless right now.
func ItemWeight(item *model.Item, inv *model.Inventory, status model.Status) float64 {
	if item == nil {
		return 0
	}
	switch item.Type {
	case model.ItemTypeWeapon:
		return weaponWeight(item, inv)
	case model.ItemTypeAmmo:
		return ammoWeight(item, inv)
	case model.ItemTypeHealth:
		return healthWeight(item, status)
	case model.ItemTypeArmor:
		return armorWeight(item, status)
	case model.ItemTypePowerup:
		return 3.5
	default:
		return 0
	}
}

func weaponWeight(item *model.Item, inv *model.Inventory) float64 {
	if inv.Has(item.Tag) {
		ammo := model.ItemByTag(item.AmmoTag)
		if ammo == nil || ammo.InventoryMax <= 0 {
			return 0
		}
		have := inv.Count(item.AmmoTag)
		if have >= ammo.InventoryMax {
			return 0
		}
		quantity := 1 - float64(have)/float64(ammo.InventoryMax)
		return quantity * weaponClassFactor(item.Tag)
	}

	onlyStarting := inv.OnlyStartingWeapon()
	greed := 0
	isTopTier := false
	for _, w := range topTierWeapons {
		if !inv.Has(w) {
			greed++
		}
		if w == item.Tag {
			isTopTier = true
		}
	}
	if isTopTier {
		base := 0.9
		if onlyStarting {
			base = 1.5
		}
		return base + float64(greed-1)/3
	}
	if onlyStarting {
		return 1.5
	}
	return 0.7
}

func ammoWeight(item *model.Item, inv *model.Inventory) float64 {
	if item.InventoryMax <= 0 {
		return 0
	}
	have := inv.Count(item.Tag)
	if have >= item.InventoryMax {
		return 0
	}
	quantity := 1 - float64(have)/float64(item.InventoryMax)

	weapon := ammoOwner(item.Tag)
	if weapon != model.ItemNone && inv.Has(weapon) {
		return quantity * weaponClassFactor(weapon)
	}
	return 0.33 * quantity
}

// ammoOwner returns the weapon firing ammo, strong or weak.
func ammoOwner(ammo model.ItemTag) model.ItemTag {
	for w := model.WeapGunblade; w < model.WeapTotal; w++ {
		it := model.ItemByTag(w)
		if it != nil && (it.AmmoTag == ammo || it.WeakAmmoTag == ammo) {
			return w
		}
	}
	return model.ItemNone
}

func healthWeight(item *model.Item, status model.Status) float64 {
	if item.Tag == model.HealthMega || item.Tag == model.HealthUltra {
		return 2.5
	}
	missing := 0.0
	if status.MaxHealth > 0 {
		missing = 1 - status.Health/status.MaxHealth
	}
	if item.Tag == model.HealthSmall {
		return 0.2 + 0.3*max(0, missing)
	}
	return max(0, missing)
}

func armorWeight(item *model.Item, status model.Status) float64 {
	armor := status.Armor
	switch item.Tag {
	case model.ArmorRA:
		if armor < 150 {
			return 2.0
		}
	case model.ArmorYA:
		if armor < 125 {
			return 1.7
		}
	case model.ArmorGA:
		if armor < 100 {
			return 1.4
		}
	case model.ArmorShard:
		if armor < 25 || armor >= 150 {
			return 0.4
		}
		return 0.25
	}
	return 0
}
