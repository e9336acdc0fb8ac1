package equipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeaponProperties(t *testing.T) {
	longsword := Weapon{
		Name:       "Longsword",
		Category:   CategoryMartialMelee,
		Damage:     "1d8",
		DamageType: "Slashing",
		Properties: []string{"Versatile (1d10)"},
	}

	assert.True(t, longsword.IsMelee())
	assert.False(t, longsword.IsRanged())
	assert.True(t, longsword.IsMartial())
	assert.True(t, longsword.IsVersatile())
	assert.False(t, longsword.IsTwoHanded())
	assert.Equal(t, "1d10", longsword.VersatileDamage())

	dagger := Weapon{
		Name:       "Dagger",
		Category:   CategorySimpleMelee,
		Damage:     "1d4",
		Properties: []string{"Finesse", "Light", "Thrown (range 20/60)"},
	}

	assert.True(t, dagger.IsFinesse())
	assert.True(t, dagger.IsLight())
	assert.True(t, dagger.IsThrown())
	assert.False(t, dagger.IsVersatile())
	assert.Equal(t, "", dagger.VersatileDamage())

	longbow := Weapon{
		Name:       "Longbow",
		Category:   CategoryMartialRanged,
		Damage:     "1d8",
		Properties: []string{"Ammunition", "Heavy", "Two-Handed"},
	}

	assert.True(t, longbow.IsRanged())
	assert.False(t, longbow.IsMelee())
	assert.True(t, longbow.IsTwoHanded())
}

func TestArmorDexBonus(t *testing.T) {
	leather := Armor{Name: "Leather Armor", Category: ArmorCategoryLight, ACBase: 11}
	halfPlate := Armor{Name: "Half Plate Armor", Category: ArmorCategoryMedium, ACBase: 15}
	chainMail := Armor{Name: "Chain Mail", Category: ArmorCategoryHeavy, ACBase: 16}

	assert.Equal(t, 4, leather.DexBonus(4))
	assert.Equal(t, -1, leather.DexBonus(-1))
	assert.Equal(t, 2, halfPlate.DexBonus(4))
	assert.Equal(t, 1, halfPlate.DexBonus(1))
	assert.Equal(t, 0, chainMail.DexBonus(4))
}

func TestArmorIsShield(t *testing.T) {
	shield := Armor{Name: "Shield", Category: ArmorCategoryShield, ACBonus: 2}
	assert.True(t, shield.IsShield())
	assert.False(t, shield.IsHeavy())

	plate := Armor{Name: "Plate Armor", Category: ArmorCategoryHeavy, ACBase: 18}
	assert.False(t, plate.IsShield())
}

func TestInventoryStacking(t *testing.T) {
	var inv Inventory

	inv.AddWeapon("Dagger", 1)
	inv.AddWeapon("Dagger", 2)
	inv.AddWeapon("Longsword", 0)

	require.Len(t, inv.Weapons, 2)
	assert.Equal(t, Item{Name: "Dagger", Quantity: 3}, inv.Weapons[0])
	assert.Equal(t, Item{Name: "Longsword", Quantity: 1}, inv.Weapons[1])
}

func TestInventoryRemove(t *testing.T) {
	var inv Inventory
	inv.AddWeapon("Dagger", 3)

	assert.True(t, inv.RemoveWeapon("Dagger", 2))
	require.Len(t, inv.Weapons, 1)
	assert.Equal(t, 1, inv.Weapons[0].Quantity)

	assert.True(t, inv.RemoveWeapon("Dagger", 1))
	assert.Empty(t, inv.Weapons)

	assert.False(t, inv.RemoveWeapon("Dagger", 1))
}

func TestInventoryShields(t *testing.T) {
	var inv Inventory
	assert.False(t, inv.HasShield())

	inv.AddShield("Shield", 1)
	assert.True(t, inv.HasShield())

	assert.True(t, inv.RemoveShield("Shield", 1))
	assert.False(t, inv.HasShield())
}

func TestStaticCatalog(t *testing.T) {
	catalog := NewStaticCatalog(
		map[string]Weapon{"Spear": {Name: "Spear", Category: CategorySimpleMelee, Damage: "1d6"}},
		map[string]Armor{"Shield": {Name: "Shield", Category: ArmorCategoryShield, ACBonus: 2}},
	)

	spear, ok := catalog.Weapon("Spear")
	require.True(t, ok)
	assert.Equal(t, "1d6", spear.Damage)

	_, ok = catalog.Weapon("Glaive")
	assert.False(t, ok)

	shield, ok := catalog.Armor("Shield")
	require.True(t, ok)
	assert.Equal(t, 2, shield.ACBonus)
}
