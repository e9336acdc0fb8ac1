// Package testutils provides fixture rule data and equipment catalogs for
// tests. The fixtures are a compact but representative slice of the 2024
// rules: enough classes, species, and options to exercise every engine
// path without carrying the full data set.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wyrmforge/charbuild/internal/equipment"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// NewTestRepository writes the fixture rule files into a temp directory
// and returns a file repository over them
func NewTestRepository(t *testing.T) *rulebook.FileRepository {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range fixtureFiles {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return rulebook.NewFileRepository(dir)
}

// NewTestCatalog returns an equipment catalog with the weapons and armor
// the fixture equipment packages reference
func NewTestCatalog() *equipment.Catalog {
	return equipment.NewStaticCatalog(
		map[string]equipment.Weapon{
			"Greatsword": {Name: "Greatsword", Category: equipment.CategoryMartialMelee, Damage: "2d6", DamageType: "Slashing",
				Properties: []string{"Heavy", "Two-Handed"}, Mastery: "Graze", ProficiencyRequired: "Martial weapons"},
			"Longsword": {Name: "Longsword", Category: equipment.CategoryMartialMelee, Damage: "1d8", DamageType: "Slashing",
				Properties: []string{"Versatile (1d10)"}, Mastery: "Sap", ProficiencyRequired: "Martial weapons"},
			"Spear": {Name: "Spear", Category: equipment.CategorySimpleMelee, Damage: "1d6", DamageType: "Piercing",
				Properties: []string{"Thrown (range 20/60)", "Versatile (1d8)"}, Mastery: "Sap", ProficiencyRequired: "Simple weapons"},
			"Dagger": {Name: "Dagger", Category: equipment.CategorySimpleMelee, Damage: "1d4", DamageType: "Piercing",
				Properties: []string{"Finesse", "Light", "Thrown (range 20/60)"}, Mastery: "Nick", ProficiencyRequired: "Simple weapons"},
			"Shortsword": {Name: "Shortsword", Category: equipment.CategoryMartialMelee, Damage: "1d6", DamageType: "Piercing",
				Properties: []string{"Finesse", "Light"}, Mastery: "Vex", ProficiencyRequired: "Martial weapons"},
			"Longbow": {Name: "Longbow", Category: equipment.CategoryMartialRanged, Damage: "1d8", DamageType: "Piercing",
				Properties: []string{"Ammunition", "Heavy", "Two-Handed"}, Mastery: "Slow", Range: "150/600", ProficiencyRequired: "Martial weapons"},
			"Javelin": {Name: "Javelin", Category: equipment.CategorySimpleMelee, Damage: "1d6", DamageType: "Piercing",
				Properties: []string{"Thrown (range 30/120)"}, Mastery: "Slow", ProficiencyRequired: "Simple weapons"},
			"Flail": {Name: "Flail", Category: equipment.CategoryMartialMelee, Damage: "1d8", DamageType: "Bludgeoning",
				Mastery: "Sap", ProficiencyRequired: "Martial weapons"},
			"Quarterstaff": {Name: "Quarterstaff", Category: equipment.CategorySimpleMelee, Damage: "1d6", DamageType: "Bludgeoning",
				Properties: []string{"Versatile (1d8)"}, Mastery: "Topple", ProficiencyRequired: "Simple weapons"},
		},
		map[string]equipment.Armor{
			"Chain Mail": {Name: "Chain Mail", Category: equipment.ArmorCategoryHeavy, ACBase: 16,
				StrengthRequired: 13, StealthDisadvantage: true, ProficiencyRequired: "Heavy Armor"},
			"Leather Armor": {Name: "Leather Armor", Category: equipment.ArmorCategoryLight, ACBase: 11,
				ProficiencyRequired: "Light Armor"},
			"Half Plate Armor": {Name: "Half Plate Armor", Category: equipment.ArmorCategoryMedium, ACBase: 15,
				StealthDisadvantage: true, ProficiencyRequired: "Medium Armor"},
			"Shield": {Name: "Shield", Category: equipment.ArmorCategoryShield, ACBonus: 2,
				ProficiencyRequired: "Shields"},
		},
	)
}
