package stats

import (
	"strconv"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/dice"
	"github.com/wyrmforge/charbuild/internal/equipment"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// AttackLine is one attack row on the sheet. Versatile, thrown, and
// off-hand uses of a weapon each get their own line.
type AttackLine struct {
	Weapon      string  `json:"weapon"`
	Label       string  `json:"label"`
	AttackBonus int     `json:"attack_bonus"`
	Damage      string  `json:"damage"`
	DamageType  string  `json:"damage_type,omitempty"`
	Average     float64 `json:"average"`
	Mastery     string  `json:"mastery,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// AttackCombination pairs a mainhand and an offhand attack while dual
// wielding two Light weapons
type AttackCombination struct {
	Name     string     `json:"name"`
	Mainhand AttackLine `json:"mainhand"`
	Offhand  AttackLine `json:"offhand"`
	Note     string     `json:"note,omitempty"`
}

// fightingStyles is the combat-effect summary the attack rows depend on
type fightingStyles struct {
	archery      int
	dueling      int
	thrown       int
	attackBonus  int
	damageBonus  int
	greatWeapon  bool
	twoWeapon    bool
	unarmedStyle bool
}

// Attacks derives every attack line the inventory supports. Holding two
// or more Light weapons automatically adds off-hand lines for the light
// ones.
func Attacks(s *character.State, catalog *equipment.Catalog) []AttackLine {
	strMod := s.Abilities.Mod(character.AbilityStrength)
	dexMod := s.Abilities.Mod(character.AbilityDexterity)
	pb := ProficiencyBonus(s.Level)
	styles := collectStyles(s)

	var weapons []equipment.Weapon
	lightCount := 0
	for _, owned := range s.Inventory().Weapons {
		weapon, known := catalog.Weapon(owned.Name)
		if !known {
			continue
		}
		weapons = append(weapons, weapon)
		if weapon.IsLight() {
			quantity := owned.Quantity
			if quantity < 1 {
				quantity = 1
			}
			lightCount += quantity
		}
	}
	dualWielding := lightCount >= 2

	var lines []AttackLine
	for _, weapon := range weapons {
		lines = append(lines, weaponLines(s, weapon, styles, strMod, dexMod, pb, dualWielding)...)
	}
	lines = append(lines, unarmedLine(s, styles, strMod, pb))
	return lines
}

// AttackCombinations lists every {mainhand, offhand} pairing of the held
// Light weapons, distinct from the flat attack list. Empty unless at
// least two Light weapons are carried.
func AttackCombinations(s *character.State, catalog *equipment.Catalog) []AttackCombination {
	strMod := s.Abilities.Mod(character.AbilityStrength)
	dexMod := s.Abilities.Mod(character.AbilityDexterity)
	pb := ProficiencyBonus(s.Level)
	styles := collectStyles(s)

	var held []equipment.Weapon
	for _, owned := range s.Inventory().Weapons {
		weapon, known := catalog.Weapon(owned.Name)
		if !known || !weapon.IsLight() {
			continue
		}
		quantity := owned.Quantity
		if quantity < 1 {
			quantity = 1
		}
		for i := 0; i < quantity; i++ {
			held = append(held, weapon)
		}
	}
	if len(held) < 2 {
		return nil
	}

	note := ""
	if styles.dueling > 0 {
		note = "Dueling does not apply while dual wielding"
	}

	var combos []AttackCombination
	for i, mainhand := range held {
		for _, offhand := range held[i+1:] {
			combos = append(combos, AttackCombination{
				Name:     mainhand.Name + " & " + offhand.Name,
				Mainhand: mainhandLine(s, mainhand, styles, strMod, dexMod, pb),
				Offhand:  offhandLine(s, offhand, styles, strMod, dexMod, pb),
				Note:     note,
			})
		}
	}
	return combos
}

// attackBonusFor computes the to-hit bonus for one weapon
func attackBonusFor(s *character.State, weapon equipment.Weapon, styles fightingStyles, abilityMod, pb int) int {
	attack := abilityMod + styles.attackBonus
	if weaponProficient(s, weapon) {
		attack += pb
	}
	if weapon.IsRanged() {
		attack += styles.archery
	}
	return attack
}

// masteryFor returns the weapon's mastery property when the character has
// selected it
func masteryFor(s *character.State, weapon equipment.Weapon) string {
	for _, selected := range s.WeaponMasteries.Selected {
		if strings.EqualFold(selected, weapon.Name) {
			return weapon.Mastery
		}
	}
	return ""
}

// mainhandLine builds the mainhand half of a dual-wield pairing: the
// weapon's regular line without Dueling, which never applies while a
// second weapon is in use
func mainhandLine(s *character.State, weapon equipment.Weapon, styles fightingStyles, strMod, dexMod, pb int) AttackLine {
	abilityMod := attackAbility(weapon, strMod, dexMod)
	damageBonus := abilityMod + styles.damageBonus
	return AttackLine{
		Weapon:      weapon.Name,
		Label:       weapon.Name,
		AttackBonus: attackBonusFor(s, weapon, styles, abilityMod, pb),
		Damage:      formatDamage(weapon.Damage, damageBonus),
		DamageType:  weapon.DamageType,
		Average:     dice.Average(weapon.Damage, damageBonus, dice.AverageOptions{}),
		Mastery:     masteryFor(s, weapon),
	}
}

// offhandLine builds the off-hand use of a Light weapon: no ability
// modifier on damage unless the Two-Weapon Fighting style adds it back; a
// negative modifier always applies
func offhandLine(s *character.State, weapon equipment.Weapon, styles fightingStyles, strMod, dexMod, pb int) AttackLine {
	abilityMod := attackAbility(weapon, strMod, dexMod)
	offhandBonus := styles.damageBonus
	if styles.twoWeapon || abilityMod < 0 {
		offhandBonus += abilityMod
	}
	return AttackLine{
		Weapon:      weapon.Name,
		Label:       weapon.Name + " (Off-Hand)",
		AttackBonus: attackBonusFor(s, weapon, styles, abilityMod, pb),
		Damage:      formatDamage(weapon.Damage, offhandBonus),
		DamageType:  weapon.DamageType,
		Average:     dice.Average(weapon.Damage, offhandBonus, dice.AverageOptions{}),
		Mastery:     masteryFor(s, weapon),
	}
}

// weaponLines builds the main, versatile, thrown, and off-hand rows for
// one weapon
func weaponLines(s *character.State, weapon equipment.Weapon, styles fightingStyles, strMod, dexMod, pb int, dualWielding bool) []AttackLine {
	abilityMod := attackAbility(weapon, strMod, dexMod)
	attack := attackBonusFor(s, weapon, styles, abilityMod, pb)
	mastery := masteryFor(s, weapon)

	var lines []AttackLine

	// Main line. Dueling needs a one-handed melee weapon and no second
	// weapon in use.
	damageBonus := abilityMod + styles.damageBonus
	if weapon.IsMelee() && !weapon.IsTwoHanded() && !dualWielding {
		damageBonus += styles.dueling
	}
	gwf := styles.greatWeapon && weapon.IsMelee() && weapon.IsTwoHanded()
	lines = append(lines, AttackLine{
		Weapon:      weapon.Name,
		Label:       weapon.Name,
		AttackBonus: attack,
		Damage:      formatDamage(weapon.Damage, damageBonus),
		DamageType:  weapon.DamageType,
		Average:     dice.Average(weapon.Damage, damageBonus, dice.AverageOptions{RerollLow: gwf}),
		Mastery:     mastery,
	})

	// Versatile weapons get a two-handed line: no Dueling, but Great
	// Weapon Fighting applies.
	if twoHanded := weapon.VersatileDamage(); twoHanded != "" {
		versatileBonus := abilityMod + styles.damageBonus
		lines = append(lines, AttackLine{
			Weapon:      weapon.Name,
			Label:       weapon.Name + " (Two-Handed)",
			AttackBonus: attack,
			Damage:      formatDamage(twoHanded, versatileBonus),
			DamageType:  weapon.DamageType,
			Average:     dice.Average(twoHanded, versatileBonus, dice.AverageOptions{RerollLow: styles.greatWeapon && weapon.IsMelee()}),
			Mastery:     mastery,
		})
	}

	// Thrown melee weapons get a throw line; the Thrown Weapon Fighting
	// bonus lands here and only here.
	if weapon.IsMelee() && weapon.IsThrown() {
		thrownBonus := abilityMod + styles.damageBonus + styles.thrown
		lines = append(lines, AttackLine{
			Weapon:      weapon.Name,
			Label:       weapon.Name + " (Thrown)",
			AttackBonus: attack,
			Damage:      formatDamage(weapon.Damage, thrownBonus),
			DamageType:  weapon.DamageType,
			Average:     dice.Average(weapon.Damage, thrownBonus, dice.AverageOptions{}),
			Mastery:     mastery,
		})
	}

	// Off-hand line while dual wielding
	if dualWielding && weapon.IsLight() {
		lines = append(lines, offhandLine(s, weapon, styles, strMod, dexMod, pb))
	}

	return lines
}

// unarmedLine builds the Unarmed Strike row
func unarmedLine(s *character.State, styles fightingStyles, strMod, pb int) AttackLine {
	attack := strMod + pb + styles.attackBonus

	if styles.unarmedStyle {
		damageBonus := strMod + styles.damageBonus
		return AttackLine{
			Weapon:      "Unarmed Strike",
			Label:       "Unarmed Strike",
			AttackBonus: attack,
			Damage:      formatDamage("1d6", damageBonus),
			DamageType:  "Bludgeoning",
			Average:     dice.Average("1d6", damageBonus, dice.AverageOptions{}),
			Note:        "1d8 when you aren't holding any weapons or a Shield; 1d4 to a creature you have Grappled",
		}
	}

	flat := 1 + strMod + styles.damageBonus
	if flat < 1 {
		flat = 1
	}
	return AttackLine{
		Weapon:      "Unarmed Strike",
		Label:       "Unarmed Strike",
		AttackBonus: attack,
		Damage:      strconv.Itoa(flat),
		DamageType:  "Bludgeoning",
		Average:     float64(flat),
	}
}

// attackAbility picks the governing modifier: Dexterity for ranged
// weapons, the better of Strength and Dexterity for Finesse, Strength
// otherwise.
func attackAbility(weapon equipment.Weapon, strMod, dexMod int) int {
	if weapon.IsRanged() {
		return dexMod
	}
	if weapon.IsFinesse() && dexMod > strMod {
		return dexMod
	}
	return strMod
}

// collectStyles reduces the combat effects to the flags and bonuses the
// attack math needs
func collectStyles(s *character.State) fightingStyles {
	var styles fightingStyles

	for _, applied := range s.Effects {
		effect := applied.Effect
		switch effect.Type {
		case rulebook.EffectBonusAttack:
			if strings.EqualFold(effect.WeaponProperty, "Ranged") {
				styles.archery += effect.FlatValue()
			} else {
				styles.attackBonus += effect.FlatValue()
			}

		case rulebook.EffectBonusDamage:
			condition := strings.ToLower(effect.Condition)
			switch {
			case strings.Contains(condition, "thrown"):
				styles.thrown += effect.FlatValue()
			case strings.Contains(condition, "one handed"):
				styles.dueling += effect.FlatValue()
			default:
				styles.damageBonus += effect.FlatValue()
			}

		case rulebook.EffectGreatWeaponFighting:
			styles.greatWeapon = true

		case rulebook.EffectTwoWeaponFighting:
			styles.twoWeapon = true

		case rulebook.EffectUnarmedFighting:
			styles.unarmedStyle = true
		}
	}
	return styles
}

// weaponProficient resolves the weapon against the character's weapon
// proficiencies: exact name, category, or a property-scoped entry like
// "Martial weapons with the Finesse or Light property".
func weaponProficient(s *character.State, weapon equipment.Weapon) bool {
	for _, prof := range s.Proficiencies.Weapons {
		if strings.EqualFold(prof, weapon.Name) || strings.EqualFold(prof, weapon.ProficiencyRequired) {
			return true
		}
		lower := strings.ToLower(prof)
		if weapon.IsMartial() && strings.Contains(lower, "martial") {
			if strings.Contains(lower, "finesse") && weapon.IsFinesse() {
				return true
			}
			if strings.Contains(lower, "light") && weapon.IsLight() {
				return true
			}
		}
	}
	return false
}

// formatDamage renders a damage expression with its flat bonus
func formatDamage(damage string, bonus int) string {
	switch {
	case bonus > 0:
		return damage + " + " + strconv.Itoa(bonus)
	case bonus < 0:
		return damage + " - " + strconv.Itoa(-bonus)
	default:
		return damage
	}
}
