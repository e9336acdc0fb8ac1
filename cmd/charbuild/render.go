package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/equipment"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/stats"
)

func signed(n int) string {
	if n >= 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// printSheet renders the full derived sheet to stdout
func printSheet(ctx context.Context, rules rulebook.Repository, catalog *equipment.Catalog, s *character.State) {
	fmt.Println()
	title := s.Name
	if title == "" {
		title = "Unnamed character"
	}
	fmt.Println(title)

	identity := s.Species
	if s.Lineage != "" {
		identity = s.Lineage
	}
	if s.Class != "" {
		identity = fmt.Sprintf("%s %s %d", identity, s.Class, s.Level)
		if s.Subclass != "" {
			identity += " (" + s.Subclass + ")"
		}
	}
	if s.Background != "" {
		identity += ", " + s.Background
	}
	fmt.Println(identity)
	fmt.Println(strings.Repeat("-", len(identity)))

	fmt.Printf("Proficiency bonus %s   Speed %d ft", signed(stats.ProficiencyBonus(s.Level)), s.Speed)
	if s.Darkvision > 0 {
		fmt.Printf("   Darkvision %d ft", s.Darkvision)
	}
	fmt.Println()

	if s.Class != "" {
		if class, err := rules.Class(ctx, s.Class); err == nil {
			hp := stats.HitPointsBreakdown(s, class.HitDie)
			fmt.Printf("Hit points %d (d%d: base %d, Con %s", hp.Total, class.HitDie, hp.Base, signed(hp.Constitution))
			for _, line := range hp.Features {
				fmt.Printf(", %s %s", line.Source, signed(line.Amount))
			}
			fmt.Println(")")
		}
	}

	fmt.Println("\nAbilities")
	for _, line := range stats.Abilities(s) {
		marker := " "
		if line.SaveProficient {
			marker = "*"
		}
		fmt.Printf("  %-13s %2d (%s)  save %s%s\n",
			capitalize(line.Name), line.Score, signed(line.Modifier), signed(line.Save), marker)
	}

	fmt.Println("\nSkills")
	for _, line := range stats.Skills(s) {
		if !line.Proficient && line.BonusSource == "" {
			continue
		}
		note := ""
		if line.Expertise {
			note = " (expertise)"
		}
		if line.BonusSource != "" {
			note += " (" + line.BonusSource + ")"
		}
		fmt.Printf("  %-16s %s%s\n", line.Name, signed(line.Modifier), note)
	}

	options := stats.ArmorClass(s, catalog)
	if len(options) > 0 {
		fmt.Println("\nArmor class")
		for _, option := range options {
			note := ""
			if len(option.Warnings) > 0 {
				note = "  [" + strings.Join(option.Warnings, "; ") + "]"
			}
			fmt.Printf("  %2d  %s%s\n", option.AC, option.Label, note)
		}
	}

	attacks := stats.Attacks(s, catalog)
	if len(attacks) > 0 {
		fmt.Println("\nAttacks")
		for _, attack := range attacks {
			mastery := ""
			if attack.Mastery != "" {
				mastery = "  [" + attack.Mastery + "]"
			}
			fmt.Printf("  %-26s %s to hit, %s %s (avg %.1f)%s\n",
				attack.Label, signed(attack.AttackBonus), attack.Damage,
				attack.DamageType, attack.Average, mastery)
			if attack.Note != "" {
				fmt.Printf("      %s\n", attack.Note)
			}
		}
	}

	if combos := stats.AttackCombinations(s, catalog); len(combos) > 0 {
		fmt.Println("\nDual wield")
		for _, combo := range combos {
			fmt.Printf("  %s\n", combo.Name)
			fmt.Printf("    mainhand %s to hit, %s (avg %.1f)\n",
				signed(combo.Mainhand.AttackBonus), combo.Mainhand.Damage, combo.Mainhand.Average)
			fmt.Printf("    offhand  %s to hit, %s (avg %.1f)\n",
				signed(combo.Offhand.AttackBonus), combo.Offhand.Damage, combo.Offhand.Average)
			if combo.Note != "" {
				fmt.Printf("    %s\n", combo.Note)
			}
		}
	}

	printSpells(s)

	if features := s.Features.All(); len(features) > 0 {
		fmt.Println("\nFeatures")
		for _, feature := range features {
			fmt.Printf("  %s (%s)\n", feature.Name, feature.Source)
		}
	}

	if inv := s.Inventory(); len(inv.Weapons)+len(inv.Armor)+len(inv.Shields)+len(inv.Other) > 0 || inv.Gold > 0 {
		fmt.Println("\nEquipment")
		for _, group := range [][]equipment.Item{inv.Weapons, inv.Armor, inv.Shields, inv.Other} {
			for _, item := range group {
				if item.Quantity > 1 {
					fmt.Printf("  %s x%d\n", item.Name, item.Quantity)
				} else {
					fmt.Printf("  %s\n", item.Name)
				}
			}
		}
		if inv.Gold > 0 {
			fmt.Printf("  %d gp\n", inv.Gold)
		}
	}
}

func printSpells(s *character.State) {
	sections := []struct {
		title string
		book  map[string]character.SpellMeta
	}{
		{"Cantrips", s.Spells.Cantrips},
		{"Always prepared", s.Spells.AlwaysPrepared},
		{"Prepared", s.Spells.Prepared},
		{"Known", s.Spells.Known},
	}

	for _, section := range sections {
		if len(section.book) == 0 {
			continue
		}
		names := make([]string, 0, len(section.book))
		for name := range section.book {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("\n%s\n", section.title)
		for _, name := range names {
			meta := section.book[name]
			note := ""
			if meta.Source != "" {
				note = " (" + meta.Source + ")"
			}
			if meta.OncePerDay {
				note += " [1/day]"
			}
			fmt.Printf("  %s%s\n", name, note)
		}
	}
}

func printPendingChoices(pending []rulebook.Choice) {
	if len(pending) == 0 {
		return
	}
	fmt.Println("\nPending choices")
	for _, choice := range pending {
		count := ""
		if choice.Count > 1 {
			count = fmt.Sprintf(" (pick %d)", choice.Count)
		}
		fmt.Printf("  %s%s\n", choice.Title, count)
		if len(choice.Options) > 0 {
			fmt.Printf("      options: %s\n", strings.Join(choice.Options, ", "))
		}
	}
}
