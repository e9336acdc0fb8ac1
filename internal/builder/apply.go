package builder

import (
	"context"
	"strconv"
	"strings"

	"github.com/wyrmforge/charbuild/internal/character"
	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

// applySpecies loads the species record and applies its base traits
func (b *Builder) applySpecies(ctx context.Context, name string) error {
	record, err := b.repo.Species(ctx, name)
	if err != nil {
		return err
	}
	b.species = record

	s := b.state
	s.Species = name
	if record.Speed > 0 {
		s.Speed = record.Speed
	}
	if record.Darkvision > 0 {
		s.Darkvision = record.Darkvision
	}
	s.Size = record.Size
	s.CreatureType = record.CreatureType
	for _, lang := range record.Languages {
		s.AddProficiency(character.ProficiencyLanguages, lang, name)
	}

	b.applyTraits(ctx, record.Traits, sourceSpecies)

	if len(record.Lineages) > 0 {
		s.Step = character.StepLineage
	} else {
		s.Step = character.StepClass
	}
	return nil
}

// applyLineage loads a lineage record and applies its traits over the
// parent species
func (b *Builder) applyLineage(ctx context.Context, name string) error {
	if b.state.Species == "" {
		return cberr.InvalidArgumentf("species must be selected before a lineage")
	}
	record, err := b.repo.Lineage(ctx, name)
	if err != nil {
		return err
	}
	b.lineage = record

	s := b.state
	s.Lineage = name
	if record.Speed > 0 {
		s.Speed = record.Speed
	}
	if record.Darkvision > 0 && record.Darkvision > s.Darkvision {
		s.Darkvision = record.Darkvision
	}
	if ability := asString(s.Choices[ChoiceCastingAbility]); ability != "" {
		s.SpellcastingAbility = ability
	}

	b.applyTraits(ctx, record.Traits, sourceLineage)

	s.Step = character.StepClass
	return nil
}

// applyClass loads the class record and applies proficiencies and features
// through the current level
func (b *Builder) applyClass(ctx context.Context, name string) error {
	record, err := b.repo.Class(ctx, name)
	if err != nil {
		return err
	}
	b.class = record

	s := b.state
	s.Class = name
	if s.Level < 1 {
		s.Level = 1
	}

	for _, save := range record.SavingThrowProficiencies {
		s.AddProficiency(character.ProficiencySavingThrows, save, name)
	}
	for _, prof := range record.ArmorProficiencies {
		s.AddProficiency(character.ProficiencyArmor, prof, name)
	}
	for _, prof := range record.WeaponProficiencies {
		s.AddProficiency(character.ProficiencyWeapons, prof, name)
	}

	for _, levelKey := range record.FeaturesThroughLevel(s.Level) {
		features := record.FeaturesByLevel[levelKey]
		featLevel, _ := strconv.Atoi(levelKey)
		features.Range(func(featureName string, data rulebook.FeatureData) bool {
			b.applyFeature(ctx, featureName, data, sourceClass, featLevel)
			return true
		})
	}

	s.WeaponMasteries.MaxCount = masteryCap(record.WeaponMasterySlots, s.Level)

	subclassLevel := record.SubclassSelectionLevel
	if subclassLevel == 0 {
		subclassLevel = 3
	}
	if s.Level >= subclassLevel {
		s.Step = character.StepSubclass
	} else {
		s.Step = character.StepBackground
	}
	return nil
}

// masteryCap resolves the weapon-mastery slot count for a level from the
// class's level-keyed slot table
func masteryCap(slots map[string]int, level int) int {
	count := 0
	best := 0
	for key, n := range slots {
		minLevel, err := strconv.Atoi(key)
		if err != nil || minLevel > level {
			continue
		}
		if minLevel >= best {
			best = minLevel
			count = n
		}
	}
	return count
}

// applySubclass loads the subclass record and applies its features through
// the current level
func (b *Builder) applySubclass(ctx context.Context, name string) error {
	if b.state.Class == "" {
		return cberr.InvalidArgumentf("class must be selected before a subclass")
	}
	record, err := b.repo.Subclass(ctx, b.state.Class, name)
	if err != nil {
		return err
	}
	b.subclass = record

	s := b.state
	s.Subclass = name

	for _, levelKey := range record.FeaturesThroughLevel(s.Level) {
		features := record.FeaturesByLevel[levelKey]
		featLevel, _ := strconv.Atoi(levelKey)
		features.Range(func(featureName string, data rulebook.FeatureData) bool {
			b.applyFeature(ctx, featureName, data, sourceSubclass, featLevel)
			return true
		})
	}

	s.Step = character.StepBackground
	return nil
}

// applyBackground loads the background record and applies its grants
func (b *Builder) applyBackground(ctx context.Context, name string) error {
	record, err := b.repo.Background(ctx, name)
	if err != nil {
		return err
	}
	b.background = record

	s := b.state
	s.Background = name

	for _, skill := range record.SkillProficiencies {
		s.AddProficiency(character.ProficiencySkills, skill, name)
	}
	for _, tool := range record.ToolProficiencies {
		s.AddProficiency(character.ProficiencyTools, tool, name)
	}
	if record.Languages != nil {
		for _, lang := range record.Languages.Fixed {
			s.AddProficiency(character.ProficiencyLanguages, lang, name)
		}
		if record.Languages.Picks > 0 {
			s.Choices["language_choices_needed"] = record.Languages.Picks
		}
	}

	record.Features.Range(func(featureName string, data rulebook.FeatureData) bool {
		for _, existing := range s.Features.Background {
			if existing.Name == featureName {
				return true
			}
		}
		s.Features.Background = append(s.Features.Background, character.Feature{
			Name:        featureName,
			Description: data.Description,
			Source:      name,
		})
		return true
	})

	if record.Feat != "" {
		exists := false
		for _, existing := range s.Features.Feats {
			if existing.Name == record.Feat {
				exists = true
				break
			}
		}
		if !exists {
			s.Features.Feats = append(s.Features.Feats, character.Feature{
				Name:        record.Feat,
				Description: "Feat granted by " + name + " background.",
				Source:      name,
			})
		}
	}

	s.Step = character.StepAbilities
	return nil
}

// applyAbilities assigns base ability scores
func (b *Builder) applyAbilities(scores map[string]int) {
	b.state.Abilities.Base = scores
	b.state.Step = character.StepComplete
}

// processEquipmentSelections resolves starting-equipment package picks into
// inventory items
func (b *Builder) processEquipmentSelections(selections map[string]any) {
	classChoice := asString(selections["class_equipment"])
	if classChoice != "" && b.class != nil && b.class.StartingEquipment != nil {
		if option, ok := b.class.StartingEquipment.Get(classChoice); ok {
			b.addEquipmentOption(option)
		}
	}

	backgroundChoice := asString(selections["background_equipment"])
	if backgroundChoice != "" && b.background != nil && b.background.StartingEquipment != nil {
		if option, ok := b.background.StartingEquipment.Get(backgroundChoice); ok {
			b.addEquipmentOption(option)
		}
	}
}

// addEquipmentOption adds one starting-equipment package to the inventory,
// classifying items through the catalog
func (b *Builder) addEquipmentOption(option rulebook.EquipmentOption) {
	inv := b.state.Inventory()
	inv.Gold += option.Gold

	for _, item := range option.Items {
		if _, isWeapon := b.catalog.Weapon(item); isWeapon {
			inv.AddWeapon(item, 1)
			continue
		}
		lower := strings.ToLower(item)
		switch {
		case strings.Contains(lower, "shield"):
			inv.AddShield(item, 1)
		case isArmorName(lower):
			inv.AddArmor(item, 1)
		default:
			inv.AddOther(item, 1)
		}
	}
}

var armorNameHints = []string{"armor", "mail", "leather", "chain", "scale", "plate"}

func isArmorName(lower string) bool {
	for _, hint := range armorNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
