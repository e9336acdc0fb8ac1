package rulebook_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cberr "github.com/wyrmforge/charbuild/internal/errors"
	"github.com/wyrmforge/charbuild/internal/rulebook"
	"github.com/wyrmforge/charbuild/internal/testutils"
)

func TestFileRepositoryLoadsClass(t *testing.T) {
	repo := testutils.NewTestRepository(t)
	ctx := context.Background()

	class, err := repo.Class(ctx, "Fighter")
	require.NoError(t, err)

	assert.Equal(t, "Fighter", class.Name)
	assert.Equal(t, 10, class.HitDie)
	assert.Equal(t, []string{"Strength", "Constitution"}, class.SavingThrowProficiencies)
	assert.Equal(t, 2, class.SkillProficienciesCount)
	assert.Equal(t, 2, class.StartingEquipment.Len())

	styles, ok := class.List("fighting_styles")
	require.True(t, ok, "option lists outside the known keys are captured")
	assert.Contains(t, styles.Keys(), "Archery")

	found, ok := class.FindOption("Archery")
	require.True(t, ok)
	assert.Equal(t, "fighting_styles", found.List)
	require.NotEmpty(t, found.Option.Effects)
	assert.Equal(t, rulebook.EffectBonusAttack, found.Option.Effects[0].Type)
}

func TestFileRepositoryFeaturesThroughLevel(t *testing.T) {
	repo := testutils.NewTestRepository(t)

	class, err := repo.Class(context.Background(), "Fighter")
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, class.FeaturesThroughLevel(1))
	assert.Equal(t, []string{"1", "2", "3", "5"}, class.FeaturesThroughLevel(5))
	assert.Nil(t, class.FeaturesThroughLevel(0))
}

func TestFileRepositorySlugifiedPaths(t *testing.T) {
	repo := testutils.NewTestRepository(t)
	ctx := context.Background()

	lineage, err := repo.Lineage(ctx, "Wood Elf")
	require.NoError(t, err)
	assert.Equal(t, "Wood Elf", lineage.Name)
	assert.Equal(t, 35, lineage.Speed)

	spell, err := repo.Spell(ctx, "Pass without Trace")
	require.NoError(t, err)
	assert.Equal(t, 2, spell.Level)

	subclass, err := repo.Subclass(ctx, "Fighter", "Champion")
	require.NoError(t, err)
	assert.Equal(t, "Champion", subclass.Name)
}

func TestFileRepositoryNotFound(t *testing.T) {
	repo := testutils.NewTestRepository(t)
	ctx := context.Background()

	_, err := repo.Species(ctx, "Tortle")
	assert.True(t, cberr.IsNotFound(err))

	_, err = repo.Subclass(ctx, "Fighter", "Samurai")
	assert.True(t, cberr.IsNotFound(err))

	_, err = repo.OptionList(ctx, "classes/fighter.json", "no_such_list")
	assert.True(t, cberr.IsNotFound(err))
}

func TestFileRepositoryOptionListForms(t *testing.T) {
	repo := testutils.NewTestRepository(t)
	ctx := context.Background()

	// Object form: named options with bodies
	styles, err := repo.OptionList(ctx, "classes/fighter.json", "fighting_styles")
	require.NoError(t, err)
	assert.True(t, styles.Has("Defense"))

	// Bare-array form: a plain list of names
	cantrips, err := repo.OptionList(ctx, "spells/class_lists/cleric.json", "cantrips")
	require.NoError(t, err)
	assert.Equal(t, []string{"Guidance", "Light", "Sacred Flame", "Thaumaturgy"}, cantrips.Keys())
}

func TestFileRepositoryMalformedFileDegradesToNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "species"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "species", "broken.json"), []byte("{not json"), 0o644))

	repo := rulebook.NewFileRepository(dir)
	_, err := repo.Species(context.Background(), "Broken")
	assert.True(t, cberr.IsNotFound(err), "a bad record must not break a build")
}

func TestFileRepositoryRejectsUnknownEffectInData(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "species"), 0o755))
	body := `{"name":"Weird","traits":{"Oddity":{"effects":[{"type":"mystery_effect"}]}}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "species", "weird.json"), []byte(body), 0o644))

	repo := rulebook.NewFileRepository(dir)
	_, err := repo.Species(context.Background(), "Weird")
	assert.Error(t, err)
}
