package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/wyrmforge/charbuild/internal/builder"
	"github.com/wyrmforge/charbuild/internal/character"
	"github.com/wyrmforge/charbuild/internal/config"
	"github.com/wyrmforge/charbuild/internal/dice"
	"github.com/wyrmforge/charbuild/internal/equipment"
	"github.com/wyrmforge/charbuild/internal/repositories/characters"
	"github.com/wyrmforge/charbuild/internal/rulebook"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	rules := rulebook.NewFileRepository(cfg.Rules.DataDir)
	catalog := equipment.NewCatalog(filepath.Join(cfg.Rules.DataDir, "equipment"))
	ctx := context.Background()

	switch os.Args[1] {
	case "create":
		runCreate(ctx, cfg, rules, catalog, os.Args[2:])
	case "show":
		runShow(ctx, cfg, rules, catalog, os.Args[2:])
	case "choices":
		runChoices(ctx, cfg, rules, catalog, os.Args[2:])
	case "list":
		runList(ctx, cfg, os.Args[2:])
	case "delete":
		runDelete(ctx, cfg, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: charbuild <command> [flags]

Commands:
  create   build a character from quick-create picks and print the sheet
  show     print a saved character sheet
  choices  list the pending choices on a saved character
  list     list a player's saved characters
  delete   delete a saved character

Run 'charbuild <command> -h' for command flags.`)
}

// newRepository connects to Redis, falling back to in-memory storage when
// it is unreachable
func newRepository(cfg *config.Config) characters.Repository {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, using in-memory storage: %v", cfg.Redis.Addr, err)
		return characters.NewInMemoryRepository()
	}

	return characters.NewRedisRepository(&characters.RedisRepoConfig{
		Client:   client,
		DraftTTL: cfg.Redis.DraftTTL,
	})
}

func runCreate(ctx context.Context, cfg *config.Config, rules rulebook.Repository, catalog *equipment.Catalog, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "character name")
	species := fs.String("species", "", "species name")
	lineage := fs.String("lineage", "", "lineage name (optional)")
	class := fs.String("class", "", "class name")
	level := fs.Int("level", 1, "character level")
	background := fs.String("background", "", "background name")
	owner := fs.String("owner", "", "owner ID to save the character under")
	roll := fs.Bool("roll", false, "roll 4d6-drop-lowest ability scores instead of the recommended array")
	_ = fs.Parse(args)

	if *species == "" || *class == "" || *background == "" {
		fs.Usage()
		os.Exit(2)
	}

	b := builder.New(rules, builder.WithCatalog(catalog))
	err := b.QuickCreate(ctx, builder.QuickCreateInput{
		Name:       *name,
		Species:    *species,
		Lineage:    *lineage,
		Class:      *class,
		Level:      *level,
		Background: *background,
	})
	if err != nil {
		log.Fatalf("Failed to build character: %v", err)
	}

	if *roll {
		scores, rollErr := rollAbilityScores(ctx, rules, dice.NewRandomRoller(), *class)
		if rollErr != nil {
			log.Fatalf("Failed to roll ability scores: %v", rollErr)
		}
		if err := b.ApplyChoice(ctx, builder.ChoiceAbilities, scores); err != nil {
			log.Fatalf("Failed to assign rolled scores: %v", err)
		}
	}

	result := b.Validate()
	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
	for _, buildErr := range result.Errors {
		fmt.Printf("error: %s\n", buildErr)
	}

	printSheet(ctx, rules, catalog, b.State())
	printPendingChoices(b.PendingChoices(ctx))

	if *owner != "" {
		id, err := saveSheet(ctx, newRepository(cfg), *owner, b.State())
		if err != nil {
			log.Fatalf("Failed to save character: %v", err)
		}
		fmt.Printf("\nSaved as %s\n", id)
	}
}

func saveSheet(ctx context.Context, repo characters.Repository, owner string, state *character.State) (string, error) {
	sheet := &characters.Sheet{OwnerID: owner, State: state}
	if err := repo.Create(ctx, sheet); err != nil {
		return "", err
	}
	return sheet.ID, nil
}

func runShow(ctx context.Context, cfg *config.Config, rules rulebook.Repository, catalog *equipment.Catalog, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "character ID")
	_ = fs.Parse(args)
	if *id == "" {
		fs.Usage()
		os.Exit(2)
	}

	sheet, err := newRepository(cfg).Get(ctx, *id)
	if err != nil {
		log.Fatalf("Failed to load character: %v", err)
	}
	printSheet(ctx, rules, catalog, sheet.State)
}

func runChoices(ctx context.Context, cfg *config.Config, rules rulebook.Repository, catalog *equipment.Catalog, args []string) {
	fs := flag.NewFlagSet("choices", flag.ExitOnError)
	id := fs.String("id", "", "character ID")
	_ = fs.Parse(args)
	if *id == "" {
		fs.Usage()
		os.Exit(2)
	}

	sheet, err := newRepository(cfg).Get(ctx, *id)
	if err != nil {
		log.Fatalf("Failed to load character: %v", err)
	}

	b := builder.New(rules, builder.WithCatalog(catalog), builder.WithState(sheet.State))
	pending := b.PendingChoices(ctx)
	if len(pending) == 0 {
		fmt.Println("No pending choices.")
		return
	}
	printPendingChoices(pending)
}

func runList(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	owner := fs.String("owner", "", "owner ID")
	_ = fs.Parse(args)
	if *owner == "" {
		fs.Usage()
		os.Exit(2)
	}

	sheets, err := newRepository(cfg).GetByOwner(ctx, *owner)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}
	if len(sheets) == 0 {
		fmt.Println("No characters found.")
		return
	}
	for _, sheet := range sheets {
		s := sheet.State
		status := "draft"
		if sheet.Complete() {
			status = "complete"
		}
		fmt.Printf("%s  %-20s %s %s (level %d, %s)\n",
			sheet.ID, s.Name, s.Species, s.Class, s.Level, status)
	}
}

func runDelete(ctx context.Context, cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "character ID")
	_ = fs.Parse(args)
	if *id == "" {
		fs.Usage()
		os.Exit(2)
	}

	if err := newRepository(cfg).Delete(ctx, *id); err != nil {
		log.Fatalf("Failed to delete character: %v", err)
	}
	fmt.Printf("Deleted %s\n", *id)
}
