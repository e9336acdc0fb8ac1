package rulebook

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	cberr "github.com/wyrmforge/charbuild/internal/errors"
)

// FileRepository loads rule records from a directory of JSON files and
// caches them process-wide. Safe for concurrent use: the cache is guarded
// by a RWMutex and concurrent loads of the same file are collapsed.
type FileRepository struct {
	dataDir string

	mu    sync.RWMutex
	cache map[string][]byte

	group singleflight.Group
}

// NewFileRepository creates a repository rooted at dataDir
func NewFileRepository(dataDir string) *FileRepository {
	return &FileRepository{
		dataDir: dataDir,
		cache:   make(map[string][]byte),
	}
}

// slugify converts a record name to its file name form
// ("Wood Elf" -> "wood_elf")
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "'", "")
	return s
}

// load reads a rule file relative to the data dir, via the cache.
// Missing files are not-found errors; unreadable files are logged and
// degrade to not-found so a single bad record cannot break a build.
func (r *FileRepository) load(rel string) ([]byte, error) {
	r.mu.RLock()
	data, ok := r.cache[rel]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	result, err, _ := r.group.Do(rel, func() (any, error) {
		raw, readErr := os.ReadFile(filepath.Join(r.dataDir, rel))
		if readErr != nil {
			if os.IsNotExist(readErr) {
				return nil, cberr.NotFoundf("rule file %q not found", rel)
			}
			log.Printf("WARN: could not read rule file %s: %v", rel, readErr)
			return nil, cberr.NotFoundf("rule file %q not readable", rel)
		}
		if !json.Valid(raw) {
			log.Printf("WARN: rule file %s contains invalid JSON", rel)
			return nil, cberr.NotFoundf("rule file %q is malformed", rel)
		}

		r.mu.Lock()
		r.cache[rel] = raw
		r.mu.Unlock()
		return raw, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// decode loads a rule file and unmarshals it into out. Decode failures are
// treated like malformed files: logged, then surfaced as not-found.
func (r *FileRepository) decode(rel string, out any) error {
	data, err := r.load(rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("WARN: rule file %s failed to decode: %v", rel, err)
		return cberr.WrapWithCode(err, cberr.CodeNotFound, "rule file "+rel+" is malformed")
	}
	return nil
}

// Species implements Repository.Species
func (r *FileRepository) Species(ctx context.Context, name string) (*Species, error) {
	var record Species
	if err := r.decode(filepath.Join("species", slugify(name)+".json"), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Lineage implements Repository.Lineage
func (r *FileRepository) Lineage(ctx context.Context, name string) (*Lineage, error) {
	var record Lineage
	if err := r.decode(filepath.Join("species", "lineages", slugify(name)+".json"), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Class implements Repository.Class
func (r *FileRepository) Class(ctx context.Context, name string) (*Class, error) {
	var record Class
	if err := r.decode(filepath.Join("classes", slugify(name)+".json"), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Subclass implements Repository.Subclass
func (r *FileRepository) Subclass(ctx context.Context, className, name string) (*Subclass, error) {
	var record Subclass
	rel := filepath.Join("classes", "subclasses", slugify(className), slugify(name)+".json")
	if err := r.decode(rel, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Background implements Repository.Background
func (r *FileRepository) Background(ctx context.Context, name string) (*Background, error) {
	var record Background
	if err := r.decode(filepath.Join("backgrounds", slugify(name)+".json"), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SpellList implements Repository.SpellList
func (r *FileRepository) SpellList(ctx context.Context, listName string) (*SpellList, error) {
	var record SpellList
	rel := filepath.Join("spells", "class_lists", slugify(listName)+".json")
	if err := r.decode(rel, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Spell implements Repository.Spell
func (r *FileRepository) Spell(ctx context.Context, name string) (*Spell, error) {
	var record Spell
	rel := filepath.Join("spells", "definitions", slugify(name)+".json")
	if err := r.decode(rel, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// OptionList implements Repository.OptionList
func (r *FileRepository) OptionList(ctx context.Context, file, list string) (*OrderedMap[Option], error) {
	var doc map[string]json.RawMessage
	if err := r.decode(filepath.FromSlash(file), &doc); err != nil {
		return nil, err
	}

	raw, ok := doc[list]
	if !ok {
		return nil, cberr.NotFoundf("list %q not found in %s", list, file)
	}

	options := NewOrderedMap[Option]()
	if err := json.Unmarshal(raw, options); err != nil {
		// Lists also appear as bare arrays of option names
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			log.Printf("WARN: list %s in %s failed to decode: %v", list, file, err)
			return nil, cberr.NotFoundf("list %q in %s is malformed", list, file)
		}
		for _, name := range names {
			options.Set(name, Option{})
		}
	}
	return options, nil
}

var _ Repository = (*FileRepository)(nil)
