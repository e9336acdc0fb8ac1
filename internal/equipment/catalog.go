package equipment

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Catalog resolves item names to their weapon and armor records. Lookups
// are case-preserving by catalog key (catalog files key items by their
// display name). Safe for concurrent reads once loaded.
type Catalog struct {
	once sync.Once
	dir  string

	weapons map[string]Weapon
	armor   map[string]Armor
}

// NewCatalog creates a catalog that lazily loads weapons.json and
// armor.json from dir on first lookup.
func NewCatalog(dir string) *Catalog {
	return &Catalog{dir: dir}
}

// NewStaticCatalog creates a catalog from in-memory records, for tests
// and embedded defaults.
func NewStaticCatalog(weapons map[string]Weapon, armor map[string]Armor) *Catalog {
	c := &Catalog{weapons: weapons, armor: armor}
	c.once.Do(func() {})
	return c
}

func (c *Catalog) load() {
	c.once.Do(func() {
		c.weapons = loadCatalogFile[Weapon](filepath.Join(c.dir, "weapons.json"))
		c.armor = loadCatalogFile[Armor](filepath.Join(c.dir, "armor.json"))
	})
}

// loadCatalogFile reads a name-keyed catalog file. A missing or malformed
// file degrades to an empty catalog with a logged warning so a broken data
// directory cannot break stat calculation.
func loadCatalogFile[T any](path string) map[string]T {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: could not read equipment catalog %s: %v", path, err)
		}
		return map[string]T{}
	}

	var records map[string]T
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("WARN: equipment catalog %s failed to decode: %v", path, err)
		return map[string]T{}
	}

	// Catalog files key by display name; copy the key into the record
	// so callers holding a record still know its name.
	for name, record := range records {
		records[name] = withName(record, name)
	}
	return records
}

func withName[T any](record T, name string) T {
	switch r := any(&record).(type) {
	case *Weapon:
		if r.Name == "" {
			r.Name = name
		}
	case *Armor:
		if r.Name == "" {
			r.Name = name
		}
	}
	return record
}

// Weapon returns the weapon record for a name
func (c *Catalog) Weapon(name string) (Weapon, bool) {
	c.load()
	w, ok := c.weapons[name]
	return w, ok
}

// Armor returns the armor or shield record for a name
func (c *Catalog) Armor(name string) (Armor, bool) {
	c.load()
	a, ok := c.armor[name]
	return a, ok
}
