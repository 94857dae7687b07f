package progression

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the set of quests and dungeons offered to a player.
type Catalog struct {
	Quests   []Quest   `yaml:"quests" json:"quests"`
	Dungeons []Dungeon `yaml:"dungeons" json:"dungeons"`
}

// LoadCatalog reads a YAML catalog from path.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ParseCatalog(f)
}

// ParseCatalog decodes a YAML catalog. Unknown fields, ranks, statuses and
// difficulties are rejected; progress counters are clamped. An empty document
// is an empty catalog.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	c.Normalize()
	return c, nil
}

// Encode writes c as YAML.
func (c Catalog) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Normalize clamps every entity's counters.
func (c *Catalog) Normalize() {
	for i := range c.Quests {
		c.Quests[i].Normalize()
	}
	for i := range c.Dungeons {
		c.Dungeons[i].Normalize()
	}
}

func (c Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Quests)+len(c.Dungeons))
	check := func(kind, id string) error {
		if id == "" {
			return fmt.Errorf("%s without id", kind)
		}
		key := kind + ":" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate %s id %q", kind, id)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, q := range c.Quests {
		if err := check("quest", q.ID); err != nil {
			return err
		}
		if !q.Rank.Valid() {
			return fmt.Errorf("quest %q: %w: %d", q.ID, ErrUnknownRank, int(q.Rank))
		}
	}
	for _, d := range c.Dungeons {
		if err := check("dungeon", d.ID); err != nil {
			return err
		}
		if !d.Rank.Valid() {
			return fmt.Errorf("dungeon %q: %w: %d", d.ID, ErrUnknownRank, int(d.Rank))
		}
	}
	return nil
}

// ActionableQuests returns the quests a player can work on, in order.
func (c Catalog) ActionableQuests() []Quest {
	var out []Quest
	for _, q := range c.Quests {
		if q.IsActionable() {
			out = append(out, q)
		}
	}
	return out
}

// ActionableDungeons returns the dungeons a player can enter, in order.
func (c Catalog) ActionableDungeons() []Dungeon {
	var out []Dungeon
	for _, d := range c.Dungeons {
		if d.IsActionable() {
			out = append(out, d)
		}
	}
	return out
}
