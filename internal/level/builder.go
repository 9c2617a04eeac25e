package level

import (
	"fmt"

	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
	"github.com/gyaneshwarpardhi/wirelab/internal/config"
)

// Catalog is the set of enabled levels, in config order.
type Catalog struct {
	order  []*Level
	levels map[string]*Level
}

// Build compiles a validated LabConfig into a Catalog.
func Build(cfg *config.LabConfig) (*Catalog, error) {
	c := &Catalog{levels: make(map[string]*Level)}
	for _, def := range cfg.Levels {
		if def.Disabled {
			continue
		}
		if _, dup := c.levels[def.ID]; dup {
			return nil, fmt.Errorf("level %s: duplicate id", def.ID)
		}
		lv, err := buildLevel(def)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", def.ID, err)
		}
		c.levels[lv.ID] = lv
		c.order = append(c.order, lv)
	}
	if len(c.order) == 0 {
		return nil, fmt.Errorf("catalog has no enabled levels")
	}
	return c, nil
}

func buildLevel(def config.LevelDef) (*Level, error) {
	lv := &Level{
		ID:      def.ID,
		Title:   def.Title,
		Hint:    def.Hint,
		Hot:     def.Source.Hot,
		Neutral: def.Source.Neutral,
		Load:    Load{Input: def.Load.Input, Output: def.Load.Output, X: def.Load.X, Y: def.Load.Y},
		index:   make(map[string]int),
	}

	add := func(t Terminal) error {
		if _, dup := lv.index[t.Key]; dup {
			return fmt.Errorf("duplicate terminal %q", t.Key)
		}
		lv.index[t.Key] = len(lv.Terminals)
		lv.Terminals = append(lv.Terminals, t)
		return nil
	}

	for _, td := range def.Terminals {
		kind := circuit.Kind(td.Kind)
		if kind == circuit.KindNone {
			kind = InferKind(td.ID)
		}
		if !kind.Valid() {
			return nil, fmt.Errorf("terminal %s: unknown kind %q", td.ID, td.Kind)
		}
		label := td.Label
		if label == "" {
			label = td.ID
		}
		if err := add(Terminal{Key: td.ID, Label: label, Kind: kind, X: td.X, Y: td.Y}); err != nil {
			return nil, err
		}
	}
	// Load terminals are implicit and placed beside the fixture.
	for i, key := range []string{def.Load.Input, def.Load.Output} {
		label := "L"
		dy := -0.1
		if i == 1 {
			label, dy = "N", 0.1
		}
		if err := add(Terminal{Key: key, Label: label, Kind: circuit.KindLoadTerminal, X: def.Load.X, Y: def.Load.Y + dy}); err != nil {
			return nil, err
		}
	}

	for _, req := range []string{lv.Hot, lv.Neutral} {
		if _, ok := lv.index[req]; !ok {
			return nil, fmt.Errorf("source terminal %q not defined", req)
		}
	}

	for _, sd := range def.Switches {
		want := 2
		if circuit.SwitchType(sd.Type) == circuit.SwitchThreeWay {
			want = 3
		}
		if len(sd.Terminals) != want {
			return nil, fmt.Errorf("switch %s: %s needs %d terminals", sd.ID, sd.Type, want)
		}
		for _, key := range sd.Terminals {
			if _, ok := lv.index[key]; !ok {
				return nil, fmt.Errorf("switch %s: unknown terminal %q", sd.ID, key)
			}
		}
		lv.Switches = append(lv.Switches, Switch{
			ID:        sd.ID,
			Type:      circuit.SwitchType(sd.Type),
			Terminals: append([]string(nil), sd.Terminals...),
			X:         sd.X,
			Y:         sd.Y,
		})
	}
	return lv, nil
}

// Get returns a level by id.
func (c *Catalog) Get(id string) (*Level, bool) {
	lv, ok := c.levels[id]
	return lv, ok
}

// List returns levels in config order.
func (c *Catalog) List() []*Level {
	out := make([]*Level, len(c.order))
	copy(out, c.order)
	return out
}

// Default is the first level.
func (c *Catalog) Default() *Level {
	return c.order[0]
}

// Len returns the number of enabled levels.
func (c *Catalog) Len() int {
	return len(c.order)
}
