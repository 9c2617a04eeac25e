// Package level compiles the YAML catalog into immutable exercise definitions.
package level

import (
	"strings"

	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
)

// Terminal is a wireable point on the board. X and Y are layout fractions (0..1).
type Terminal struct {
	Key   string       `json:"key"`
	Label string       `json:"label"`
	Kind  circuit.Kind `json:"kind"`
	X     float64      `json:"x"`
	Y     float64      `json:"y"`
}

// Switch is the static description of a switch; its state lives on the board.
type Switch struct {
	ID        string             `json:"id"`
	Type      circuit.SwitchType `json:"type"`
	Terminals []string           `json:"terminals"`
	X         float64            `json:"x"`
	Y         float64            `json:"y"`
}

// Load is the light fixture.
type Load struct {
	Input  string  `json:"input"`
	Output string  `json:"output"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Level is one exercise. It is never mutated after Build.
type Level struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Hint      string     `json:"hint"`
	Hot       string     `json:"hot"`
	Neutral   string     `json:"neutral"`
	Load      Load       `json:"load"`
	Terminals []Terminal `json:"terminals"`
	Switches  []Switch   `json:"switches"`

	index map[string]int // terminal key → position in Terminals
}

// Terminal looks up a terminal by key (load terminals included).
func (l *Level) Terminal(key string) (Terminal, bool) {
	i, ok := l.index[key]
	if !ok {
		return Terminal{}, false
	}
	return l.Terminals[i], true
}

// Roles anchors circuit analysis on this level's supply and load.
func (l *Level) Roles() circuit.Roles {
	return circuit.Roles{
		Hot:        l.Hot,
		Neutral:    l.Neutral,
		LoadInput:  l.Load.Input,
		LoadOutput: l.Load.Output,
	}
}

// LoadKeys are excluded from the short-circuit search.
func (l *Level) LoadKeys() circuit.KeySet {
	return circuit.NewKeySet(l.Load.Input, l.Load.Output)
}

// InitialSwitches returns every switch in its off state:
// single-pole open, three-way routed to its first traveler.
func (l *Level) InitialSwitches() []circuit.Switch {
	out := make([]circuit.Switch, 0, len(l.Switches))
	for _, s := range l.Switches {
		switch s.Type {
		case circuit.SwitchThreeWay:
			out = append(out, circuit.ThreeWay{
				Name:      s.ID,
				Common:    s.Terminals[0],
				Traveler1: s.Terminals[1],
				Traveler2: s.Terminals[2],
			})
		default:
			out = append(out, circuit.SinglePole{Name: s.ID, A: s.Terminals[0], B: s.Terminals[1]})
		}
	}
	return out
}

// InferKind guesses a terminal kind from its key, for catalogs that omit it.
func InferKind(key string) circuit.Kind {
	k := strings.ToLower(key)
	switch {
	case strings.Contains(k, "hot"):
		return circuit.KindHotSource
	case strings.Contains(k, "neutral"):
		return circuit.KindNeutralSource
	case strings.Contains(k, "ground"):
		return circuit.KindGround
	case strings.Contains(k, "-t"), strings.Contains(k, "trav"), strings.Contains(k, "com"):
		return circuit.KindTraveler
	}
	return circuit.KindNone
}

// WireColor picks the rendering colour for a wire between two terminal kinds.
func WireColor(a, b circuit.Kind) circuit.Color {
	has := func(k circuit.Kind) bool { return a == k || b == k }
	switch {
	case has(circuit.KindNeutralSource):
		return circuit.ColorNeutral
	case has(circuit.KindGround):
		return circuit.ColorGround
	case has(circuit.KindTraveler):
		return circuit.ColorTraveler
	}
	return circuit.ColorHot
}
