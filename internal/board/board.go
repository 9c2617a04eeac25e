// Package board holds one user's workbench: the wires they have drawn and the
// switch positions they have chosen for a level. Every change triggers a full
// rebuild of the circuit graph followed by a fresh analysis.
//
// A Board is not safe for concurrent use; the engine pins each board to a
// single goroutine.
package board

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
)

var (
	ErrUnknownTerminal = errors.New("unknown terminal")
	ErrSelfConnection  = errors.New("cannot wire a terminal to itself")
	ErrUnknownWire     = errors.New("unknown wire")
	ErrUnknownSwitch   = errors.New("unknown switch")
)

// Cue is the audio feedback the presentation layer should play.
type Cue string

const (
	CueNone    Cue = "none"
	CueSuccess Cue = "success"
	CueDanger  Cue = "danger"
)

// Wire is a user-drawn connection.
type Wire struct {
	ID    string        `json:"id"`
	From  string        `json:"from"`
	To    string        `json:"to"`
	Color circuit.Color `json:"color"`
}

// Status is the outcome of the latest evaluation.
type Status struct {
	circuit.Analysis
	Lit      bool   `json:"lit"`
	Cue      Cue    `json:"cue"`
	Revision uint64 `json:"revision"`
}

// Board is a level plus the user's wiring and switch state.
type Board struct {
	level    *level.Level
	wires    []Wire
	switches []circuit.Switch
	graph    *circuit.Graph
	status   Status
	revision uint64
}

// New creates a board for lv and evaluates its empty state.
func New(lv *level.Level) *Board {
	b := &Board{}
	b.Load(lv)
	return b
}

// Load switches the board to lv, discarding all wires and switch positions.
func (b *Board) Load(lv *level.Level) {
	b.level = lv
	b.wires = nil
	b.switches = lv.InitialSwitches()
	b.graph = circuit.NewGraph()
	b.status = Status{}
	b.Evaluate()
}

// Level returns the level being worked on.
func (b *Board) Level() *level.Level { return b.level }

// Connect draws a wire between two terminals.
func (b *Board) Connect(from, to string) (Wire, error) {
	ta, ok := b.level.Terminal(from)
	if !ok {
		return Wire{}, fmt.Errorf("connect %s: %w", from, ErrUnknownTerminal)
	}
	tb, ok := b.level.Terminal(to)
	if !ok {
		return Wire{}, fmt.Errorf("connect %s: %w", to, ErrUnknownTerminal)
	}
	if from == to {
		return Wire{}, fmt.Errorf("connect %s: %w", from, ErrSelfConnection)
	}
	w := Wire{
		ID:    uuid.New().String(),
		From:  from,
		To:    to,
		Color: level.WireColor(ta.Kind, tb.Kind),
	}
	b.wires = append(b.wires, w)
	b.Evaluate()
	return w, nil
}

// Disconnect removes one wire by id.
func (b *Board) Disconnect(wireID string) error {
	for i, w := range b.wires {
		if w.ID == wireID {
			b.wires = append(b.wires[:i], b.wires[i+1:]...)
			b.Evaluate()
			return nil
		}
	}
	return fmt.Errorf("disconnect %s: %w", wireID, ErrUnknownWire)
}

// ClearWires removes every user wire; switch positions are kept.
func (b *Board) ClearWires() {
	b.wires = nil
	b.Evaluate()
}

// Toggle flips a switch and returns its new state.
func (b *Board) Toggle(switchID string) (circuit.Switch, error) {
	for i, sw := range b.switches {
		if sw.ID() == switchID {
			b.switches[i] = sw.Toggled()
			b.Evaluate()
			return b.switches[i], nil
		}
	}
	return nil, fmt.Errorf("toggle %s: %w", switchID, ErrUnknownSwitch)
}

// Evaluate rebuilds the graph from scratch and classifies it.
func (b *Board) Evaluate() Status {
	b.rebuild()

	// Switch state is already encoded as present/absent edges, so no contact
	// needs blocking here; load terminals are excluded from the short search.
	a := b.graph.Analyze(b.level.Roles(), nil, b.level.LoadKeys())

	wasLit := b.status.Lit
	b.revision++
	st := Status{Analysis: a, Lit: a.PoweredOn, Cue: CueNone, Revision: b.revision}
	switch {
	case a.Severity == circuit.SeverityDanger:
		st.Cue = CueDanger
	case st.Lit && !wasLit && a.Severity == circuit.SeveritySuccess:
		st.Cue = CueSuccess
	}
	b.status = st
	return st
}

// rebuild: reset, re-register terminals, fixed wires, then switch edges.
func (b *Board) rebuild() {
	b.graph.Reset()
	for _, t := range b.level.Terminals {
		b.graph.AddNode(t.Key, t.Kind)
	}
	for _, w := range b.wires {
		b.graph.Connect(w.From, w.To, w.Color)
	}
	for _, sw := range b.switches {
		b.graph.ConnectSwitch(sw)
	}
}

// Status returns the result of the last evaluation.
func (b *Board) Status() Status { return b.status }

// Wires returns a copy of the user wires.
func (b *Board) Wires() []Wire {
	out := make([]Wire, len(b.wires))
	copy(out, b.wires)
	return out
}

// Switch returns the current state of one switch.
func (b *Board) Switch(id string) (circuit.Switch, bool) {
	for _, sw := range b.switches {
		if sw.ID() == id {
			return sw, true
		}
	}
	return nil, false
}

// Graph exposes the rebuilt graph for read-only queries.
func (b *Board) Graph() *circuit.Graph { return b.graph }
