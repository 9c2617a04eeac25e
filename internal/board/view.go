package board

import "github.com/gyaneshwarpardhi/wirelab/internal/circuit"

// SwitchState is the serialisable state of one switch.
type SwitchState struct {
	ID   string             `json:"id"`
	Type circuit.SwitchType `json:"type"`
	On   bool               `json:"on"`

	// Live lists the contacts currently joined by the switch.
	Live []string `json:"live"`
}

// View is an immutable snapshot of a board, safe to hand to other goroutines.
type View struct {
	LevelID  string         `json:"level_id"`
	Wires    []Wire         `json:"wires"`
	Switches []SwitchState  `json:"switches"`
	Edges    []circuit.Wire `json:"edges"`

	// Energized lists the terminals connected to hot, nearest first.
	Energized []string `json:"energized"`
	Status    Status   `json:"status"`
}

// View snapshots the board.
func (b *Board) View() *View {
	v := &View{
		LevelID:  b.level.ID,
		Wires:    b.Wires(),
		Switches: make([]SwitchState, 0, len(b.switches)),
		Edges:    b.graph.Wires(),
		Status:   b.status,
	}
	v.Energized = b.graph.Reachable(b.level.Hot, nil)
	if v.Energized == nil {
		v.Energized = []string{}
	}
	if b.status.ShortPath != nil {
		v.Status.ShortPath = append([]string(nil), b.status.ShortPath...)
	}
	for _, sw := range b.switches {
		st := SwitchState{ID: sw.ID(), Type: sw.Type(), On: sw.On(), Live: []string{}}
		for _, e := range sw.Edges() {
			st.Live = append(st.Live, e.From, e.To)
		}
		v.Switches = append(v.Switches, st)
	}
	return v
}
