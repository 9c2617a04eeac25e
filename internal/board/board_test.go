package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/wirelab/internal/board"
	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
	"github.com/gyaneshwarpardhi/wirelab/internal/config"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
)

func catalog(t *testing.T) *level.Catalog {
	t.Helper()
	source := config.SourceDef{Hot: "power-hot", Neutral: "power-neutral"}
	load := config.LoadDef{Input: "light-in", Output: "light-out", X: 0.8, Y: 0.5}
	cfg := &config.LabConfig{
		Version: "v1",
		Levels: []config.LevelDef{
			{
				ID:     "1",
				Source: source,
				Load:   load,
				Terminals: []config.TerminalDef{
					{ID: "power-hot"},
					{ID: "power-neutral"},
					{ID: "sw1-t1", Kind: "contact"},
					{ID: "sw1-t2", Kind: "contact"},
				},
				Switches: []config.SwitchDef{
					{ID: "sw1", Type: "single_pole", Terminals: []string{"sw1-t1", "sw1-t2"}},
				},
			},
			{
				ID:     "3",
				Source: source,
				Load:   load,
				Terminals: []config.TerminalDef{
					{ID: "power-hot"},
					{ID: "power-neutral"},
					{ID: "sw1-com"}, {ID: "sw1-t1"}, {ID: "sw1-t2"},
					{ID: "sw2-com"}, {ID: "sw2-t1"}, {ID: "sw2-t2"},
				},
				Switches: []config.SwitchDef{
					{ID: "sw1", Type: "three_way", Terminals: []string{"sw1-com", "sw1-t1", "sw1-t2"}},
					{ID: "sw2", Type: "three_way", Terminals: []string{"sw2-com", "sw2-t1", "sw2-t2"}},
				},
			},
		},
	}
	require.NoError(t, config.Validate(withDefaults(cfg)))
	cat, err := level.Build(cfg)
	require.NoError(t, err)
	return cat
}

func withDefaults(cfg *config.LabConfig) *config.LabConfig {
	config.ApplyDefaults(cfg)
	return cfg
}

func newBoard(t *testing.T, id string) *board.Board {
	t.Helper()
	lv, ok := catalog(t).Get(id)
	require.True(t, ok)
	return board.New(lv)
}

func mustConnect(t *testing.T, b *board.Board, from, to string) board.Wire {
	t.Helper()
	w, err := b.Connect(from, to)
	require.NoError(t, err)
	return w
}

func TestSinglePoleScenario(t *testing.T) {
	b := newBoard(t, "1")
	assert.Equal(t, circuit.SeverityInfo, b.Status().Severity)
	assert.Equal(t, circuit.MsgIncomplete, b.Status().Message)

	mustConnect(t, b, "power-hot", "sw1-t1")
	mustConnect(t, b, "light-out", "power-neutral")

	st := b.Status()
	assert.False(t, st.PoweredOn)
	assert.Equal(t, circuit.SeverityInfo, st.Severity)
	assert.Equal(t, circuit.MsgNoHot, st.Message)

	sw, err := b.Toggle("sw1")
	require.NoError(t, err)
	assert.True(t, sw.On())

	mustConnect(t, b, "sw1-t2", "light-in")
	st = b.Status()
	assert.True(t, st.PoweredOn)
	assert.True(t, st.Lit)
	assert.Equal(t, circuit.SeveritySuccess, st.Severity)
	assert.Equal(t, board.CueSuccess, st.Cue)

	// Switching off again breaks the hot leg.
	_, err = b.Toggle("sw1")
	require.NoError(t, err)
	st = b.Status()
	assert.False(t, st.Lit)
	assert.Equal(t, circuit.SeverityInfo, st.Severity)
	assert.Equal(t, board.CueNone, st.Cue)
}

func TestSuccessCueOnlyOnTransition(t *testing.T) {
	b := newBoard(t, "1")
	_, err := b.Toggle("sw1")
	require.NoError(t, err)
	mustConnect(t, b, "power-hot", "sw1-t1")
	mustConnect(t, b, "sw1-t2", "light-in")
	w := mustConnect(t, b, "light-out", "power-neutral")
	assert.Equal(t, board.CueSuccess, b.Status().Cue)

	// A redundant wire keeps the light on without replaying the cue.
	mustConnect(t, b, "power-hot", "sw1-t1")
	assert.True(t, b.Status().Lit)
	assert.Equal(t, board.CueNone, b.Status().Cue)

	require.NoError(t, b.Disconnect(w.ID))
	assert.False(t, b.Status().Lit)
	assert.Equal(t, circuit.SeverityWarning, b.Status().Severity)
}

func TestShortCircuitScenario(t *testing.T) {
	b := newBoard(t, "1")
	w := mustConnect(t, b, "power-hot", "power-neutral")
	assert.Equal(t, circuit.ColorNeutral, w.Color)

	st := b.Status()
	assert.True(t, st.IsShortCircuit)
	assert.False(t, st.PoweredOn)
	assert.Equal(t, circuit.SeverityDanger, st.Severity)
	assert.Equal(t, board.CueDanger, st.Cue)
	assert.Equal(t, []string{"power-hot", "power-neutral"}, st.ShortPath)

	// A complete load path does not mask the short.
	_, err := b.Toggle("sw1")
	require.NoError(t, err)
	mustConnect(t, b, "power-hot", "sw1-t1")
	mustConnect(t, b, "sw1-t2", "light-in")
	mustConnect(t, b, "light-out", "power-neutral")
	assert.True(t, b.Status().IsShortCircuit)
	assert.False(t, b.Status().Lit)
}

func TestShortThroughClosedSwitch(t *testing.T) {
	b := newBoard(t, "1")
	mustConnect(t, b, "power-hot", "sw1-t1")
	mustConnect(t, b, "sw1-t2", "power-neutral")
	assert.False(t, b.Status().IsShortCircuit, "open switch leaves no edge to short through")

	_, err := b.Toggle("sw1")
	require.NoError(t, err)
	assert.True(t, b.Status().IsShortCircuit)
	assert.Equal(t, []string{"power-hot", "sw1-t1", "sw1-t2", "power-neutral"}, b.Status().ShortPath)
}

func TestThreeWayScenario(t *testing.T) {
	b := newBoard(t, "3")
	mustConnect(t, b, "power-hot", "sw1-com")
	mustConnect(t, b, "sw1-t1", "sw2-t1")
	mustConnect(t, b, "sw1-t2", "sw2-t2")
	mustConnect(t, b, "sw2-com", "light-in")
	mustConnect(t, b, "light-out", "power-neutral")
	require.True(t, b.Status().Lit, "both switches in first position")

	steps := []struct {
		toggle string
		lit    bool
	}{
		{"sw1", false},
		{"sw2", true},
		{"sw2", false},
		{"sw1", true},
	}
	for _, s := range steps {
		_, err := b.Toggle(s.toggle)
		require.NoError(t, err)
		assert.Equal(t, s.lit, b.Status().Lit, "after toggling %s", s.toggle)
	}
}

func TestTravelerWireColour(t *testing.T) {
	b := newBoard(t, "3")
	w := mustConnect(t, b, "sw1-t1", "sw2-t1")
	assert.Equal(t, circuit.ColorTraveler, w.Color)
	w = mustConnect(t, b, "light-out", "power-neutral")
	assert.Equal(t, circuit.ColorNeutral, w.Color)
}

func TestConnectErrors(t *testing.T) {
	b := newBoard(t, "1")
	_, err := b.Connect("power-hot", "nowhere")
	assert.ErrorIs(t, err, board.ErrUnknownTerminal)
	_, err = b.Connect("power-hot", "power-hot")
	assert.ErrorIs(t, err, board.ErrSelfConnection)
	assert.ErrorIs(t, b.Disconnect("missing"), board.ErrUnknownWire)
	_, err = b.Toggle("sw9")
	assert.ErrorIs(t, err, board.ErrUnknownSwitch)
	assert.Empty(t, b.Wires())
}

func TestClearWiresKeepsSwitches(t *testing.T) {
	b := newBoard(t, "1")
	_, err := b.Toggle("sw1")
	require.NoError(t, err)
	mustConnect(t, b, "power-hot", "power-neutral")
	require.True(t, b.Status().IsShortCircuit)

	b.ClearWires()
	assert.Empty(t, b.Wires())
	assert.False(t, b.Status().IsShortCircuit)
	sw, ok := b.Switch("sw1")
	require.True(t, ok)
	assert.True(t, sw.On())
	// Only the closed switch's own edge remains.
	assert.Len(t, b.Graph().Wires(), 1)
}

func TestLoadResetsBoard(t *testing.T) {
	cat := catalog(t)
	one, _ := cat.Get("1")
	three, _ := cat.Get("3")

	b := board.New(one)
	mustConnect(t, b, "power-hot", "sw1-t1")
	_, err := b.Toggle("sw1")
	require.NoError(t, err)

	b.Load(three)
	assert.Equal(t, "3", b.Level().ID)
	assert.Empty(t, b.Wires())
	sw, ok := b.Switch("sw1")
	require.True(t, ok)
	assert.Equal(t, circuit.SwitchThreeWay, sw.Type())
	assert.False(t, sw.On())
}

func TestView(t *testing.T) {
	b := newBoard(t, "3")
	mustConnect(t, b, "power-hot", "sw1-com")
	_, err := b.Toggle("sw2")
	require.NoError(t, err)

	v := b.View()
	assert.Equal(t, "3", v.LevelID)
	require.Len(t, v.Wires, 1)
	require.Len(t, v.Switches, 2)
	assert.Equal(t, []string{"sw1-com", "sw1-t1"}, v.Switches[0].Live)
	assert.Equal(t, []string{"sw2-com", "sw2-t2"}, v.Switches[1].Live)
	assert.True(t, v.Switches[1].On)
	// One user wire plus one edge per three-way switch.
	assert.Len(t, v.Edges, 3)
	assert.Equal(t, []string{"power-hot", "sw1-com", "sw1-t1"}, v.Energized)
	assert.Equal(t, b.Status().Revision, v.Status.Revision)
}

func TestRevisionAdvances(t *testing.T) {
	b := newBoard(t, "1")
	r0 := b.Status().Revision
	mustConnect(t, b, "power-hot", "sw1-t1")
	assert.Greater(t, b.Status().Revision, r0)
}
