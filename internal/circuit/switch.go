package circuit

// SwitchType discriminates the switch variants.
type SwitchType string

const (
	SwitchSinglePole SwitchType = "single_pole"
	SwitchThreeWay   SwitchType = "three_way"
)

// Switch is a closed set of variants; each maps its state to the edges it
// contributes to the graph. Values are immutable; Toggled returns a new one.
type Switch interface {
	ID() string
	Type() SwitchType
	// On is the user-facing lever state.
	On() bool
	Contacts() []string
	Edges() []Edge
	Toggled() Switch
	sealed()
}

// -----------------------------------------------------------------------
// SinglePole
// -----------------------------------------------------------------------

// SinglePole makes or breaks one connection between A and B.
type SinglePole struct {
	Name   string
	A, B   string
	Closed bool
}

func (s SinglePole) ID() string         { return s.Name }
func (s SinglePole) Type() SwitchType   { return SwitchSinglePole }
func (s SinglePole) On() bool           { return s.Closed }
func (s SinglePole) Contacts() []string { return []string{s.A, s.B} }
func (s SinglePole) sealed()            {}

// Edges is empty when open.
func (s SinglePole) Edges() []Edge {
	if !s.Closed {
		return nil
	}
	return []Edge{{From: s.A, To: s.B, Color: ColorHot}}
}

func (s SinglePole) Toggled() Switch {
	s.Closed = !s.Closed
	return s
}

// -----------------------------------------------------------------------
// ThreeWay
// -----------------------------------------------------------------------

// Position selects which traveler the common terminal is routed to.
type Position int

const (
	PositionFirst Position = iota
	PositionSecond
)

// ThreeWay always routes Common to exactly one traveler.
type ThreeWay struct {
	Name      string
	Common    string
	Traveler1 string
	Traveler2 string
	Position  Position
}

func (s ThreeWay) ID() string       { return s.Name }
func (s ThreeWay) Type() SwitchType { return SwitchThreeWay }
func (s ThreeWay) On() bool         { return s.Position == PositionSecond }
func (s ThreeWay) sealed()          {}

func (s ThreeWay) Contacts() []string {
	return []string{s.Common, s.Traveler1, s.Traveler2}
}

// Live returns the traveler currently connected to Common.
func (s ThreeWay) Live() string {
	if s.Position == PositionSecond {
		return s.Traveler2
	}
	return s.Traveler1
}

func (s ThreeWay) Edges() []Edge {
	return []Edge{{From: s.Common, To: s.Live(), Color: ColorTraveler}}
}

func (s ThreeWay) Toggled() Switch {
	if s.Position == PositionSecond {
		s.Position = PositionFirst
	} else {
		s.Position = PositionSecond
	}
	return s
}
