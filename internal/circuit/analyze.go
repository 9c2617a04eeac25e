package circuit

// Severity grades an Analysis for the presentation layer.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

const (
	MsgShortCircuit = "DANGER: SHORT CIRCUIT! Hot connected directly to Neutral."
	MsgComplete     = "CIRCUIT COMPLETE: Light is ON!"
	MsgNoReturn     = "Missing path back to Neutral. The light has power but no return path."
	MsgNoHot        = "Neutral is connected, but the Hot (power) path is broken or switched off."
	MsgIncomplete   = "Circuit is incomplete. Connect Hot to terminal, then to light, then to Neutral."
)

// Roles names the four terminals an analysis is anchored on.
type Roles struct {
	Hot        string `json:"hot"`
	Neutral    string `json:"neutral"`
	LoadInput  string `json:"load_input"`
	LoadOutput string `json:"load_output"`
}

// Analysis is the classification of one circuit state.
type Analysis struct {
	PoweredOn      bool     `json:"powered_on"`
	IsShortCircuit bool     `json:"is_short_circuit"`
	Message        string   `json:"message"`
	Severity       Severity `json:"severity"`

	// ShortPath is the hot → neutral route that bypasses the load, if any.
	ShortPath []string `json:"short_path,omitempty"`
}

// Analyze classifies the circuit. The short-circuit check runs first and
// pre-empts every other outcome; it may not pass through open or load keys.
func (g *Graph) Analyze(r Roles, open, load KeySet) Analysis {
	if short := g.Path(r.Hot, r.Neutral, open.Union(load)); short != nil {
		return Analysis{
			IsShortCircuit: true,
			Message:        MsgShortCircuit,
			Severity:       SeverityDanger,
			ShortPath:      short,
		}
	}

	toLoad := g.HasPath(r.Hot, r.LoadInput, open)
	toReturn := g.HasPath(r.LoadOutput, r.Neutral, open)

	switch {
	case toLoad && toReturn:
		return Analysis{PoweredOn: true, Message: MsgComplete, Severity: SeveritySuccess}
	case toLoad:
		return Analysis{Message: MsgNoReturn, Severity: SeverityWarning}
	case toReturn:
		return Analysis{Message: MsgNoHot, Severity: SeverityInfo}
	default:
		return Analysis{Message: MsgIncomplete, Severity: SeverityInfo}
	}
}
