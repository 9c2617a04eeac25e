package event

import "time"

// Type names a user interaction.
type Type string

const (
	TypeWireConnect    Type = "wire.connect"
	TypeWireDisconnect Type = "wire.disconnect"
	TypeWireClear      Type = "wire.clear"
	TypeSwitchToggle   Type = "switch.toggle"
	TypeLevelLoad      Type = "level.load"
)

// Event is the canonical input model for everything a user does on a board.
// Only the fields relevant to Type are set.
type Event struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Type       Type      `json:"type"`
	From       string    `json:"from,omitempty"`      // wire.connect
	To         string    `json:"to,omitempty"`        // wire.connect
	WireID     string    `json:"wire_id,omitempty"`   // wire.disconnect
	SwitchID   string    `json:"switch_id,omitempty"` // switch.toggle
	LevelID    string    `json:"level_id,omitempty"`  // level.load
	OccurredAt time.Time `json:"occurred_at"`
	ReceivedAt time.Time `json:"-"`
}
