// Package wiring implements the built-in board interactions:
// drawing and removing wires, flipping switches and changing level.
package wiring

import (
	"context"
	"fmt"

	"github.com/gyaneshwarpardhi/wirelab/internal/action"
	"github.com/gyaneshwarpardhi/wirelab/internal/event"
)

// RegisterAll adds every built-in executor to reg.
func RegisterAll(reg *action.Registry) {
	reg.Register(Connect{})
	reg.Register(Disconnect{})
	reg.Register(Clear{})
	reg.Register(Toggle{})
	reg.Register(LoadLevel{})
}

func invalid(ev *event.Event, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", ev.Type, fmt.Sprintf(format, args...), action.ErrInvalidEvent)
}

func ok(ev *event.Event, msg string) *action.ActionResult {
	return &action.ActionResult{EventID: ev.ID, Type: ev.Type, Success: true, Message: msg}
}

func failed(ev *event.Event, err error) (*action.ActionResult, error) {
	return &action.ActionResult{EventID: ev.ID, Type: ev.Type, Success: false, Message: err.Error()}, err
}

// Connect handles "wire.connect".
type Connect struct{}

func (Connect) Type() event.Type { return event.TypeWireConnect }

func (Connect) Validate(ev *event.Event) error {
	if ev.From == "" || ev.To == "" {
		return invalid(ev, "from and to are required")
	}
	return nil
}

func (Connect) Execute(_ context.Context, ev *event.Event, env action.Env) (*action.ActionResult, error) {
	w, err := env.Board.Connect(ev.From, ev.To)
	if err != nil {
		return failed(ev, err)
	}
	res := ok(ev, fmt.Sprintf("Wired %s to %s (%s)", w.From, w.To, w.Color))
	res.Wire = &w
	return res, nil
}

// Disconnect handles "wire.disconnect".
type Disconnect struct{}

func (Disconnect) Type() event.Type { return event.TypeWireDisconnect }

func (Disconnect) Validate(ev *event.Event) error {
	if ev.WireID == "" {
		return invalid(ev, "wire_id is required")
	}
	return nil
}

func (Disconnect) Execute(_ context.Context, ev *event.Event, env action.Env) (*action.ActionResult, error) {
	if err := env.Board.Disconnect(ev.WireID); err != nil {
		return failed(ev, err)
	}
	return ok(ev, "Removed wire "+ev.WireID), nil
}

// Clear handles "wire.clear".
type Clear struct{}

func (Clear) Type() event.Type { return event.TypeWireClear }

func (Clear) Validate(*event.Event) error { return nil }

func (Clear) Execute(_ context.Context, ev *event.Event, env action.Env) (*action.ActionResult, error) {
	n := len(env.Board.Wires())
	env.Board.ClearWires()
	return ok(ev, fmt.Sprintf("Removed %d wires", n)), nil
}

// Toggle handles "switch.toggle".
type Toggle struct{}

func (Toggle) Type() event.Type { return event.TypeSwitchToggle }

func (Toggle) Validate(ev *event.Event) error {
	if ev.SwitchID == "" {
		return invalid(ev, "switch_id is required")
	}
	return nil
}

func (Toggle) Execute(_ context.Context, ev *event.Event, env action.Env) (*action.ActionResult, error) {
	sw, err := env.Board.Toggle(ev.SwitchID)
	if err != nil {
		return failed(ev, err)
	}
	state := "off"
	if sw.On() {
		state = "on"
	}
	return ok(ev, fmt.Sprintf("Switch %s is %s", sw.ID(), state)), nil
}

// LoadLevel handles "level.load". It discards the board's wiring.
type LoadLevel struct{}

func (LoadLevel) Type() event.Type { return event.TypeLevelLoad }

func (LoadLevel) Validate(ev *event.Event) error {
	if ev.LevelID == "" {
		return invalid(ev, "level_id is required")
	}
	return nil
}

func (LoadLevel) Execute(_ context.Context, ev *event.Event, env action.Env) (*action.ActionResult, error) {
	if env.Catalog == nil {
		return failed(ev, fmt.Errorf("level %s: %w", ev.LevelID, action.ErrUnknownLevel))
	}
	lv, found := env.Catalog.Get(ev.LevelID)
	if !found {
		return failed(ev, fmt.Errorf("level %s: %w", ev.LevelID, action.ErrUnknownLevel))
	}
	env.Board.Load(lv)
	return ok(ev, "Loaded level "+lv.ID), nil
}
