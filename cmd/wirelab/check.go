package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/wirelab/internal/board"
	"github.com/gyaneshwarpardhi/wirelab/internal/circuit"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	severityStyles = map[circuit.Severity]lipgloss.Style{
		circuit.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		circuit.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		circuit.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		circuit.SeverityDanger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Bold(true).
			Padding(0, 1),
	}
)

type checkOptions struct {
	levelID string
	wires   []string
	toggles []string
	asJSON  bool
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	co := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a wiring offline",
		Args:  cobra.NoArgs,
		Example: `  wirelab check --level 1 --wire power-hot:sw1-t1 --wire sw1-t2:light-in \
    --wire light-out:power-neutral --toggle sw1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := loadCatalog(opts.configPath)
			if err != nil {
				return err
			}
			b, err := runCheck(cat, co)
			if err != nil {
				return err
			}
			if co.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(b.View())
			}
			renderCheck(cmd.OutOrStdout(), b)
			return nil
		},
	}
	cmd.Flags().StringVar(&co.levelID, "level", "", "Level id (defaults to the first level)")
	cmd.Flags().StringArrayVar(&co.wires, "wire", nil, "Wire to draw as from:to (repeatable)")
	cmd.Flags().StringArrayVar(&co.toggles, "toggle", nil, "Switch to toggle (repeatable, applied after wiring)")
	cmd.Flags().BoolVar(&co.asJSON, "json", false, "Print the board view as JSON")
	return cmd
}

// runCheck builds a board, draws every wire, then flips every toggle in order.
func runCheck(cat *level.Catalog, co *checkOptions) (*board.Board, error) {
	lv := cat.Default()
	if co.levelID != "" {
		var ok bool
		if lv, ok = cat.Get(co.levelID); !ok {
			return nil, fmt.Errorf("unknown level %q", co.levelID)
		}
	}
	b := board.New(lv)
	for _, pair := range co.wires {
		from, to, ok := strings.Cut(pair, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("wire %q: expected from:to", pair)
		}
		if _, err := b.Connect(from, to); err != nil {
			return nil, err
		}
	}
	for _, id := range co.toggles {
		if _, err := b.Toggle(id); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func renderCheck(w io.Writer, b *board.Board) {
	lv := b.Level()
	st := b.Status()

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Level %s: %s", lv.ID, lv.Title)))
	for _, wire := range b.Wires() {
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %s ─ %s (%s)", wire.From, wire.To, wire.Color)))
	}
	for _, sw := range lv.Switches {
		s, _ := b.Switch(sw.ID)
		state := "off"
		if s.On() {
			state = "on"
		}
		fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("  %s [%s] %s", sw.ID, sw.Type, state)))
	}

	style, ok := severityStyles[st.Severity]
	if !ok {
		style = lipgloss.NewStyle()
	}
	fmt.Fprintln(w, style.Render(st.Message))
	if len(st.ShortPath) > 0 {
		fmt.Fprintln(w, "  short: "+strings.Join(st.ShortPath, " → "))
	}
}
