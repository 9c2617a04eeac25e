package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the config for:
//   - Required fields and value ranges (struct tags)
//   - Duplicate level ids, and duplicate terminal / switch ids within a level
//   - Source and switch references to terminals that do not exist
//   - Switch terminal counts that do not match the switch type
func Validate(cfg *LabConfig) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	var errs []string

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("config: %w", err)
		}
		for _, fe := range verrs {
			errs = append(errs, describe(fe))
		}
	}

	levels := make(map[string]int)
	for i, lv := range cfg.Levels {
		if lv.ID == "" {
			continue // reported by the struct tags
		}
		if prev, ok := levels[lv.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate level id %q (levels[%d] and levels[%d])", lv.ID, prev, i))
			continue
		}
		levels[lv.ID] = i
		validateLevel(lv, &errs)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func validateLevel(lv LevelDef, errs *[]string) {
	loc := fmt.Sprintf("level %s", lv.ID)
	terms := make(map[string]struct{}, len(lv.Terminals)+2)
	for _, key := range []string{lv.Load.Input, lv.Load.Output} {
		if key != "" {
			terms[key] = struct{}{}
		}
	}
	for _, t := range lv.Terminals {
		if t.ID == "" {
			continue
		}
		if _, dup := terms[t.ID]; dup {
			*errs = append(*errs, fmt.Sprintf("%s: duplicate terminal id %q", loc, t.ID))
			continue
		}
		terms[t.ID] = struct{}{}
	}

	for _, ref := range []struct{ role, key string }{
		{"source.hot", lv.Source.Hot},
		{"source.neutral", lv.Source.Neutral},
	} {
		if ref.key == "" {
			continue
		}
		if _, ok := terms[ref.key]; !ok {
			*errs = append(*errs, fmt.Sprintf("%s: %s references unknown terminal %q", loc, ref.role, ref.key))
		}
		if ref.key == lv.Load.Input || ref.key == lv.Load.Output {
			*errs = append(*errs, fmt.Sprintf("%s: %s must not be a load terminal", loc, ref.role))
		}
	}

	switches := make(map[string]struct{}, len(lv.Switches))
	for j, sw := range lv.Switches {
		swLoc := fmt.Sprintf("%s.switches[%d]", loc, j)
		if sw.ID != "" {
			if _, dup := switches[sw.ID]; dup {
				*errs = append(*errs, fmt.Sprintf("%s: duplicate switch id %q", loc, sw.ID))
			}
			switches[sw.ID] = struct{}{}
			swLoc = fmt.Sprintf("%s switch %s", loc, sw.ID)
		}
		want := 0
		switch sw.Type {
		case "single_pole":
			want = 2
		case "three_way":
			want = 3
		}
		if want != 0 && len(sw.Terminals) != want {
			*errs = append(*errs, fmt.Sprintf("%s: %s needs %d terminals, got %d", swLoc, sw.Type, want, len(sw.Terminals)))
		}
		seen := make(map[string]struct{}, len(sw.Terminals))
		for _, key := range sw.Terminals {
			if key == "" {
				continue
			}
			if _, ok := terms[key]; !ok {
				*errs = append(*errs, fmt.Sprintf("%s: unknown terminal %q", swLoc, key))
			}
			if key == lv.Load.Input || key == lv.Load.Output {
				*errs = append(*errs, fmt.Sprintf("%s: terminal %q belongs to the load", swLoc, key))
			}
			if _, dup := seen[key]; dup {
				*errs = append(*errs, fmt.Sprintf("%s: terminal %q listed twice", swLoc, key))
			}
			seen[key] = struct{}{}
		}
	}
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "LabConfig.")
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s (value %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s: failed %s", field, fe.Tag())
}
