package catalog

import (
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// CompileError is a structural problem in a CUE definition.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileEnemy parses one enemy struct. The enemy name is the struct label:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`enemy: grunt: { weight: 1, value: 1, prefab: "g" }`)
//	e, err := CompileEnemy(v.LookupPath(cue.ParsePath("enemy.grunt")))
func CompileEnemy(v cue.Value) (*Enemy, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	e := &Enemy{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		e.Name = labels[len(labels)-1].Unquoted()
	}

	var err error
	if e.Weight, err = requiredInt(v, "weight"); err != nil {
		return nil, err
	}
	if e.Value, err = requiredInt(v, "value"); err != nil {
		return nil, err
	}
	if e.Prefab, err = requiredString(v, "prefab"); err != nil {
		return nil, err
	}
	return e, nil
}

// CompileSpawner parses the spawner block. Missing fields keep their
// defaults; present fields must be in range.
func CompileSpawner(v cue.Value) (SpawnerConfig, error) {
	cfg := DefaultSpawnerConfig()
	if err := v.Err(); err != nil {
		return cfg, formatCUEError(err)
	}

	if f := v.LookupPath(cue.ParsePath("capacity")); f.Exists() {
		n, err := f.Int64()
		if err != nil {
			return cfg, formatCUEError(err)
		}
		if n < 1 || n > MaxCapacity {
			return cfg, &CompileError{
				Field:   "capacity",
				Message: fmt.Sprintf("must be between 1 and %d, got %d", MaxCapacity, n),
				Pos:     f.Pos(),
			}
		}
		cfg.Capacity = int(n)
	}

	if f := v.LookupPath(cue.ParsePath("interval")); f.Exists() {
		d, err := parseInterval(f)
		if err != nil {
			return cfg, err
		}
		cfg.Interval = d
	}

	if f := v.LookupPath(cue.ParsePath("radius")); f.Exists() {
		r, err := f.Float64()
		if err != nil {
			return cfg, formatCUEError(err)
		}
		if r < 0 {
			return cfg, &CompileError{Field: "radius", Message: "must not be negative", Pos: f.Pos()}
		}
		cfg.Radius = r
	}

	return cfg, nil
}

// parseInterval accepts a duration string ("8s", "1500ms") or a number of
// seconds.
func parseInterval(f cue.Value) (time.Duration, error) {
	var d time.Duration
	switch f.IncompleteKind() {
	case cue.StringKind:
		s, err := f.String()
		if err != nil {
			return 0, formatCUEError(err)
		}
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, &CompileError{Field: "interval", Message: err.Error(), Pos: f.Pos()}
		}
	case cue.IntKind:
		n, err := f.Int64()
		if err != nil {
			return 0, formatCUEError(err)
		}
		d = time.Duration(n) * time.Second
	default:
		return 0, &CompileError{Field: "interval", Message: "must be a duration string or seconds", Pos: f.Pos()}
	}
	if d <= 0 {
		return 0, &CompileError{Field: "interval", Message: "must be positive", Pos: f.Pos()}
	}
	return d, nil
}

func requiredInt(v cue.Value, field string) (int, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return 0, &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	n, err := f.Int64()
	if err != nil {
		return 0, &CompileError{Field: field, Message: "must be an integer", Pos: f.Pos()}
	}
	return int(n), nil
}

func requiredString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", &CompileError{Field: field, Message: field + " is required", Pos: v.Pos()}
	}
	s, err := f.String()
	if err != nil {
		return "", &CompileError{Field: field, Message: "must be a string", Pos: f.Pos()}
	}
	return s, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
