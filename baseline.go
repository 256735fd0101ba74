package fundamental

import (
	"context"
	"fmt"
	"strings"
)

// Baseline is the fallback policy applied by Field.Value when the default
// period of a field is Absent. It is independent of any specific metric: it
// only sees the field through its public accessors.
type Baseline interface {
	Resolve(ctx context.Context, f Field) (Value, error)
}

// BaselineFunc adapts an ordinary function to the Baseline interface.
type BaselineFunc func(ctx context.Context, f Field) (Value, error)

// Resolve calls b(ctx, f).
func (b BaselineFunc) Resolve(ctx context.Context, f Field) (Value, error) { return b(ctx, f) }

// FirstAvailable falls back to the first present value among the field's
// declared periods, in declaration order, skipping the default period. Periods
// are resolved one at a time and resolution stops at the first present value.
var FirstAvailable Baseline = firstAvailable{}

// NoBaseline never falls back: a field without a default value is Absent.
var NoBaseline Baseline = noBaseline{}

type firstAvailable struct{}

func (firstAvailable) Resolve(ctx context.Context, f Field) (Value, error) {
	def := f.Definition()
	for _, p := range def.Periods() {
		if p == def.Default() {
			continue
		}
		v, err := f.ValueAt(ctx, p)
		if err != nil || v.Present() {
			return v, err
		}
	}
	return Absent(), nil
}

func (firstAvailable) String() string { return "first-available" }

type noBaseline struct{}

func (noBaseline) Resolve(context.Context, Field) (Value, error) { return Absent(), nil }

func (noBaseline) String() string { return "none" }

// ParseBaseline returns the named policy: "first-available" or "none".
func ParseBaseline(name string) (Baseline, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first-available", "":
		return FirstAvailable, nil
	case "none":
		return NoBaseline, nil
	default:
		return nil, fmt.Errorf("unknown baseline %q", name)
	}
}
