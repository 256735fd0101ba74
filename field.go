package fundamental

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Field is a multi-period financial field: a Definition bound to a Scope and
// resolved through a Store.
//
// A Field created by NewField is unbound: every accessor reports absence and
// no Store call is ever made. Bind returns a bound copy. Fields hold no mutable
// state and are safe for concurrent use.
type Field struct {
	def      *Definition
	store    Store
	baseline Baseline
	scope    Scope
	bound    bool
}

// NewField returns an unbound field of def, resolved by store. A field without
// a definition, such as the zero Field, reports absence and fails every period
// lookup with ErrUnknownField.
func NewField(def *Definition, store Store) Field {
	return Field{def: def, store: store}
}

// Bind returns a copy of f bound to scope s.
func (f Field) Bind(s Scope) Field {
	f.scope, f.bound = s, true
	return f
}

// WithBaseline returns a copy of f using b as fallback policy. A nil b
// restores the default FirstAvailable policy.
func (f Field) WithBaseline(b Baseline) Field {
	f.baseline = b
	return f
}

// Definition returns the field definition.
func (f Field) Definition() *Definition { return f.def }

// Scope returns the scope and true, or false if the field is unbound.
func (f Field) Scope() (Scope, bool) { return f.scope, f.bound }

// Value resolves the default period. If it is Absent the baseline policy is
// applied, and if that is Absent too, Absent is returned.
func (f Field) Value(ctx context.Context) (Value, error) {
	if !f.bound || f.def == nil {
		return Absent(), nil
	}
	v, err := f.resolve(ctx, f.def.Default())
	if err != nil || v.Present() {
		return v, err
	}
	b := f.baseline
	if b == nil {
		b = FirstAvailable
	}
	return b.Resolve(ctx, f)
}

// HasValue reports whether Value is present.
func (f Field) HasValue(ctx context.Context) (bool, error) {
	v, err := f.Value(ctx)
	return v.Present(), err
}

// PeriodValue resolves a single period given either as a code ("1Y") or as a
// long name ("OneYear").
func (f Field) PeriodValue(ctx context.Context, period string) (Value, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return Absent(), err
	}
	return f.ValueAt(ctx, p)
}

// ValueAt resolves period p. It fails with ErrUnsupportedPeriod if p is not
// declared by the field definition, whatever the Store holds.
func (f Field) ValueAt(ctx context.Context, p Period) (Value, error) {
	if f.def == nil {
		return Absent(), fmt.Errorf("%w: undefined field has no period %s", ErrUnknownField, p)
	}
	if !f.def.Supports(p) {
		return Absent(), fmt.Errorf("%w: %s does not declare %s", ErrUnsupportedPeriod, f.def, p)
	}
	if !f.bound {
		return Absent(), nil
	}
	return f.resolve(ctx, p)
}

// PeriodValues resolves every declared period and returns the present ones.
//
// Periods are resolved concurrently, one Store call each. The first Store
// error cancels the others and is returned.
func (f Field) PeriodValues(ctx context.Context) (PeriodValues, error) {
	values := make(PeriodValues)
	if !f.bound || f.def == nil {
		return values, nil
	}

	results := make([]Value, len(f.def.periods))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range f.def.periods {
		g.Go(func() (err error) {
			results[i], err = f.resolve(gctx, p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range f.def.periods {
		if d, ok := results[i].Decimal(); ok {
			values[p] = d
		}
	}
	return values, nil
}

// resolve asks the store for period p. Errors are returned unmodified.
func (f Field) resolve(ctx context.Context, p Period) (Value, error) {
	return f.store.Get(ctx, f.scope.On(), f.scope.ID(), f.def.Path(p))
}

func (f Field) String() string {
	if f.def == nil {
		return "(undefined)"
	}
	if !f.bound {
		return f.def.String() + "(unbound)"
	}
	return f.def.String() + "(" + f.scope.String() + ")"
}
