package fundamental

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// exportConcurrency bounds the number of fields resolved at once by Export.
const exportConcurrency = 4

// Sheet binds a catalog of definitions to a single scope. It is the owning
// aggregate of the fields it hands out: they share its store, scope and
// baseline policy.
type Sheet struct {
	catalog  *Catalog
	store    Store
	scope    Scope
	baseline Baseline
}

// NewSheet returns a sheet for scope. A nil baseline means FirstAvailable.
func NewSheet(catalog *Catalog, store Store, scope Scope, baseline Baseline) *Sheet {
	if baseline == nil {
		baseline = FirstAvailable
	}
	return &Sheet{catalog: catalog, store: store, scope: scope, baseline: baseline}
}

// Scope returns the sheet scope.
func (s *Sheet) Scope() Scope { return s.scope }

// Attach binds an unbound field to the sheet scope and baseline policy.
func (s *Sheet) Attach(f Field) Field { return f.Bind(s.scope).WithBaseline(s.baseline) }

// Field returns the bound field for a catalog name or stem.
func (s *Sheet) Field(name string) (Field, error) {
	def, err := s.catalog.Lookup(name)
	if err != nil {
		return Field{}, err
	}
	return s.Attach(NewField(def, s.store)), nil
}

// Export resolves every catalog field and returns their present periods keyed
// by stem. Fields without any present period are omitted.
func (s *Sheet) Export(ctx context.Context) (map[string]PeriodValues, error) {
	var (
		mu  sync.Mutex
		out = make(map[string]PeriodValues)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for def := range s.catalog.Definitions() {
		g.Go(func() error {
			values, err := s.Attach(NewField(def, s.store)).PeriodValues(gctx)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return nil
			}
			mu.Lock()
			out[def.Stem()] = values
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
