package fundamental

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSheetExport(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, o := range []Observation{
		{On: reportDay, ID: AAPL, Path: "OperationRatios.PaymentTurnover.OneYear", Value: decimal.RequireFromString("4.2")},
		{On: reportDay, ID: AAPL, Path: "OperationRatios.PaymentTurnover.SixMonths", Value: decimal.RequireFromString("1.1")},
		{On: reportDay, ID: AAPL, Path: "FinancialStatements.BalanceSheet.TotalAssets.TwelveMonths", Value: decimal.RequireFromString("352583000000")},
		// Another instrument must not leak into the sheet.
		{On: reportDay, ID: VOW, Path: "OperationRatios.ROE.OneYear", Value: decimal.RequireFromString("0.08")},
	} {
		if err := store.Put(o); err != nil {
			t.Fatalf("Put() unexpected error: %v", err)
		}
	}

	sheet := NewSheet(Builtin(), store, NewScope(queryDay, AAPL), nil)
	report, err := sheet.Export(ctx)
	if err != nil {
		t.Fatalf("Export() unexpected error: %v", err)
	}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("json.Marshal() unexpected error: %v", err)
	}
	want := `{"FinancialStatements.BalanceSheet.TotalAssets":{"12M":352583000000},"OperationRatios.PaymentTurnover":{"6M":1.1,"1Y":4.2}}`
	if string(data) != want {
		t.Errorf("Export() =\n%s\nwant\n%s", data, want)
	}
}

func TestSheetField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Put(Observation{On: reportDay, ID: AAPL, Path: "OperationRatios.CurrentRatio.ThreeMonths", Value: decimal.RequireFromString("0.99")}); err != nil {
		t.Fatalf("Put() unexpected error: %v", err)
	}

	testCases := []struct {
		name     string
		baseline Baseline
		want     Value
	}{
		{"first available", FirstAvailable, V(0.99)},
		{"none", NoBaseline, Absent()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sheet := NewSheet(Builtin(), store, NewScope(queryDay, AAPL), tc.baseline)
			f, err := sheet.Field("CurrentRatio")
			if err != nil {
				t.Fatalf("Field() unexpected error: %v", err)
			}
			if s, ok := f.Scope(); !ok || s != sheet.Scope() {
				t.Errorf("Field() scope = %v, %v want %v", s, ok, sheet.Scope())
			}
			v, err := f.Value(ctx)
			if err != nil {
				t.Fatalf("Value() unexpected error: %v", err)
			}
			if !v.Equal(tc.want) {
				t.Errorf("Value() = %v, want %v", v, tc.want)
			}
		})
	}

	sheet := NewSheet(Builtin(), store, NewScope(queryDay, AAPL), nil)
	if _, err := sheet.Field("NoSuchRatio"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field(NoSuchRatio) error = %v, want ErrUnknownField", err)
	}
}

func TestSheetAttach(t *testing.T) {
	ctx := context.Background()
	store := newCountingStore(NewMemoryStore())
	sheet := NewSheet(Builtin(), store, NewScope(queryDay, AAPL), NoBaseline)

	unbound := NewField(PaymentTurnover, store)
	if has, _ := unbound.HasValue(ctx); has || store.total() != 0 {
		t.Fatalf("unbound field resolved something")
	}
	bound := sheet.Attach(unbound)
	if _, err := bound.Value(ctx); err != nil {
		t.Fatalf("Value() unexpected error: %v", err)
	}
	// NoBaseline: only the default period is resolved.
	if got := store.total(); got != 1 {
		t.Errorf("store calls = %d, want 1", got)
	}
}
