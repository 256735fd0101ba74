package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

const observations = `{ "on":"2023-12-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":3.9 }
{ "on":"2024-03-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":4.2, "OperationRatios.PaymentTurnover.SixMonths":1.1 }
`

// run executes c with args and returns its exit status and output.
func run(t *testing.T, c subcommands.Command, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("invalid arguments %v: %v", args, err)
	}
	return c.Execute(context.Background(), f), buf.String()
}

// setup configures a jsonl store in a temporary folder and imports the
// sample observations into it.
func setup(t *testing.T) string {
	t.Helper()
	folder := t.TempDir()
	t.Setenv("FUNDAMENTAL_STORE_BACKEND", "jsonl")
	t.Setenv("FUNDAMENTAL_JSONL_FOLDER", folder)
	t.Setenv("FUNDAMENTAL_LOG_LEVEL", "error")
	*rawOutput = true

	input := filepath.Join(t.TempDir(), "input.jsonl")
	if err := os.WriteFile(input, []byte(observations), 0o644); err != nil {
		t.Fatal(err)
	}
	status, out := run(t, &importCmd{}, input)
	if status != subcommands.ExitSuccess {
		t.Fatalf("import failed with status %v", status)
	}
	if want := "Successfully imported 3 observations.\n"; out != want {
		t.Errorf("import printed %q, want %q", out, want)
	}
	return folder
}

func TestImportCreatesYearlyFiles(t *testing.T) {
	folder := setup(t)
	for _, name := range []string{"2023.jsonl", "2024.jsonl"} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("expected file %s: %v", name, err)
		}
	}
}

func TestValue(t *testing.T) {
	setup(t)
	testCases := []struct {
		name       string
		args       []string
		wantStatus subcommands.ExitStatus
		want       string
	}{
		{"default period", []string{"-id", "US0378331005.XNAS", "-on", "2024-03-31", "PaymentTurnover"}, subcommands.ExitSuccess, "4.2\n"},
		{"point in time", []string{"-id", "US0378331005.XNAS", "-on", "2024-01-15", "PaymentTurnover"}, subcommands.ExitSuccess, "3.9\n"},
		{"before any data", []string{"-id", "US0378331005.XNAS", "-on", "2020-01-01", "PaymentTurnover"}, subcommands.ExitSuccess, "n/a\n"},
		{"period code", []string{"-id", "US0378331005.XNAS", "-on", "2024-03-31", "-period", "6M", "PaymentTurnover"}, subcommands.ExitSuccess, "1.1\n"},
		{"period long name", []string{"-id", "US0378331005.XNAS", "-on", "2024-03-31", "-period", "SixMonths", "OperationRatios.PaymentTurnover"}, subcommands.ExitSuccess, "1.1\n"},
		{"unsupported period", []string{"-id", "US0378331005.XNAS", "-period", "2Y", "PaymentTurnover"}, subcommands.ExitUsageError, ""},
		{"invalid period", []string{"-id", "US0378331005.XNAS", "-period", "7W", "PaymentTurnover"}, subcommands.ExitUsageError, ""},
		{"unknown field", []string{"-id", "US0378331005.XNAS", "Unknown"}, subcommands.ExitUsageError, ""},
		{"missing id", []string{"PaymentTurnover"}, subcommands.ExitUsageError, ""},
		{"missing field", []string{"-id", "US0378331005.XNAS"}, subcommands.ExitUsageError, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := run(t, &valueCmd{}, tc.args...)
			if status != tc.wantStatus {
				t.Fatalf("value %v = status %v, want %v", tc.args, status, tc.wantStatus)
			}
			if out != tc.want {
				t.Errorf("value %v printed %q, want %q", tc.args, out, tc.want)
			}
		})
	}
}

func TestPeriodsJSON(t *testing.T) {
	setup(t)
	status, out := run(t, &periodsCmd{}, "-id", "US0378331005.XNAS", "-on", "2024-03-31", "-json", "PaymentTurnover")
	if status != subcommands.ExitSuccess {
		t.Fatalf("periods failed with status %v", status)
	}
	if want := "{\"6M\":1.1,\"1Y\":4.2}\n"; out != want {
		t.Errorf("periods printed %q, want %q", out, want)
	}
}

func TestExportJSON(t *testing.T) {
	setup(t)
	status, out := run(t, &exportCmd{}, "-id", "US0378331005.XNAS", "-on", "2024-03-31", "-json")
	if status != subcommands.ExitSuccess {
		t.Fatalf("export failed with status %v", status)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(out)); err != nil {
		t.Fatalf("export printed invalid json %q: %v", out, err)
	}
	if got, want := compact.String(), `{"OperationRatios.PaymentTurnover":{"6M":1.1,"1Y":4.2}}`; got != want {
		t.Errorf("export printed %s, want %s", got, want)
	}
}

func TestFields(t *testing.T) {
	setup(t)
	status, out := run(t, &fieldsCmd{})
	if status != subcommands.ExitSuccess {
		t.Fatalf("fields failed with status %v", status)
	}
	if !bytes.Contains([]byte(out), []byte("OperationRatios.PaymentTurnover")) {
		t.Errorf("fields output misses PaymentTurnover:\n%s", out)
	}
}

func TestImportReadOnlyBackend(t *testing.T) {
	t.Setenv("FUNDAMENTAL_STORE_BACKEND", "memory")
	t.Setenv("FUNDAMENTAL_LOG_LEVEL", "error")
	input := filepath.Join(t.TempDir(), "input.jsonl")
	if err := os.WriteFile(input, []byte(observations), 0o644); err != nil {
		t.Fatal(err)
	}
	if status, _ := run(t, &importCmd{}, input); status != subcommands.ExitFailure {
		t.Errorf("import into memory = status %v, want failure", status)
	}
}
