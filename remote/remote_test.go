package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
)

const snapshot = `{
	"OperationRatios": {
		"PaymentTurnover": { "OneYear": 4.2, "SixMonths": 0, "ThreeMonths": null, "Label": "x" }
	}
}`

var (
	aapl = fundamental.ID("US0378331005.XNAS")
	day  = date.New(2024, 3, 31)
)

// newServer serves snapshot for aapl on day, 404 for other documents and 503
// for the instrument "BROKEN1".
func newServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case fmt.Sprintf("/api/%s/%s.json", aapl, day):
			if r.URL.Query().Get("api_token") != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, snapshot)
		case fmt.Sprintf("/api/BROKEN1/%s.json", day):
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestGet(t *testing.T) {
	var hits atomic.Int32
	ts := newServer(t, &hits)
	s, err := New(Config{BaseURL: ts.URL + "/api", APIToken: "secret"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}

	testCases := []struct {
		name    string
		on      date.Date
		id      fundamental.ID
		path    string
		want    string
		wantErr error
	}{
		{"present", day, aapl, "OperationRatios.PaymentTurnover.OneYear", "4.2", nil},
		{"present zero", day, aapl, "OperationRatios.PaymentTurnover.SixMonths", "0", nil},
		{"null", day, aapl, "OperationRatios.PaymentTurnover.ThreeMonths", "n/a", nil},
		{"missing key", day, aapl, "OperationRatios.PaymentTurnover.TwoYears", "n/a", nil},
		{"missing document", day.Add(1), aapl, "OperationRatios.PaymentTurnover.OneYear", "n/a", nil},
		{"not a number", day, aapl, "OperationRatios.PaymentTurnover.Label", "n/a", fundamental.ErrStoreUnavailable},
		{"server error", day, "BROKEN1", "OperationRatios.PaymentTurnover.OneYear", "n/a", fundamental.ErrStoreUnavailable},
		{"invalid path", day, aapl, "PaymentTurnover", "n/a", fundamental.ErrInvalidPath},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := s.Get(context.Background(), tc.on, tc.id, tc.path)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Get() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get() unexpected error: %v", err)
			}
			if got := v.String(); got != tc.want {
				t.Errorf("Get() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUnreachable(t *testing.T) {
	var hits atomic.Int32
	ts := newServer(t, &hits)
	s, err := New(Config{BaseURL: ts.URL + "/api"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	ts.Close()
	_, err = s.Get(context.Background(), day, aapl, "OperationRatios.PaymentTurnover.OneYear")
	if !errors.Is(err, fundamental.ErrStoreUnavailable) {
		t.Errorf("Get() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestSharedFetchSurvivesCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		fmt.Fprint(w, snapshot)
	}))
	t.Cleanup(ts.Close)

	s, err := New(Config{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	path := "OperationRatios.PaymentTurnover.OneYear"

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := s.Get(ctx, day, aapl, path)
		first <- err
	}()
	<-started

	second := make(chan fundamental.Value, 1)
	go func() {
		v, err := s.Get(context.Background(), day, aapl, path)
		if err != nil {
			t.Errorf("Get() unexpected error: %v", err)
		}
		second <- v
	}()

	cancel()
	if err := <-first; !errors.Is(err, context.Canceled) || !errors.Is(err, fundamental.ErrStoreUnavailable) {
		t.Errorf("cancelled Get() error = %v, want context.Canceled and ErrStoreUnavailable", err)
	}
	close(release)
	if v := <-second; !v.Equal(fundamental.V(4.2)) {
		t.Errorf("Get() = %v, want 4.2", v)
	}
}

func TestDiskCache(t *testing.T) {
	var hits atomic.Int32
	ts := newServer(t, &hits)
	s, err := New(Config{BaseURL: ts.URL + "/api", APIToken: "secret", CacheDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		v, err := s.Get(context.Background(), day, aapl, "OperationRatios.PaymentTurnover.OneYear")
		if err != nil {
			t.Fatalf("Get() unexpected error: %v", err)
		}
		if got := v.String(); got != "4.2" {
			t.Errorf("Get() = %s, want 4.2", got)
		}
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestNewRejectsInvalidURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative"} {
		if _, err := New(Config{BaseURL: base}); err == nil {
			t.Errorf("New(%q) expected an error", base)
		}
	}
}

func TestPeriodValues(t *testing.T) {
	var hits atomic.Int32
	ts := newServer(t, &hits)
	s, err := New(Config{BaseURL: ts.URL + "/api", APIToken: "secret"})
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	f := fundamental.NewField(fundamental.PaymentTurnover, s).Bind(fundamental.NewScope(day, aapl))
	values, err := f.PeriodValues(context.Background())
	if err != nil {
		t.Fatalf("PeriodValues() unexpected error: %v", err)
	}
	data, err := values.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"6M":0,"1Y":4.2}`; got != want {
		t.Errorf("PeriodValues() = %s, want %s", got, want)
	}
}
