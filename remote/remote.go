// Package remote implements a fundamental.Store over an HTTP service that
// publishes one JSON snapshot document per instrument and date:
//
//	GET {base}/{id}/{date}.json
//
//	{ "OperationRatios": { "PaymentTurnover": { "OneYear": 4.2, "SixMonths": 1.1 } } }
//
// A dotted path is looked up in the document as the JSONPath "$.<path>".
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Config holds the parameters of the remote store.
type Config struct {
	BaseURL  string
	APIToken string        // sent as the api_token query parameter, if set
	Timeout  time.Duration // zero means no timeout
	CacheDir string        // daily disk cache of responses, disabled if empty
}

// Store is a fundamental.Store backed by a remote snapshot service.
type Store struct {
	base   *url.URL
	token  string
	client *http.Client
	group  singleflight.Group
}

// New returns a Store for cfg.
func New(cfg Config) (*Store, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote: invalid base url %q", cfg.BaseURL)
	}
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("remote: cannot create cache dir: %w", err)
		}
		client.Transport = &diskCache{base: http.DefaultTransport, dir: cfg.CacheDir}
	}
	return &Store{base: base, token: cfg.APIToken, client: client}, nil
}

// address returns the url of the snapshot of id on date on.
func (s *Store) address(on date.Date, id fundamental.ID) string {
	u := s.base.JoinPath(id.String(), on.String()+".json")
	if s.token != "" {
		q := u.Query()
		q.Set("api_token", s.token)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Get implements fundamental.Store.
func (s *Store) Get(ctx context.Context, on date.Date, id fundamental.ID, path string) (fundamental.Value, error) {
	if err := fundamental.ValidatePath(path); err != nil {
		return fundamental.Absent(), err
	}
	doc, err := s.snapshot(ctx, on, id)
	if err != nil {
		return fundamental.Absent(), err
	}
	if doc == nil {
		return fundamental.Absent(), nil
	}
	return lookup(doc, path)
}

// snapshot returns the decoded document of id on date on, or nil if the
// service has none. Concurrent requests for the same document share a single
// HTTP call. That call is not cancelled with the caller that started it: each
// caller only stops waiting when its own ctx is done.
func (s *Store) snapshot(ctx context.Context, on date.Date, id fundamental.ID) (any, error) {
	addr := s.address(on, id)
	ch := s.group.DoChan(addr, func() (any, error) {
		return jwget(context.WithoutCancel(ctx), s.client, addr)
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("remote: %w: %w", fundamental.ErrStoreUnavailable, ctx.Err())
	case r := <-ch:
		return r.Val, r.Err
	}
}

// jwget performs an HTTP GET request and decodes the JSON response. A 404
// returns a nil document.
func jwget(ctx context.Context, client *http.Client, addr string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: %w: %w", fundamental.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("remote: %w: cannot http GET %v%v: %v", fundamental.ErrStoreUnavailable, req.URL.Host, req.URL.Path, resp.Status)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber() // keep exact decimals
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("remote: %w: invalid document %v%v: %w", fundamental.ErrStoreUnavailable, req.URL.Host, req.URL.Path, err)
	}
	return doc, nil
}

// lookup extracts path from doc. A missing key or a null is Absent.
func lookup(doc any, path string) (fundamental.Value, error) {
	jval, err := jsonpath.Get("$."+path, doc)
	if err != nil {
		// jsonpath reports missing keys as errors.
		return fundamental.Absent(), nil
	}
	// jsonpath may wrap a single answer in a list: keep the first one if any.
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return fundamental.Absent(), nil
		}
		jval = jlist[0]
	}

	switch v := jval.(type) {
	case nil:
		return fundamental.Absent(), nil
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err != nil {
			return fundamental.Absent(), fmt.Errorf("remote: %w: %s: %w", fundamental.ErrStoreUnavailable, path, err)
		}
		return fundamental.V(d), nil
	case float64:
		return fundamental.V(v), nil
	default:
		return fundamental.Absent(), fmt.Errorf("remote: %w: %s is not a number: %v", fundamental.ErrStoreUnavailable, path, jval)
	}
}

// Compile-time interface check.
var _ fundamental.Store = (*Store)(nil)
