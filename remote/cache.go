package remote

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/fundamental/date"
)

// diskCache serves snapshot documents from dir when they were already fetched
// today. Only 2xx responses are kept.
type diskCache struct {
	base http.RoundTripper
	dir  string
}

// entry returns the file holding the response to req fetched today.
func (c *diskCache) entry(req *http.Request) string {
	sum := sha1.Sum([]byte(date.Today().String() + "\n" + req.Method + "\n" + req.URL.String()))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	name := c.entry(req)
	if resp, ok := c.load(name, req); ok {
		slog.Debug("snapshot-cached", "path", req.URL.Path)
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	slog.Debug("snapshot-fetched", "host", req.URL.Host, "path", req.URL.Path, "status", resp.StatusCode)
	if resp.StatusCode/100 == 2 {
		c.save(name, resp)
	}
	return resp, nil
}

func (c *diskCache) load(name string, req *http.Request) (*http.Response, bool) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, false
	}
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(raw)), req)
	if err != nil {
		slog.Warn("snapshot-cache-corrupt", "file", name, "error", err)
		return nil, false
	}
	return resp, true
}

// save writes resp to name. DumpResponse buffers the body and leaves it
// readable for the caller. Failures only cost a later refetch.
func (c *diskCache) save(name string, resp *http.Response) {
	raw, err := httputil.DumpResponse(resp, true)
	if err == nil {
		err = os.WriteFile(name, raw, 0o644)
	}
	if err != nil {
		slog.Warn("snapshot-cache-write", "file", name, "error", err)
	}
}
