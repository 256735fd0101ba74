// Package jsonl persists fundamental observations in a folder of human
// readable, git friendly files.
//
// Observations are grouped by year into files named YYYY.jsonl. Each line
// holds every path published for one instrument on one day:
//
//	{ "on":"2024-03-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":4.2 }
//
// Values are written with their exact decimal representation.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
	"github.com/shopspring/decimal"
)

const (
	attrOn    = "on"
	attrID    = "id"
	filesGlob = "[0-9][0-9][0-9][0-9].jsonl"
)

// Load reads all the yearly files of folder into a new MemoryStore.
func Load(folder string) (*fundamental.MemoryStore, error) {
	filenames, err := filepath.Glob(filepath.Join(folder, filesGlob))
	if err != nil {
		return nil, fmt.Errorf("load error: cannot scan folder %q: %w", folder, err)
	}
	store := fundamental.NewMemoryStore()
	for _, filename := range filenames {
		if err := loadFile(store, filename); err != nil {
			return nil, err
		}
	}
	slog.Debug("load-folder", "folder", folder, "files", len(filenames), "observations", store.Len())
	return store, nil
}

func loadFile(store *fundamental.MemoryStore, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("load error: cannot open %q for reading: %w", filename, err)
	}
	defer f.Close()
	return Decode(store, filename, f)
}

// Decode reads lines from r into store. name is for error messages only.
func Decode(store *fundamental.MemoryStore, name string, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		if err := decodeLine(store, scanner.Bytes()); err != nil {
			return fmt.Errorf("parse error %s:%v: %w", name, i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read error %s: %w", name, err)
	}
	return nil
}

// decodeLine loads a single line.
func decodeLine(store *fundamental.MemoryStore, line []byte) error {
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber() // keep exact decimals
	jobj := make(map[string]any)
	if err := dec.Decode(&jobj); err != nil {
		return fmt.Errorf("not a correct json: %w", err)
	}

	jon, ok := jobj[attrOn].(string)
	if !ok {
		return fmt.Errorf("missing the property %q with a date", attrOn)
	}
	on, err := date.Parse(jon)
	if err != nil {
		return fmt.Errorf("property %q must be a valid date: %w", attrOn, err)
	}

	jid, ok := jobj[attrID].(string)
	if !ok {
		return fmt.Errorf("missing the property %q with an instrument id", attrID)
	}
	id, err := fundamental.ParseID(jid)
	if err != nil {
		return fmt.Errorf("property %q: %w", attrID, err)
	}

	// All other attributes are (path, value) pairs.
	for path, jval := range jobj {
		if path == attrOn || path == attrID {
			continue
		}
		num, ok := jval.(json.Number)
		if !ok {
			return fmt.Errorf("property %q must be of type 'number'", path)
		}
		v, err := decimal.NewFromString(num.String())
		if err != nil {
			return fmt.Errorf("property %q: %w", path, err)
		}
		if err := store.Put(fundamental.Observation{On: on, ID: id, Path: path, Value: v}); err != nil {
			return fmt.Errorf("property %q: %w", path, err)
		}
	}
	return nil
}

// encodeLine writes a single line. Map encoding would not be stable, so the
// line is formatted by hand, paths in the given order.
func encodeLine(w io.Writer, on date.Date, id fundamental.ID, obs []fundamental.Observation) error {
	if _, err := fmt.Fprintf(w, "{ %q:%q, %q:%q", attrOn, on.String(), attrID, id.String()); err != nil {
		return err
	}
	for _, o := range obs {
		if _, err := fmt.Fprintf(w, ", %q:%s", o.Path, o.Value.String()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, " }")
	return err
}

// Encode writes observations, as returned by MemoryStore.Observations, to w.
func Encode(w io.Writer, obs []fundamental.Observation) error {
	for start := 0; start < len(obs); {
		end := start + 1
		for end < len(obs) && obs[end].On == obs[start].On && obs[end].ID == obs[start].ID {
			end++
		}
		if err := encodeLine(w, obs[start].On, obs[start].ID, obs[start:end]); err != nil {
			return err
		}
		start = end
	}
	return nil
}

// Persist writes store into folder, one file per year. Yearly files that no
// longer hold any observation are deleted.
func Persist(folder string, store *fundamental.MemoryStore) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("persist error: cannot create folder %q: %w", folder, err)
	}

	// Observations are sorted by date first, so each year is a contiguous run.
	obs := store.Observations()
	created := make(map[string]struct{})
	for start := 0; start < len(obs); {
		year := obs[start].On.Year()
		end := start
		for end < len(obs) && obs[end].On.Year() == year {
			end++
		}
		filename := filepath.Join(folder, fmt.Sprintf("%04d.jsonl", year))
		if err := persistFile(filename, obs[start:end]); err != nil {
			return err
		}
		created[filename] = struct{}{}
		start = end
	}

	filenames, err := filepath.Glob(filepath.Join(folder, filesGlob))
	if err != nil {
		return fmt.Errorf("persist error: cannot scan folder %q for files to be deleted: %w", folder, err)
	}
	for _, filename := range filenames {
		if _, ok := created[filename]; ok {
			continue
		}
		if err := os.Remove(filename); err != nil {
			return fmt.Errorf("persist error: cannot delete %q file: %w", filename, err)
		}
		slog.Info("delete-file", "name", filename)
	}
	return nil
}

func persistFile(filename string, obs []fundamental.Observation) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("persist error: cannot create file %q: %w", filename, err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, obs); err != nil {
		f.Close()
		return fmt.Errorf("persist error: write error on file %q: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("persist error: write error on file %q: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("persist error: cannot close file %q: %w", filename, err)
	}
	slog.Info("create-file", "name", filename, "observations", len(obs))
	return nil
}

