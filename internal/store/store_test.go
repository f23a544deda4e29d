package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/theirongolddev/dials/internal/model"
)

func sample() model.Budget {
	return model.Budget{
		Income: 4_000_000,
		Fixed:  model.FixedCosts{Rent: 1_200_000, Utilities: 300_000, Other: 100_000},
		Future: model.FutureAllocation{Savings: 400_000, Investment: 400_000},
		Dials: []model.Dial{
			{ID: "1", Name: "Food", Value: 600_000, Description: "eating out with friends"},
			{ID: "2", Name: "Travel", Value: 0},
		},
	}
}

func roundTrip(t *testing.T, b Backend, c Codec) {
	t.Helper()

	if _, err := b.Get(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty backend err = %v, want ErrNotFound", err)
	}

	data, err := c.Encode(sample())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := b.Put(data); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := b.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var decoded model.Budget
	if err := c.Decode(got, &decoded); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, sample()) {
		t.Fatalf("decoded = %+v, want %+v", decoded, sample())
	}
}

func TestFileBackendJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "budget.json")
	roundTrip(t, NewFileBackend(path), JSONCodec{})

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("data dir has %d entries, want only the blob", len(entries))
	}
}

func TestMemoryBackendCBOR(t *testing.T) {
	roundTrip(t, NewMemoryBackend(), CBORCodec{})
}

func TestSQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dials.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = b.Close() }()

	roundTrip(t, b, JSONCodec{})

	if err := b.Put([]byte(`{"income":1}`)); err != nil {
		t.Fatalf("second Put: %v", err)
	}
	got, _ := b.Get()
	if string(got) != `{"income":1}` {
		t.Fatalf("Get after overwrite = %q", got)
	}

	at, err := b.UpdatedAt()
	if err != nil || at.IsZero() {
		t.Fatalf("UpdatedAt = %v, %v; want a timestamp", at, err)
	}
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dials.db")
	b, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := b.Put([]byte("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	_ = b.Close()

	b2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = b2.Close() }()
	got, err := b2.Get()
	if err != nil || string(got) != "x" {
		t.Fatalf("Get after reopen = %q, %v", got, err)
	}
}

func TestJSONCodecAcceptsComments(t *testing.T) {
	src := []byte(`{
		// hand edited
		"income": 1000,
		"fixed": {"rent": 400,},
		"dials": [{"id": "a", "name": "Coffee", "value": 50},],
	}`)

	var b model.Budget
	if err := (JSONCodec{}).Decode(src, &b); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if b.Income != 1000 || b.Fixed.Rent != 400 || len(b.Dials) != 1 {
		t.Fatalf("decoded = %+v", b)
	}
}

func TestJSONCodecRejectsGarbage(t *testing.T) {
	var b model.Budget
	if err := (JSONCodec{}).Decode([]byte("{not json"), &b); err == nil {
		t.Fatal("Decode of garbage succeeded, want error")
	}
}

func TestJSONCodecOmitsEmptyDescription(t *testing.T) {
	data, err := JSONCodec{}.Encode(model.Budget{Dials: []model.Dial{{ID: "a", Name: "x"}}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if bytes.Contains(data, []byte("description")) {
		t.Fatalf("encoded %s contains empty description", data)
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	a, _ := CBORCodec{}.Encode(sample())
	b, _ := CBORCodec{}.Encode(sample())
	if !bytes.Equal(a, b) {
		t.Fatal("CBOR encoding differs between identical budgets")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	b, c, err := Open(Options{Backend: "file", Format: "cbor", Dir: dir})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	fb, ok := b.(*FileBackend)
	if !ok {
		t.Fatalf("backend = %T, want *FileBackend", b)
	}
	if fb.Path() != filepath.Join(dir, "budget.cbor") {
		t.Fatalf("path = %s", fb.Path())
	}
	if _, ok := c.(CBORCodec); !ok {
		t.Fatalf("codec = %T, want CBORCodec", c)
	}

	if _, _, err := Open(Options{Backend: "redis"}); err == nil {
		t.Fatal("Open with unknown backend succeeded")
	}
	if _, _, err := Open(Options{Format: "xml"}); err == nil {
		t.Fatal("Open with unknown format succeeded")
	}
}
