package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/fibviz/internal/fib"
)

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" CSV "); err != nil || f != CSV {
		t.Errorf("expected csv, got %q %v", f, err)
	}
	if f, err := ParseFormat("json"); err != nil || f != JSON {
		t.Errorf("expected json, got %q %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestNewData(t *testing.T) {
	d := NewData(100)
	if d.Length != 69 || !d.Truncated {
		t.Errorf("expected 69 capped values, got %d truncated=%v", d.Length, d.Truncated)
	}
	if d := NewData(10); d.Truncated || d.Length != 10 {
		t.Errorf("10 terms should not be truncated: %+v", d)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, CSV, NewData(6)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	want := "index,value\n0,0\n1,1\n2,1\n3,2\n4,3\n5,5\n"
	if buf.String() != want {
		t.Errorf("unexpected csv:\n%s", buf.String())
	}

	values, err := ReadCSV(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !reflect.DeepEqual(values, fib.Generate(6)) {
		t.Errorf("values mismatch: %v", values)
	}
}

func TestReadCSVRejectsGarbage(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("index,value\n0,x\n")); err == nil {
		t.Error("expected parse error")
	}
	values, err := ReadCSV(strings.NewReader("index,value\n"))
	if err != nil || len(values) != 0 {
		t.Errorf("header-only csv should be empty, got %v %v", values, err)
	}
}

func TestVerifyCSVFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	if err := WriteFile(good, CSV, NewData(30)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	values, err := VerifyCSVFile(good)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if len(values) != 30 {
		t.Errorf("expected 30 values, got %d", len(values))
	}

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("index,value\n0,0\n1,1\n2,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := VerifyCSVFile(bad); !errors.Is(err, fib.ErrRecurrence) {
		t.Errorf("expected ErrRecurrence, got %v", err)
	}

	if _, err := VerifyCSVFile(filepath.Join(dir, "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.json")
	if err := WriteFile(path, JSON, NewData(12)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Data
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.Terms != 12 || got.Length != 12 || got.Truncated {
		t.Errorf("unexpected header: %+v", got)
	}
	if err := fib.Verify(got.Values); err != nil {
		t.Errorf("exported values fail verification: %v", err)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, Format("xml"), NewData(3)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestBarsToSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, SVG, NewData(30)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("not an svg document:\n%s", out)
	}
	if got := strings.Count(out, "<title>"); got != 20 {
		t.Errorf("expected 20 bars, got %d", got)
	}
	if !strings.Contains(out, "<title>n=19: 4181</title>") {
		t.Error("missing tooltip for last visible bar")
	}
	if !strings.Contains(out, `fill="#3b82f6"`) {
		t.Error("first bar should use the first palette color")
	}
}

func TestBarsToSVGEmpty(t *testing.T) {
	out := BarsToSVG(nil, 100, 100)
	if strings.Contains(out, "<title>") {
		t.Error("empty sequence should draw no bars")
	}
}
