// Package export writes generated sequences as CSV or JSON, and the
// scaled bar view as SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/fibviz/internal/fib"
)

type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	SVG  Format = "svg"
)

var ErrUnknownFormat = errors.New("export: unknown format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON, SVG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

type Data struct {
	Terms     int     `json:"terms"`
	Length    int     `json:"length"`
	Truncated bool    `json:"truncated"`
	Values    []int64 `json:"values"`
}

func NewData(terms int) Data {
	seq := fib.Generate(terms)
	return Data{
		Terms:     terms,
		Length:    len(seq),
		Truncated: fib.Truncated(terms, seq),
		Values:    seq,
	}
}

// Write encodes d to w in format f.
func Write(w io.Writer, f Format, d Data) error {
	switch f {
	case CSV:
		return writeCSV(w, d)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case SVG:
		_, err := io.WriteString(w, BarsToSVG(d.Values, svgWidth, svgHeight))
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile writes d to path, or to stdout when path is empty.
func WriteFile(path string, f Format, d Data) error {
	if path == "" {
		return Write(os.Stdout, f, d)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, d); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeCSV(w io.Writer, d Data) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "value"}); err != nil {
		return err
	}
	for i, v := range d.Values {
		if err := cw.Write([]string{strconv.Itoa(i), strconv.FormatInt(v, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// VerifyCSVFile reads a CSV export back and checks it is a valid capped
// sequence.
func VerifyCSVFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	values, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := fib.Verify(values); err != nil {
		return values, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}

// ReadCSV parses the value column written by Write.
func ReadCSV(r io.Reader) ([]int64, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []int64{}, nil
	}

	values := make([]int64, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, fmt.Errorf("row %d: expected 2 fields, got %d", i+1, len(rec))
		}
		v, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		values = append(values, v)
	}
	return values, nil
}
