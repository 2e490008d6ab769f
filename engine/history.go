package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// History is the per-step marking table of one run: one column per
// place (sorted by label, so downstream consumers can locate columns by
// the compiler's naming contract) and one row per recorded marking,
// starting with the initial one.
type History struct {
	Columns []string
	Rows    [][]int
}

func newHistory(columns []string) *History {
	return &History{Columns: columns}
}

func (h *History) record(marking map[string]int) {
	row := make([]int, len(h.Columns))
	for i, col := range h.Columns {
		row[i] = marking[col]
	}
	h.Rows = append(h.Rows, row)
}

// Steps returns the number of fired transitions recorded, excluding the
// initial marking row.
func (h *History) Steps() int {
	if len(h.Rows) == 0 {
		return 0
	}
	return len(h.Rows) - 1
}

// Column returns the index of the named column, or -1 if absent.
func (h *History) Column(name string) int {
	for i, col := range h.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Max returns the maximum value the named column reaches over the run.
func (h *History) Max(name string) (int, bool) {
	idx := h.Column(name)
	if idx < 0 {
		return 0, false
	}
	max := 0
	for _, row := range h.Rows {
		if row[idx] > max {
			max = row[idx]
		}
	}
	return max, true
}

// Final returns the last recorded marking.
func (h *History) Final() map[string]int {
	m := make(map[string]int, len(h.Columns))
	if len(h.Rows) == 0 {
		return m
	}
	last := h.Rows[len(h.Rows)-1]
	for i, col := range h.Columns {
		m[col] = last[i]
	}
	return m
}

// Series returns one column as float64 values, suitable for plotting.
func (h *History) Series(name string) []float64 {
	idx := h.Column(name)
	if idx < 0 {
		return nil
	}
	out := make([]float64, len(h.Rows))
	for i, row := range h.Rows {
		out[i] = float64(row[idx])
	}
	return out
}

// WriteCSV writes the history as CSV: a header of place labels followed
// by one row per marking.
func (h *History) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(h.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(h.Columns))
	for _, row := range h.Rows {
		for i, v := range row {
			record[i] = strconv.Itoa(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a history written by WriteCSV.
func ReadCSV(r io.Reader) (*History, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading history: no header row")
	}
	h := newHistory(records[0])
	for _, record := range records[1:] {
		row := make([]int, len(record))
		for i, field := range record {
			if row[i], err = strconv.Atoi(field); err != nil {
				return nil, fmt.Errorf("reading history: %w", err)
			}
		}
		h.Rows = append(h.Rows, row)
	}
	return h, nil
}

// LoadCSV reads a history from a file.
func LoadCSV(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// SaveCSV writes the history to a file.
func (h *History) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := h.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
