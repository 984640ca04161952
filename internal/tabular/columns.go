package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column describes one expected CSV column.
type Column struct {
	Name     string
	Aliases  []string
	Nullable bool
	Optional bool
	// NullWords are extra case-insensitive values read as null for this column only.
	NullWords []string
}

func (c Column) isNull(raw string) bool {
	if IsNull(raw) {
		return true
	}
	for _, w := range c.NullWords {
		if strings.EqualFold(raw, w) {
			return true
		}
	}
	return false
}

var nullTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"<NA>": {},
	"#N/A": {},
}

// IsNull reports whether raw is one of the recognised null tokens.
func IsNull(raw string) bool {
	_, ok := nullTokens[strings.TrimSpace(raw)]
	return ok
}

// header maps column names to record positions.
type header struct {
	dataset string
	index   map[string]int
	columns map[string]Column
}

func newHeader(dataset string, names []string, cols []Column) (header, error) {
	positions := make(map[string]int, len(names))
	for i, name := range names {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := positions[name]; !dup {
			positions[name] = i
		}
	}
	h := header{
		dataset: dataset,
		index:   make(map[string]int, len(cols)),
		columns: make(map[string]Column, len(cols)),
	}
	for _, col := range cols {
		h.columns[col.Name] = col
		pos, ok := lookup(positions, col)
		if !ok {
			if col.Optional {
				continue
			}
			return header{}, fmt.Errorf("%s: %w %q", dataset, ErrMissingColumn, col.Name)
		}
		h.index[col.Name] = pos
	}
	return h, nil
}

func lookup(positions map[string]int, col Column) (int, bool) {
	if pos, ok := positions[col.Name]; ok {
		return pos, true
	}
	for _, alias := range col.Aliases {
		if pos, ok := positions[alias]; ok {
			return pos, true
		}
	}
	return 0, false
}

// text returns the trimmed value for column, or "" when it is null and allowed to be.
func (h header) text(line int, record []string, column string) (string, error) {
	col := h.columns[column]
	pos, ok := h.index[column]
	if !ok {
		return "", nil
	}
	raw := ""
	if pos < len(record) {
		raw = strings.TrimSpace(record[pos])
	}
	if col.isNull(raw) {
		if col.Nullable || col.Optional {
			return "", nil
		}
		return "", &RowError{Dataset: h.dataset, Line: line, Column: column, Err: ErrUnexpectedNull}
	}
	return raw, nil
}

// integer parses column as an int; float text truncates toward zero.
func (h header) integer(line int, record []string, column string) (int, error) {
	raw, err := h.text(line, record, column)
	if err != nil {
		return 0, err
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &RowError{Dataset: h.dataset, Line: line, Column: column, Err: fmt.Errorf("%w %q", ErrInvalidValue, raw)}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt32+1 || f <= math.MinInt32-1 {
		return 0, &RowError{Dataset: h.dataset, Line: line, Column: column, Err: fmt.Errorf("%w %q", ErrInvalidValue, raw)}
	}
	return int(f), nil
}
