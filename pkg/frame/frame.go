package frame

import (
	"fmt"
	"math"
	"strconv"
)

// NALevel is the reserved categorical level under which missing values are
// grouped. It is a valid lookup key like any other level.
const NALevel = "__NA__"

type columnKind int

const (
	stringKind columnKind = iota
	floatKind
)

type column struct {
	kind columnKind
	str  []string
	f    []float64
}

// Frame is a column-oriented table with named columns. String columns hold
// categorical data ("" means missing), float columns hold numeric data (NaN
// means missing). Frames are never mutated in place: WithFloats and Drop
// return new frames sharing the untouched column storage.
type Frame struct {
	names []string
	cols  map[string]*column
	rows  int
}

func New() *Frame {
	return &Frame{cols: map[string]*column{}}
}

func (fr *Frame) NumRows() int { return fr.rows }

// Names returns the column names in insertion order.
func (fr *Frame) Names() []string { return fr.names }

func (fr *Frame) Has(name string) bool {
	_, ok := fr.cols[name]
	return ok
}

func (fr *Frame) add(name string, col *column, n int) error {
	if _, ok := fr.cols[name]; ok {
		return fmt.Errorf("column %s already present", name)
	}
	if len(fr.names) > 0 && n != fr.rows {
		return fmt.Errorf("column %s has %d rows, frame has %d", name, n, fr.rows)
	}
	fr.rows = n
	fr.names = append(fr.names, name)
	fr.cols[name] = col
	return nil
}

// AddStrings appends a categorical column. Empty cells are missing.
func (fr *Frame) AddStrings(name string, values []string) error {
	return fr.add(name, &column{kind: stringKind, str: values}, len(values))
}

// AddFloats appends a numeric column. NaN cells are missing.
func (fr *Frame) AddFloats(name string, values []float64) error {
	return fr.add(name, &column{kind: floatKind, f: values}, len(values))
}

// Levels returns the canonical level of every row in a column: the raw cell
// for string columns, the formatted value for numeric columns, NALevel for
// missing cells.
func (fr *Frame) Levels(name string) ([]string, error) {
	col, ok := fr.cols[name]
	if !ok {
		return nil, fmt.Errorf("no column %s in frame", name)
	}
	out := make([]string, fr.rows)
	switch col.kind {
	case stringKind:
		for i, v := range col.str {
			if v == "" {
				out[i] = NALevel
			} else {
				out[i] = v
			}
		}
	case floatKind:
		for i, v := range col.f {
			if math.IsNaN(v) {
				out[i] = NALevel
			} else {
				out[i] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
	}
	return out, nil
}

// Floats returns a numeric view of a column, parsing string cells on the fly.
// Missing cells come back as NaN. A non-missing cell that does not parse as a
// number is an error.
func (fr *Frame) Floats(name string) ([]float64, error) {
	col, ok := fr.cols[name]
	if !ok {
		return nil, fmt.Errorf("no column %s in frame", name)
	}
	if col.kind == floatKind {
		return col.f, nil
	}
	out := make([]float64, fr.rows)
	for i, v := range col.str {
		if v == "" {
			out[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: parsing %q: %w", name, i, v, err)
		}
		out[i] = f
	}
	return out, nil
}

func (fr *Frame) shallowCopy() *Frame {
	cp := &Frame{
		names: make([]string, len(fr.names)),
		cols:  make(map[string]*column, len(fr.cols)),
		rows:  fr.rows,
	}
	copy(cp.names, fr.names)
	for name, col := range fr.cols {
		cp.cols[name] = col
	}
	return cp
}

// WithFloats returns a new frame with an extra numeric column appended. The
// receiver is left untouched; existing column storage is shared.
func (fr *Frame) WithFloats(name string, values []float64) (*Frame, error) {
	cp := fr.shallowCopy()
	if err := cp.add(name, &column{kind: floatKind, f: values}, len(values)); err != nil {
		return nil, err
	}
	return cp, nil
}

// Drop returns a new frame without the named columns. Unknown names are
// ignored.
func (fr *Frame) Drop(names ...string) *Frame {
	dropped := make(map[string]struct{}, len(names))
	for _, n := range names {
		dropped[n] = struct{}{}
	}
	cp := &Frame{cols: map[string]*column{}, rows: fr.rows}
	for _, n := range fr.names {
		if _, ok := dropped[n]; ok {
			continue
		}
		cp.names = append(cp.names, n)
		cp.cols[n] = fr.cols[n]
	}
	return cp
}

// cell renders a single value for output.
func (fr *Frame) cell(name string, row int) string {
	col := fr.cols[name]
	switch col.kind {
	case floatKind:
		v := col.f[row]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return col.str[row]
	}
}
