// Package dataset provides the in-memory tabular model shared by the dashboard
// views and the terminal commands.
//
// A Dataset is an ordered list of named columns. Every column holds values of
// one inferred Kind and all columns share the same row count. Missing values
// are stored as nil. A Dataset is never mutated after New returns it; views
// only read from it or derive new values.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Sentinel errors returned by the dataset package.
var (
	// ErrEmpty is returned when a dataset has no columns or no rows.
	ErrEmpty = errors.New("dataset is empty")
	// ErrUnknownColumn is returned when a column name is not part of the dataset.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("duplicate column name")
	// ErrRaggedColumns is returned when columns differ in length.
	ErrRaggedColumns = errors.New("columns have different lengths")
)

// Kind is the inferred type of a column.
type Kind int

// Column kinds.
const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
	KindTimestamp
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindTimestamp:
		return "timestamp"
	default:
		return "text"
	}
}

// MarshalText encodes the kind as its display name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Numeric reports whether values of this kind can be treated as numbers.
func (k Kind) Numeric() bool {
	return k == KindInteger || k == KindFloat
}

// Column is a named sequence of values of a single kind.
// Values hold int64, float64, bool, string or time.Time; nil marks a missing value.
// The slice must be treated as read-only.
type Column struct {
	Name   string
	Kind   Kind
	Values []any
}

// NonNull returns the number of non-missing values.
func (c *Column) NonNull() int {
	n := 0
	for _, v := range c.Values {
		if v != nil {
			n++
		}
	}
	return n
}

// Float returns the numeric value at row i.
// The second result is false for missing or non-numeric values.
func (c *Column) Float(i int) (float64, bool) {
	if i < 0 || i >= len(c.Values) {
		return 0, false
	}
	return toFloat(c.Values[i])
}

// Floats returns every non-missing numeric value in row order.
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := toFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Dataset is an immutable table of equally sized columns.
type Dataset struct {
	name    string
	columns []Column
	index   map[string]int
	rows    int
}

// New validates the columns and builds a Dataset.
// The dataset must have at least one column and one row.
func New(name string, columns []Column) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrEmpty)
	}

	rows := len(columns[0].Values)
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if _, dup := index[col.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		if len(col.Values) != rows {
			return nil, fmt.Errorf("%w: %q has %d values, expected %d", ErrRaggedColumns, col.Name, len(col.Values), rows)
		}
		index[col.Name] = i
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrEmpty)
	}

	return &Dataset{
		name:    name,
		columns: columns,
		index:   index,
		rows:    rows,
	}, nil
}

// Name returns the name the dataset was loaded under, usually the file name.
func (d *Dataset) Name() string { return d.name }

// Rows returns the number of rows.
func (d *Dataset) Rows() int { return d.rows }

// Width returns the number of columns.
func (d *Dataset) Width() int { return len(d.columns) }

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether name is a column of the dataset.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the column with the given name.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	return &d.columns[i], nil
}

// Head returns up to n rows formatted for display, with missing values rendered
// as empty strings. n <= 0 returns every row.
func (d *Dataset) Head(n int) [][]string {
	if n <= 0 || n > d.rows {
		n = d.rows
	}
	out := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(d.columns))
		for c := range d.columns {
			row[c] = FormatValue(d.columns[c].Values[r])
		}
		out[r] = row
	}
	return out
}

// FormatValue renders a cell value for display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return FormatFloat(val)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 && val.Nanosecond() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.DateTime)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FormatExact renders a cell value without losing precision, so that distinct
// values always render differently.
func FormatExact(v any) string {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return FormatFloat(val)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case time.Time:
		if val.Nanosecond() != 0 {
			return val.Format("2006-01-02 15:04:05.999999999")
		}
		return FormatValue(val)
	default:
		return FormatValue(v)
	}
}

// FormatFloat renders a float with at most six significant decimals.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int64:
		return float64(val), true
	case float64:
		if math.IsNaN(val) {
			return 0, false
		}
		return val, true
	default:
		return 0, false
	}
}
