package dataset

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnInfo is one line of the dataset info listing.
type ColumnInfo struct {
	Name    string `json:"name"`
	NonNull int    `json:"non_null"`
	Kind    Kind   `json:"dtype"`
}

// Info summarizes the shape of a dataset.
type Info struct {
	Rows        int          `json:"rows"`
	Columns     []ColumnInfo `json:"columns"`
	MemoryBytes int64        `json:"memory_bytes"`
}

// NumericSummary holds the describe statistics of a numeric column.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategorySummary holds the describe statistics of a non-numeric column.
type CategorySummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	Top    string `json:"top"`
	Freq   int    `json:"freq"`
}

// Description is the result of Describe. Exactly one of the two slices is
// populated: numeric summaries when the dataset has numeric columns,
// category summaries otherwise.
type Description struct {
	Numeric    []NumericSummary
	Categories []CategorySummary
}

// ValueCount is the number of occurrences of one distinct value.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Info lists every column with its non-null count and kind.
func (d *Dataset) Info() Info {
	info := Info{
		Rows:    d.rows,
		Columns: make([]ColumnInfo, len(d.columns)),
	}
	for i := range d.columns {
		col := &d.columns[i]
		info.Columns[i] = ColumnInfo{
			Name:    col.Name,
			NonNull: col.NonNull(),
			Kind:    col.Kind,
		}
		info.MemoryBytes += columnBytes(col)
	}
	return info
}

// Describe computes summary statistics. Numeric columns are summarized when
// present; otherwise every column is summarized as categorical.
func (d *Dataset) Describe() Description {
	var desc Description
	for i := range d.columns {
		col := &d.columns[i]
		if col.Kind.Numeric() {
			desc.Numeric = append(desc.Numeric, SummarizeNumeric(col))
		}
	}
	if len(desc.Numeric) > 0 {
		return desc
	}
	for i := range d.columns {
		desc.Categories = append(desc.Categories, SummarizeCategory(&d.columns[i]))
	}
	return desc
}

// SummarizeNumeric computes count, mean, sample standard deviation, min,
// quartiles and max over the non-missing values of col.
// Statistics of an empty column are NaN.
func SummarizeNumeric(col *Column) NumericSummary {
	vals := col.Floats()
	s := NumericSummary{Column: col.Name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}

	s.Mean, s.Std = stat.MeanStdDev(vals, nil)
	if len(vals) == 1 {
		s.Std = math.NaN()
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Q25 = Quantile(sorted, 0.25)
	s.Q50 = Quantile(sorted, 0.50)
	s.Q75 = Quantile(sorted, 0.75)
	return s
}

// SummarizeCategory computes count, distinct count, most frequent value and
// its frequency over the non-missing values of col.
func SummarizeCategory(col *Column) CategorySummary {
	counts := col.ValueCounts()
	s := CategorySummary{Column: col.Name, Unique: len(counts)}
	for _, vc := range counts {
		s.Count += vc.Count
	}
	if len(counts) > 0 {
		s.Top = counts[0].Value
		s.Freq = counts[0].Count
	}
	return s
}

// Quantile returns the p-quantile of sorted using linear interpolation between
// the closest ranks. sorted must be in ascending order and non-empty.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// ValueCounts counts each distinct non-missing value. Results are ordered by
// count, descending; ties keep the order of first appearance.
func (c *Column) ValueCounts() []ValueCount {
	index := make(map[any]int)
	var out []ValueCount
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		key := countKey(v)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, ValueCount{Value: FormatExact(v), Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

type timeKey int64

// countKey maps a cell value to a comparable key that distinguishes every
// distinct value. Times compare by instant.
func countKey(v any) any {
	switch val := v.(type) {
	case time.Time:
		return timeKey(val.UnixNano())
	case float64:
		if math.IsNaN(val) {
			return "NaN"
		}
		return val
	default:
		return v
	}
}

// columnBytes estimates the in-memory footprint of a column.
func columnBytes(col *Column) int64 {
	var n int64
	for _, v := range col.Values {
		switch val := v.(type) {
		case string:
			n += int64(len(val)) + 16
		case time.Time:
			n += 24
		case nil:
		default:
			n += 8
		}
	}
	return n
}
