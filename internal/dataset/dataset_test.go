package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Dataset {
	t.Helper()
	ds, err := New("sample.csv", []Column{
		{Name: "id", Kind: KindInteger, Values: []any{int64(1), int64(2), int64(3), int64(4)}},
		{Name: "score", Kind: KindFloat, Values: []any{1.5, nil, 3.5, 5.5}},
		{Name: "city", Kind: KindText, Values: []any{"Oslo", "Rome", "Oslo", nil}},
	})
	require.NoError(t, err)
	return ds
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		columns []Column
		wantErr error
	}{
		{
			name:    "no columns",
			columns: nil,
			wantErr: ErrEmpty,
		},
		{
			name:    "no rows",
			columns: []Column{{Name: "a", Values: []any{}}},
			wantErr: ErrEmpty,
		},
		{
			name: "duplicate names",
			columns: []Column{
				{Name: "a", Values: []any{"x"}},
				{Name: "a", Values: []any{"y"}},
			},
			wantErr: ErrDuplicateColumn,
		},
		{
			name: "ragged columns",
			columns: []Column{
				{Name: "a", Values: []any{"x", "y"}},
				{Name: "b", Values: []any{"z"}},
			},
			wantErr: ErrRaggedColumns,
		},
		{
			name: "valid",
			columns: []Column{
				{Name: "a", Values: []any{"x"}},
				{Name: "b", Values: []any{int64(1)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := New("t.csv", tt.columns)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, ds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, ds.Rows())
		})
	}
}

func TestDataset_Accessors(t *testing.T) {
	ds := sample(t)

	assert.Equal(t, "sample.csv", ds.Name())
	assert.Equal(t, 4, ds.Rows())
	assert.Equal(t, 3, ds.Width())
	assert.Equal(t, []string{"id", "score", "city"}, ds.Columns())
	assert.True(t, ds.HasColumn("city"))
	assert.False(t, ds.HasColumn("country"))

	col, err := ds.Column("score")
	require.NoError(t, err)
	assert.Equal(t, KindFloat, col.Kind)
	assert.Equal(t, 3, col.NonNull())
	assert.Equal(t, []float64{1.5, 3.5, 5.5}, col.Floats())

	f, ok := col.Float(1)
	assert.False(t, ok)
	assert.Zero(t, f)

	_, err = ds.Column("country")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDataset_Head(t *testing.T) {
	ds := sample(t)

	head := ds.Head(2)
	require.Len(t, head, 2)
	assert.Equal(t, []string{"1", "1.5", "Oslo"}, head[0])
	assert.Equal(t, []string{"2", "", "Rome"}, head[1])

	assert.Len(t, ds.Head(0), 4)
	assert.Len(t, ds.Head(100), 4)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", int64(42), "42"},
		{"float", 3.25, "3.25"},
		{"nan", math.NaN(), "NaN"},
		{"bool", true, "true"},
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{"timestamp", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), "2024-03-01 12:30:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatValue(tt.input))
		})
	}
}

func TestFormatExact(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"int", int64(42), "42"},
		{"float keeps all digits", 40.7127837, "40.7127837"},
		{"large float", 1234567.0, "1.234567e+06"},
		{"nan", math.NaN(), "NaN"},
		{"date", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{"timestamp", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), "2024-03-01 12:30:00"},
		{"fractional seconds", time.Date(2024, 3, 1, 12, 30, 0, 250_000_000, time.UTC), "2024-03-01 12:30:00.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatExact(tt.input))
		})
	}
}

func TestKind(t *testing.T) {
	assert.True(t, KindInteger.Numeric())
	assert.True(t, KindFloat.Numeric())
	assert.False(t, KindText.Numeric())
	assert.False(t, KindTimestamp.Numeric())
	assert.Equal(t, "boolean", KindBoolean.String())

	text, err := KindFloat.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "float", string(text))
}
