package dashboard

import "github.com/leapstack-labs/tabview/internal/dataset"

// MissingDataWarning is shown instead of any data view when no dataset is loaded.
const MissingDataWarning = "Please load a CSV file first."

// Selections are the column choices made in the view widgets.
// Empty or unknown names fall back to the dataset's first column.
type Selections struct {
	X      string `json:"x"`
	Y      string `json:"y"`
	Column string `json:"column"`
	Lat    string `json:"lat"`
	Lon    string `json:"lon"`
}

// FlashKind classifies a one-off notice attached to an output.
type FlashKind string

// Flash kinds.
const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-off notice, such as the result of an upload.
type Flash struct {
	Kind    FlashKind
	Message string
}

// Output is the fully computed result of one interaction.
// When Warning is set, every view field is nil.
type Output struct {
	Page       Page
	Title      string
	Intro      string
	Warning    string
	Flash      *Flash
	Columns    []string
	Selections Selections

	Load        *LoadView
	Description *DescriptionView
	LineChart   *LineChartView
	Histogram   *HistogramView
	ColumnCount *ColumnCountView
	Map         *MapView
}

// Gated reports whether the output is the missing-dataset warning.
func (o Output) Gated() bool { return o.Warning != "" }

// LoadView is the upload page. The preview is only set once data is loaded.
type LoadView struct {
	Loaded  bool
	Name    string
	Rows    int
	Width   int
	Header  []string
	Preview [][]string
}

// DescriptionView holds the info listing and summary statistics.
type DescriptionView struct {
	Info     dataset.Info
	Describe dataset.Description
}

// LineChartView is a line chart of Y against X.
type LineChartView struct {
	X      string
	Y      string
	PNG    []byte
	Notice string
}

// HistogramView is a distribution chart of one column.
type HistogramView struct {
	Column string
	Bins   int
	PNG    []byte
	Notice string
}

// ColumnCountView lists the count of each distinct value of a column.
type ColumnCountView struct {
	Column string
	Counts []dataset.ValueCount
	Total  int
}

// Point is a map marker position.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// MapView is a marker map centred on the mean of the remaining points.
type MapView struct {
	LatColumn string
	LonColumn string
	Center    Point
	Zoom      int
	Points    []Point
	Dropped   int
	Notice    string
}
