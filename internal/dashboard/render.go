package dashboard

import "github.com/leapstack-labs/tabview/internal/dataset"

// State is the session state the router reads. It is satisfied by
// *session.State.
type State interface {
	HasDataset() bool
	Dataset() *dataset.Dataset
}

// DefaultPreviewRows is how many rows the Load Data page previews.
const DefaultPreviewRows = 50

// Options tune view rendering.
type Options struct {
	// PreviewRows limits the Load Data preview; 0 uses DefaultPreviewRows.
	PreviewRows int
}

func (o Options) previewRows() int {
	if o.PreviewRows <= 0 {
		return DefaultPreviewRows
	}
	return o.PreviewRows
}

// Render evaluates one interaction.
//
// Load Data always renders. Any other page renders only when the session
// holds a dataset; otherwise the output carries MissingDataWarning and no
// view runs.
func Render(state State, page Page, sel Selections, opts Options) Output {
	if page == PageLoadData {
		return loadDataView(state, opts)
	}

	if !state.HasDataset() {
		return Output{
			Page:    page,
			Title:   page.Label(),
			Warning: MissingDataWarning,
		}
	}

	ds := state.Dataset()
	switch page {
	case PageDescription:
		return descriptionView(ds)
	case PageLineChart:
		return lineChartView(ds, sel)
	case PageHistogram:
		return histogramView(ds, sel)
	case PageColumnCount:
		return columnCountView(ds, sel)
	case PageMap:
		return mapView(ds, sel)
	default:
		return loadDataView(state, opts)
	}
}

// resolve returns name when it is a column of ds and the first column otherwise.
func resolve(ds *dataset.Dataset, name string) string {
	if ds.HasColumn(name) {
		return name
	}
	return ds.Columns()[0]
}

// mustColumn returns a column already resolved against ds.
func mustColumn(ds *dataset.Dataset, name string) *dataset.Column {
	col, err := ds.Column(name)
	if err != nil {
		panic(err)
	}
	return col
}
