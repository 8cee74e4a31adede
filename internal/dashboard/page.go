// Package dashboard implements the page router and views of the dashboard.
//
// Every interaction evaluates Render once: the selected page and column
// selections go in, a fully computed Output comes out. Render never touches
// HTTP; the ui package turns an Output into HTML.
package dashboard

import "strings"

// Page identifies one entry of the navigation menu.
type Page int

// Pages, in menu order.
const (
	PageLoadData Page = iota
	PageDescription
	PageLineChart
	PageHistogram
	PageColumnCount
	PageMap
)

var pageMeta = []struct {
	label string
	slug  string
}{
	PageLoadData:    {"Load Data", "load"},
	PageDescription: {"Data Description", "description"},
	PageLineChart:   {"Custom Line Chart", "line-chart"},
	PageHistogram:   {"Histograms", "histograms"},
	PageColumnCount: {"Column Count", "column-count"},
	PageMap:         {"Map Longitude and Latitude", "map"},
}

// Pages returns every page in menu order.
func Pages() []Page {
	return []Page{PageLoadData, PageDescription, PageLineChart, PageHistogram, PageColumnCount, PageMap}
}

// Label returns the menu label.
func (p Page) Label() string {
	if p < 0 || int(p) >= len(pageMeta) {
		return pageMeta[PageLoadData].label
	}
	return pageMeta[p].label
}

// Slug returns the URL-safe identifier.
func (p Page) Slug() string {
	if p < 0 || int(p) >= len(pageMeta) {
		return pageMeta[PageLoadData].slug
	}
	return pageMeta[p].slug
}

// String implements fmt.Stringer.
func (p Page) String() string { return p.Label() }

// NeedsData reports whether the page requires a loaded dataset.
func (p Page) NeedsData() bool { return p != PageLoadData }

// ParsePage resolves a slug or menu label, case-insensitively.
// Anything unrecognised selects the Load Data page, the menu's first entry.
func ParsePage(s string) Page {
	s = strings.TrimSpace(s)
	for i, m := range pageMeta {
		if strings.EqualFold(s, m.slug) || strings.EqualFold(s, m.label) {
			return Page(i)
		}
	}
	return PageLoadData
}
