// Package common provides shared types and components for UI features.
package common

// NoticeKind selects the styling of a Notice.
type NoticeKind string

// Notice kinds.
const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// SelectData describes a column dropdown bound to a datastar signal.
type SelectData struct {
	Label   string
	Signal  string
	Options []string
	// Labels are the display texts of Options; the option value is shown when empty.
	Labels   []string
	Selected string
	// Action is the datastar expression run on change, e.g. "@get('/view')".
	Action string
}

// TableData is a simple header plus rows table.
type TableData struct {
	Header []string
	Rows   [][]string
	// LabelColumns is the number of leading columns rendered left-aligned.
	LabelColumns int
}

// Class returns the CSS classes for the notice kind.
func (k NoticeKind) Class() string {
	return "notice notice--" + string(k)
}

// OptionLabel returns the display text of option i.
func (d SelectData) OptionLabel(i int) string {
	if i < len(d.Labels) && d.Labels[i] != "" {
		return d.Labels[i]
	}
	return d.Options[i]
}

// IsLabel reports whether column i is one of the leading label columns.
func (d TableData) IsLabel(i int) bool {
	return i < d.LabelColumns
}
