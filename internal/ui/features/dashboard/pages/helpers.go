package pages

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"

	dash "github.com/leapstack-labs/tabview/internal/dashboard"
	"github.com/leapstack-labs/tabview/internal/dataset"
	"github.com/leapstack-labs/tabview/internal/ui/features/common"
	"github.com/leapstack-labs/tabview/internal/ui/features/dashboard/types"
)

// Helper functions for dashboard page components

const viewAction = "@get('/view')"

func pageSelect(current dash.Page) common.SelectData {
	pages := dash.Pages()
	slugs := make([]string, len(pages))
	labels := make([]string, len(pages))
	for i, p := range pages {
		slugs[i], labels[i] = p.Slug(), p.Label()
	}
	return common.SelectData{
		Label:    "Select a page",
		Signal:   "page",
		Options:  slugs,
		Labels:   labels,
		Selected: current.Slug(),
		Action:   viewAction,
	}
}

func columnSelect(label, signal string, columns []string, selected string) common.SelectData {
	return common.SelectData{
		Label:    label,
		Signal:   signal,
		Options:  columns,
		Selected: selected,
		Action:   viewAction,
	}
}

func signalsJSON(out dash.Output) (string, error) {
	b, err := json.Marshal(types.SignalsFor(out))
	if err != nil {
		return "", fmt.Errorf("failed to encode signals: %w", err)
	}
	return string(b), nil
}

func infoTable(info dataset.Info) common.TableData {
	rows := make([][]string, len(info.Columns))
	for i, c := range info.Columns {
		rows[i] = []string{strconv.Itoa(i), c.Name, fmt.Sprintf("%d non-null", c.NonNull), c.Kind.String()}
	}
	return common.TableData{
		Header:       []string{"#", "Column", "Non-Null Count", "Dtype"},
		Rows:         rows,
		LabelColumns: 2,
	}
}

// describeTable lays the summaries out with one column per dataset column
// and one row per statistic.
func describeTable(d dataset.Description) common.TableData {
	if len(d.Numeric) > 0 {
		header := []string{""}
		stats := []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
		rows := make([][]string, len(stats))
		for i, s := range stats {
			rows[i] = []string{s}
		}
		for _, s := range d.Numeric {
			header = append(header, s.Column)
			values := []float64{float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max}
			for i, v := range values {
				rows[i] = append(rows[i], dataset.FormatFloat(v))
			}
		}
		return common.TableData{Header: header, Rows: rows, LabelColumns: 1}
	}

	header := []string{""}
	rows := [][]string{{"count"}, {"unique"}, {"top"}, {"freq"}}
	for _, s := range d.Categories {
		header = append(header, s.Column)
		rows[0] = append(rows[0], strconv.Itoa(s.Count))
		rows[1] = append(rows[1], strconv.Itoa(s.Unique))
		rows[2] = append(rows[2], s.Top)
		rows[3] = append(rows[3], strconv.Itoa(s.Freq))
	}
	return common.TableData{Header: header, Rows: rows, LabelColumns: 1}
}

func countTable(v *dash.ColumnCountView) common.TableData {
	rows := make([][]string, len(v.Counts))
	for i, vc := range v.Counts {
		rows[i] = []string{vc.Value, strconv.Itoa(vc.Count)}
	}
	return common.TableData{
		Header:       []string{v.Column, "count"},
		Rows:         rows,
		LabelColumns: 1,
	}
}

func droppedNotice(n int) string {
	return fmt.Sprintf("%d rows without coordinates were skipped.", n)
}

func coordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pointsJSON(points []dash.Point) (string, error) {
	b, err := json.Marshal(points)
	if err != nil {
		return "", fmt.Errorf("failed to encode map points: %w", err)
	}
	return string(b), nil
}

func pngSource(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d bytes", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
