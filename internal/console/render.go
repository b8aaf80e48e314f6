package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"admin-datagrid/internal/fetch"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/screen"
	"admin-datagrid/internal/table"
)

// Render writes snap as an aligned table followed by the pager line.
func Render[R model.Record](w io.Writer, snap screen.Snapshot[R], cols []table.Column[R]) {
	switch snap.Status {
	case fetch.StatusLoading:
		fmt.Fprintln(w, "loading...")
		return
	case fetch.StatusError:
		fmt.Fprintf(w, "failed to load: %v (retry to try again)\n", snap.Err)
		return
	}

	selected := make(map[string]bool, len(snap.Table.Selected))
	for _, id := range snap.Table.Selected {
		selected[id] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	titles := []string{" ", "ID"}
	for _, c := range cols {
		titles = append(titles, c.Title+sortMark(snap.Table, c.Key))
	}
	fmt.Fprintln(tw, strings.Join(titles, "\t"))

	for _, r := range snap.Rows {
		mark := " "
		if selected[r.RecordID()] {
			mark = "*"
		}
		cells := []string{mark, r.RecordID()}
		for _, c := range cols {
			cells = append(cells, format(c.Key, c.Value(r)))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	if len(snap.Rows) == 0 {
		fmt.Fprintln(w, "(no records)")
	}
	fmt.Fprintln(w, pager(snap.Controls))
	if snap.Dropped > 0 {
		fmt.Fprintf(w, "%d invalid records hidden\n", snap.Dropped)
	}
	if q := snap.Params.Encode(); q != "" {
		fmt.Fprintf(w, "query: %s\n", q)
	}
}

func sortMark(s table.Snapshot, key string) string {
	for _, k := range s.Sort {
		if k.Column != key {
			continue
		}
		switch k.Direction {
		case table.Asc:
			return " ^"
		case table.Desc:
			return " v"
		}
	}
	return ""
}

func format(key string, v any) string {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.DateTime)
	case float64:
		if key == "score" {
			return model.FormatScore(x)
		}
		return fmt.Sprintf("%.2f", x)
	}
	return fmt.Sprint(v)
}

func pager(c pagination.Controls) string {
	btn := func(label string, ctl pagination.Control) string {
		if ctl.Disabled {
			return "(" + label + ")"
		}
		return "[" + label + "]"
	}
	return fmt.Sprintf("%s %s page %d of %d, %d total %s %s",
		btn("first", c.First), btn("prev", c.Previous),
		c.Summary.CurrentPage, c.Summary.TotalPages, c.Summary.TotalCount,
		btn("next", c.Next), btn("last", c.Last))
}
