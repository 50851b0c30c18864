package ui

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-celebrate/internal/config"
	"github.com/tartampluch/go-celebrate/internal/display"
)

// timelineRow is a timeline event prepared for display and sorting.
type timelineRow struct {
	date  time.Time
	dated bool // false when the date could not be parsed
	when  string
	title string
	story string
}

func newTimelineRow(e config.TimelineEvent) timelineRow {
	row := timelineRow{when: e.Date, title: e.Title, story: e.Description}
	if d, err := time.Parse(config.DateFormatTimeline, e.Date); err == nil {
		row.date, row.dated = d, true
		row.when = d.Format(config.DateFormatDisplay)
	}
	return row
}

// timelineTable lists the timeline events in a table sortable by header tap.
// The default order is chronological.
type timelineTable struct {
	catalog *display.Catalog
	rows    []timelineRow
	col     int
	asc     bool
	table   *widget.Table
}

func newTimelineTable(catalog *display.Catalog, events []config.TimelineEvent) *timelineTable {
	t := &timelineTable{
		catalog: catalog,
		rows:    make([]timelineRow, 0, len(events)),
		col:     config.ColIDDate,
		asc:     true,
	}
	for _, e := range events {
		t.rows = append(t.rows, newTimelineRow(e))
	}
	t.sort()
	return t
}

// sortBy switches to col, or flips the direction when col is already active.
func (t *timelineTable) sortBy(col int) {
	if t.col == col {
		t.asc = !t.asc
	} else {
		t.col = col
		t.asc = true
	}
	t.sort()
	if t.table != nil {
		t.table.Refresh()
	}
}

func (t *timelineTable) sort() {
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.rows[i], t.rows[j]
		var less bool
		switch t.col {
		case config.ColIDTitle:
			less = strings.ToLower(a.title) < strings.ToLower(b.title)
		case config.ColIDStory:
			less = strings.ToLower(a.story) < strings.ToLower(b.story)
		default:
			switch {
			case a.dated != b.dated:
				// Undated events go last in ascending order.
				less = a.dated
			case a.date.Equal(b.date):
				less = a.title < b.title
			default:
				less = a.date.Before(b.date)
			}
		}
		if !t.asc {
			return !less
		}
		return less
	})

	slog.Debug(config.MsgTimelineSort,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyColumn, t.col,
		config.LogKeyAscending, t.asc)
}

func (t *timelineTable) cell(row, col int) string {
	r := t.rows[row]
	switch col {
	case config.ColIDTitle:
		return r.title
	case config.ColIDStory:
		return r.story
	default:
		return r.when
	}
}

func (t *timelineTable) header(col int) string {
	key := config.TKeyColDate
	switch col {
	case config.ColIDTitle:
		key = config.TKeyColTitle
	case config.ColIDStory:
		key = config.TKeyColStory
	}

	text := t.catalog.Msg(key, nil)
	if col == t.col {
		if t.asc {
			text += config.SortIconAsc
		} else {
			text += config.SortIconDesc
		}
	}
	return text
}

// object builds the Fyne table. Headers are buttons that re-sort the rows.
func (t *timelineTable) object() fyne.CanvasObject {
	t.table = widget.NewTable(
		func() (int, int) {
			return len(t.rows), 3
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row >= len(t.rows) {
				return
			}
			o.(*widget.Label).SetText(t.cell(id.Row, id.Col))
		},
	)

	t.table.ShowHeaderRow = true
	t.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	t.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		btn.SetText(t.header(id.Col))
		btn.OnTapped = func() { t.sortBy(id.Col) }
	}

	t.table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	t.table.SetColumnWidth(config.ColIDTitle, config.ColWidthTitle)
	t.table.SetColumnWidth(config.ColIDStory, config.ColWidthStory)

	// A table has no minimum height of its own inside a VBox.
	return container.NewGridWrap(fyne.NewSize(config.ColWidthDate+config.ColWidthTitle+config.ColWidthStory, config.TableHeight), t.table)
}
