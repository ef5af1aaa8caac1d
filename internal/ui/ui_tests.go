package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/countdown"
	"github.com/pakuni/go-pakuni/internal/dataset"
)

// testRow is a display-ready row of the tests table. Dates reflect any user
// override, and overridden rows carry a marker next to the date.
type testRow struct {
	test       dataset.Test
	effective  string
	daysLeft   int
	expired    bool
	overridden bool
}

// ShowTestsWindow displays a window listing all known entry tests with their
// effective dates and days remaining. It implements a singleton pattern: if
// the window is already open, it requests focus. Selecting a row opens the
// date editor for that test. It uses native Fyne table headers for sorting
// interaction.
func (app *PakUniApp) ShowTestsWindow() {
	if app.testsWindow != nil {
		app.testsWindow.RequestFocus()
		return
	}

	title := app.GetMsg(config.TKeyWinTests)
	app.testsWindow = app.App.NewWindow(title)
	app.testsWindow.Resize(fyne.NewSize(config.TestsWinWidth, config.TestsWinHeight))

	tests := app.snapshotTests()
	overrides := app.Store.Load()
	now := app.Clock.Now()

	format := app.GetMsg(config.TKeyFormatDate)
	if format == config.TKeyFormatDate {
		format = config.DateFormatDisplay
	}

	rows := make([]testRow, 0, len(tests))
	for _, t := range tests {
		effective := app.Store.Effective(t.ID, t.Date)
		_, overridden := overrides[t.ID]

		display := effective.Format(format)
		if overridden {
			display += config.OverrideMarker
		}

		s := countdown.Remaining(effective, now)
		rows = append(rows, testRow{
			test:       t,
			effective:  display,
			daysLeft:   s.Days,
			expired:    s.Expired,
			overridden: overridden,
		})
	}

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	// Internal Sorting State
	currentSortCol := config.ColIDDate
	sortAsc := true

	var refreshTable func()

	// performSort applies the sorting logic based on the selected column.
	performSort := func() {
		sort.Slice(rows, func(i, j int) bool {
			a, b := rows[i], rows[j]
			var less bool
			switch currentSortCol {
			case config.ColIDTest:
				less = strings.ToLower(a.test.Name) < strings.ToLower(b.test.Name)
			case config.ColIDDays:
				// Expired tests sink to the bottom in ascending order.
				if a.expired != b.expired {
					less = !a.expired
				} else {
					less = a.daysLeft < b.daysLeft
				}
			default: // config.ColIDDate
				if a.effective == b.effective {
					// Secondary sort key: Name
					less = a.test.Name < b.test.Name
				} else {
					less = a.effective < b.effective
				}
			}

			if !sortAsc {
				return !less
			}
			return less
		})

		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
	}

	// Initial sort (Default: By Date, Ascending)
	performSort()

	// --- UI Table Component ---

	table := widget.NewTable(
		// Length callback
		func() (int, int) {
			return len(rows), 3
		},
		// Create cell callback
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		// Update cell callback
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			r := rows[id.Row]

			switch id.Col {
			case config.ColIDTest:
				label.SetText(r.test.Name)
			case config.ColIDDate:
				label.SetText(r.effective)
			case config.ColIDDays:
				if r.expired {
					label.SetText(app.GetMsg(config.TKeyCntExpired))
				} else {
					label.SetText(fmt.Sprintf("%d", r.daysLeft))
				}
			}
		},
	)

	// --- Header Configuration (Fyne Native) ---

	table.ShowHeaderRow = true

	// CreateHeader returns a button for interactivity.
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}

	// UpdateHeader sets the localized title and visual sort indicator.
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDTest:
			titleKey = config.TKeyColTest
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDDays:
			titleKey = config.TKeyColDays
		}

		text := app.GetMsg(titleKey)

		// Append sort indicator if this is the active column
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}

		btn.SetText(text)

		// Set OnTapped handler to trigger sorting
		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	// Row selection opens the date editor for that test.
	table.OnSelected = func(id widget.TableCellID) {
		table.UnselectAll()
		if id.Row < 0 || id.Row >= len(rows) {
			return
		}
		app.ShowDateEditor(rows[id.Row].test, app.testsWindow)
	}

	// Set column widths based on configuration
	table.SetColumnWidth(config.ColIDTest, config.ColWidthTest)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDDays, config.ColWidthDays)

	refreshTable = func() {
		performSort()
		table.Refresh()
	}

	// Layout Assembly
	content := container.NewBorder(nil, nil, nil, nil, table)
	app.testsWindow.SetContent(content)

	// Cleanup on close
	app.testsWindow.SetOnClosed(func() {
		app.testsWindow = nil
	})

	app.testsWindow.Show()
}
