package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/dataset"
)

// composeEditorDate validates the three date components against the editor
// bounds and builds the resulting date at midnight local time. Combinations
// that pass the per-field ranges but do not exist on the calendar (such as
// day 31 in a 30-day month) are rejected.
func composeEditorDate(day, month, year int) (time.Time, error) {
	if day < config.MinEditorDay || day > config.MaxEditorDay {
		return time.Time{}, errors.New(config.ErrDayRange)
	}
	if month < config.MinEditorMonth || month > config.MaxEditorMonth {
		return time.Time{}, errors.New(config.ErrMonthRange)
	}
	if year < config.MinEditorYear || year > config.MaxEditorYear {
		return time.Time{}, errors.New(config.ErrYearRange)
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	// time.Date normalizes overflowing components, so a round-trip mismatch
	// means the inputs did not name a real calendar date.
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, errors.New(config.ErrNotARealDate)
	}
	return d, nil
}

// ShowDateEditor opens a modal editor for the date of a single test. The
// window pre-fills with the currently effective date (override if present,
// canonical otherwise) and persists the result as an override on save.
func (app *PakUniApp) ShowDateEditor(test dataset.Test, parent fyne.Window) {
	slog.Info("Opening date editor",
		config.LogKeyComponent, config.CompUI,
		config.LogKeyTestID, test.ID)

	w := app.App.NewWindow(fmt.Sprintf(app.GetMsg(config.TKeyEditorTitle), test.Name))

	effective := app.Store.Effective(test.ID, test.Date)

	entryDay := NewNumericalEntry()
	entryDay.SetText(strconv.Itoa(effective.Day()))
	entryDay.Validator = app.rangeValidator(config.MinEditorDay, config.MaxEditorDay, config.TKeyErrDayRange)

	entryMonth := NewNumericalEntry()
	entryMonth.SetText(strconv.Itoa(int(effective.Month())))
	entryMonth.Validator = app.rangeValidator(config.MinEditorMonth, config.MaxEditorMonth, config.TKeyErrMonth)

	entryYear := NewNumericalEntry()
	entryYear.SetText(strconv.Itoa(effective.Year()))
	entryYear.Validator = app.rangeValidator(config.MinEditorYear, config.MaxEditorYear, config.TKeyErrYearRange)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblDay), entryDay),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMonth), entryMonth),
		widget.NewFormItem(app.GetMsg(config.TKeyLblYear), entryYear),
	)

	saveAction := func() {
		day, _ := strconv.Atoi(entryDay.Text)
		month, _ := strconv.Atoi(entryMonth.Text)
		year, _ := strconv.Atoi(entryYear.Text)

		date, err := composeEditorDate(day, month, year)
		if err != nil {
			// Invalid input keeps the editor open so the user can correct it.
			dialog.ShowError(errors.New(app.localizedDateError(err)), w)
			return
		}

		if err := app.Store.Save(test.ID, date); err != nil {
			slog.Error("Failed to persist date override",
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyTestID, test.ID)
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrSaveFail)), w)
			return
		}

		app.applyOverrideChange()
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.EditorWinWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.Show()
}

// rangeValidator returns an entry validator enforcing an inclusive integer
// range, with a localized message on violation.
func (app *PakUniApp) rangeValidator(min, max int, msgKey string) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < min || v > max {
			return fmt.Errorf(app.GetMsg(msgKey)+" (%d-%d)", min, max)
		}
		return nil
	}
}

// localizedDateError maps a composeEditorDate failure to its translated form.
func (app *PakUniApp) localizedDateError(err error) string {
	switch err.Error() {
	case config.ErrDayRange:
		return app.GetMsg(config.TKeyErrDayRange)
	case config.ErrMonthRange:
		return app.GetMsg(config.TKeyErrMonth)
	case config.ErrYearRange:
		return app.GetMsg(config.TKeyErrYearRange)
	default:
		return app.GetMsg(config.TKeyErrNotADate)
	}
}
