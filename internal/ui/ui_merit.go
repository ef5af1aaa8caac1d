package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/merit"
)

// meritWidgets holds references to UI elements to simplify data retrieval
// when computing the aggregate.
type meritWidgets struct {
	profileSelect *widget.Select
	studentEntry  *widget.Entry
	matricObt     *NumericalEntry
	matricTot     *NumericalEntry
	interObt      *NumericalEntry
	interTot      *NumericalEntry
	testObt       *NumericalEntry
	testTot       *NumericalEntry
}

// ShowMeritWindow displays the admission aggregate calculator. It implements
// a singleton pattern: if the window is already open, it requests focus.
func (app *PakUniApp) ShowMeritWindow() {
	if app.meritWindow != nil {
		app.meritWindow.RequestFocus()
		return
	}

	slog.Info("Opening merit calculator", config.LogKeyComponent, config.CompMerit)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinMerit))
	app.meritWindow = w

	mw := &meritWidgets{}

	names := make([]string, len(merit.Profiles))
	for i, p := range merit.Profiles {
		names[i] = p.Name
	}
	mw.profileSelect = widget.NewSelect(names, nil)
	mw.profileSelect.SetSelectedIndex(0)

	mw.studentEntry = widget.NewEntry()

	mw.matricObt = NewNumericalEntry()
	mw.matricTot = NewNumericalEntry()
	mw.interObt = NewNumericalEntry()
	mw.interTot = NewNumericalEntry()
	mw.testObt = NewNumericalEntry()
	mw.testTot = NewNumericalEntry()

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblProgram), mw.profileSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblStudent), mw.studentEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMatricObt), mw.matricObt),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMatricTot), mw.matricTot),
		widget.NewFormItem(app.GetMsg(config.TKeyLblInterObt), mw.interObt),
		widget.NewFormItem(app.GetMsg(config.TKeyLblInterTot), mw.interTot),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTestObt), mw.testObt),
		widget.NewFormItem(app.GetMsg(config.TKeyLblTestTot), mw.testTot),
	)

	resultLabel := widget.NewLabel("")
	resultLabel.Alignment = fyne.TextAlignCenter
	resultLabel.TextStyle = fyne.TextStyle{Bold: true}

	var lastCard string

	btnCopy := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCopyCard), theme.ContentCopyIcon(), func() {
		if lastCard == "" {
			return
		}
		w.Clipboard().SetContent(lastCard)
	})
	btnCopy.Disable()

	computeAction := func() {
		scores, err := mw.readScores()
		if err != nil {
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrScores)), w)
			return
		}

		profile := merit.Profiles[0]
		for _, p := range merit.Profiles {
			if p.Name == mw.profileSelect.Selected {
				profile = p
				break
			}
		}

		result, err := merit.Compute(scores, profile)
		if err != nil {
			slog.Warn("Aggregate computation rejected input",
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompMerit)
			dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrScores)), w)
			return
		}

		resultLabel.SetText(fmt.Sprintf(app.GetMsg(config.TKeyLblAggregate), result.Aggregate))
		lastCard = result.ShareCard(mw.studentEntry.Text)
		btnCopy.Enable()
	}

	btnCompute := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCompute), theme.ConfirmIcon(), computeAction)
	btnCompute.Importance = widget.HighImportance

	content := container.NewPadded(container.NewVBox(
		form,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCompute, btnCopy),
		resultLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.MeritWinWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.meritWindow = nil })
	w.Show()
}

// readScores parses the six numeric fields. An unparsable field is an input
// error; range validation happens in the merit package.
func (mw *meritWidgets) readScores() (merit.Scores, error) {
	var s merit.Scores

	pairs := map[*NumericalEntry]*float64{
		mw.matricObt: &s.MatricObtained,
		mw.matricTot: &s.MatricTotal,
		mw.interObt:  &s.InterObtained,
		mw.interTot:  &s.InterTotal,
		mw.testObt:   &s.TestObtained,
		mw.testTot:   &s.TestTotal,
	}
	for entry, dst := range pairs {
		v, err := strconv.ParseFloat(entry.Text, 64)
		if err != nil {
			return merit.Scores{}, err
		}
		*dst = v
	}
	return s, nil
}
