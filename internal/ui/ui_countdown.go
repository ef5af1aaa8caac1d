package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/countdown"
	"github.com/pakuni/go-pakuni/internal/dataset"
)

// ShowCountdownWindow displays the live countdown for the selected test.
// It implements a singleton pattern: if the window is already open, it
// requests focus. All three presentation variants are mounted in the window
// and consume the same ticker output.
func (app *PakUniApp) ShowCountdownWindow() {
	if app.countdownWindow != nil {
		app.countdownWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinCountdown))
	app.countdownWindow = w

	captions := Captions{
		Days:    app.GetMsg(config.TKeyCntDays),
		Hours:   app.GetMsg(config.TKeyCntHours),
		Minutes: app.GetMsg(config.TKeyCntMinutes),
		Seconds: app.GetMsg(config.TKeyCntSeconds),
		Expired: app.GetMsg(config.TKeyCntExpired),
	}

	card := NewCountdownView(VariantCard, captions)
	compact := NewCountdownView(VariantCompact, captions)
	mini := NewCountdownView(VariantWidget, captions)

	tests := app.snapshotTests()
	current, _ := app.nextTest(tests)

	fullName := widget.NewLabel("")
	fullName.Alignment = fyne.TextAlignCenter
	fullName.TextStyle = fyne.TextStyle{Italic: true}

	// observe tears down the previous ticker before starting a new one, so a
	// target change never leaves two timers publishing to the same views.
	observe := func(test dataset.Test) {
		if app.countdownTicker != nil {
			app.countdownTicker.Stop()
		}

		current = test
		card.SetTest(test.Name)
		compact.SetTest(test.Name)
		mini.SetTest(test.Name)
		fullName.SetText(test.FullName)

		effective := app.Store.Effective(test.ID, test.Date)
		slog.Debug("Observing countdown target",
			config.LogKeyComponent, config.CompUI,
			config.LogKeyTestID, test.ID,
			config.LogKeyTestDate, effective.Format(config.DateFormatDisplay))

		app.countdownTicker = countdown.Start(app.Clock, config.TickInterval, effective, func(s countdown.Snapshot) {
			// Snapshots arrive on the ticker goroutine; hop to the UI thread.
			fyne.Do(func() {
				card.Apply(s)
				compact.Apply(s)
				mini.Apply(s)
			})
		})
	}

	names := make([]string, len(tests))
	for i, t := range tests {
		names[i] = t.Name
	}
	selector := widget.NewSelect(names, func(selected string) {
		for _, t := range tests {
			if t.Name == selected {
				app.Preferences.SetString(config.PrefSelectedTest, t.ID)
				observe(t)
				return
			}
		}
	})
	// Assign Selected directly: SetSelected would fire the callback, which
	// persists a choice the user never made and observes the target twice.
	selector.Selected = current.Name

	editBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnEdit), theme.DocumentCreateIcon(), func() {
		app.ShowDateEditor(current, w)
	})

	content := container.NewPadded(container.NewVBox(
		selector,
		card.Object(),
		fullName,
		widget.NewSeparator(),
		compact.Object(),
		mini.Object(),
		editBtn,
	))

	// Re-resolution hook used after override saves and dataset refreshes. It
	// only ever runs on the UI thread, so the window check is ordered against
	// the close handler below: a call queued just before the window closed
	// backs out instead of starting a ticker nothing will stop.
	app.countdownReobserve = func() {
		if app.countdownWindow != w {
			return
		}
		tests = app.snapshotTests()
		names = make([]string, len(tests))
		for i, t := range tests {
			names[i] = t.Name
		}
		selector.Options = names
		refreshed, ok := countdown.Select(tests, current.ID, app.Clock.Now())
		if !ok {
			selector.Refresh()
			return
		}
		observe(refreshed)
		selector.Selected = refreshed.Name
		selector.Refresh()
	}

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.CountdownWinWidth, content.MinSize().Height))

	w.SetOnClosed(func() {
		if app.countdownTicker != nil {
			app.countdownTicker.Stop()
			app.countdownTicker = nil
		}
		app.countdownReobserve = nil
		app.countdownWindow = nil
	})

	if current.ID != "" {
		observe(current)
	}
	w.Show()
}
