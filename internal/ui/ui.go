package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/countdown"
	"github.com/pakuni/go-pakuni/internal/dataset"
	"github.com/pakuni/go-pakuni/internal/schedule"
	"github.com/pakuni/go-pakuni/internal/server"
	"github.com/pakuni/go-pakuni/internal/store"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// PakUniApp encapsulates the UI state, preferences, and background logic.
type PakUniApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.ScheduleServer
	Fetcher dataset.Fetcher
	Store   *store.OverrideStore
	Clock   countdown.Clock // Injected clock for testability (e.g. mocking time travel)

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem    *fyne.MenuItem
	TrayCountdownItem *fyne.MenuItem
	TrayMeritItem     *fyne.MenuItem
	TrayRefreshItem   *fyne.MenuItem
	TraySettingsItem  *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Tests State
	TestsMut    sync.RWMutex
	Tests       []dataset.Test
	testsWindow fyne.Window

	countdownWindow    fyne.Window
	countdownTicker    *countdown.Ticker
	countdownReobserve func()
	meritWindow        fyne.Window
}

// NewPakUniApp constructs the application and wires dependencies.
func NewPakUniApp(a fyne.App, ctx context.Context, srv *server.ScheduleServer, fetcher dataset.Fetcher, st *store.OverrideStore) *PakUniApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	return &PakUniApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Store:              st,
		Clock:              countdown.RealClock{}, // Default to real clock in production
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		Tests:              make([]dataset.Test, 0),
	}
}

// Run launches the application services and the main UI loop.
func (app *PakUniApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyPort, app.Server.Port,
			config.LogKeyComponent, config.CompUI)

		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *PakUniApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *PakUniApp) setupTrayMenu() {
	// Status item doubles as a button to open the tests window.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowTestsWindow()
	})

	app.TrayCountdownItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCountdown), func() {
		app.ShowCountdownWindow()
	})

	app.TrayMeritItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuMerit), func() {
		app.ShowMeritWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performRefresh(true)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayCountdownItem,
		app.TrayMeritItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *PakUniApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCountdownItem.Label = app.GetMsg(config.TKeyMenuCountdown)
	app.TrayMeritItem.Label = app.GetMsg(config.TKeyMenuMerit)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker manages the periodic schedule refresh.
func (app *PakUniApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performRefresh(false)

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= 0 {
			val = config.DefaultRefreshMin
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateInterval, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			app.performRefresh(false)
		}
	}
}

// performRefresh executes the pipeline: load dataset, apply overrides,
// rebuild the calendar feed, and update the tray.
func (app *PakUniApp) performRefresh(manual bool) {
	slog.Info(config.MsgRefreshReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	cfg := app.loadSourceConfig()

	tests, err := app.loadTests(cfg)
	if err != nil {
		slog.Error(config.MsgRefreshFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleRefreshError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayError()
		return
	}

	// Thread-safe update of the cached dataset.
	app.TestsMut.Lock()
	app.Tests = tests
	app.TestsMut.Unlock()

	gen := &schedule.Generator{
		Clock:         app.Clock,
		FormatSummary: app.buildSummaryFormatter(),
	}

	icsData, _, err := gen.Build(tests, app.Store.Load(), cfg.ReminderTrigger)
	if err != nil {
		slog.Error(config.MsgRefreshFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleRefreshError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayError()
		return
	}

	app.Server.Update(icsData)
	app.updateTrayStatus(tests)
	app.refreshCountdownTarget()

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// applyOverrideChange re-runs the pipeline after a date override was saved,
// so the feed and every open view pick up the new effective date.
func (app *PakUniApp) applyOverrideChange() {
	go app.performRefresh(false)
}

// nextTest resolves the test the tray and countdown should highlight,
// honoring an explicitly selected test when one is configured.
func (app *PakUniApp) nextTest(tests []dataset.Test) (dataset.Test, bool) {
	explicitID := app.Preferences.String(config.PrefSelectedTest)
	return countdown.Select(tests, explicitID, app.Clock.Now())
}

// updateTrayError marks the tray with the refresh failure label.
func (app *PakUniApp) updateTrayError() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = config.FallbackTrayError
	app.Menu.Refresh()
}

// updateTrayStatus updates the top menu item to show days remaining until the
// next test's effective date.
func (app *PakUniApp) updateTrayStatus(tests []dataset.Test) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	test, ok := app.nextTest(tests)
	if !ok {
		label := app.GetMsg(config.TKeyTrayNone)
		if label == config.TKeyTrayNone {
			label = config.FallbackTrayLabel
		}
		app.TrayStatusItem.Label = label
		app.Menu.Refresh()
		return
	}

	effective := app.Store.Effective(test.ID, test.Date)
	snap := countdown.Remaining(effective, app.Clock.Now())

	var label string
	if snap.Expired || snap.Days == 0 {
		if app.Localizer != nil {
			if msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayToday,
				TemplateData: map[string]interface{}{"Name": test.Name},
			}); err == nil {
				label = msg
			}
		}
	} else {
		if app.Localizer != nil {
			if msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Name": test.Name, "Count": snap.Days},
				PluralCount:  snap.Days,
			}); err == nil {
				label = msg
			}
		}
	}
	if label == "" {
		label = fmt.Sprintf(config.FallbackTrayDefault, snap.Days)
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// sourceConfig contains all parameters required to load the dataset and
// decorate the schedule feed.
type sourceConfig struct {
	Mode            string // config.SourceModeBuiltin or config.SourceModeWeb
	URL             string // Remote dataset URL
	User            string // HTTP Basic Auth Username
	Pass            string // HTTP Basic Auth Password
	ReminderTrigger string // ISO8601 duration string (e.g., "-P1D")
}

// loadSourceConfig assembles the dataset configuration from UI preferences and Keyring.
func (app *PakUniApp) loadSourceConfig() sourceConfig {
	cfg := sourceConfig{
		Mode: app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeBuiltin),
		URL:  app.Preferences.String(config.PrefDatasetURL),
		User: app.Preferences.String(config.PrefUsername),
	}

	if cfg.User != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.User); err == nil {
			cfg.Pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.User,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	if app.Preferences.Bool(config.PrefReminderEnabled) {
		val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
		unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
		dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

		sign := config.ISOPeriodPrefix
		if dir == config.DirBefore {
			sign = config.ISONegativePrefix
		}

		switch unit {
		case config.UnitHours:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISOHour)
		case config.UnitMinutes:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISOMinute)
		default:
			cfg.ReminderTrigger = fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
		}
	}

	return cfg
}

// loadTests resolves the reference dataset from the configured source.
func (app *PakUniApp) loadTests(cfg sourceConfig) ([]dataset.Test, error) {
	switch cfg.Mode {
	case config.SourceModeWeb:
		if cfg.URL == "" {
			return nil, errors.New(config.ErrDatasetURLEmpty)
		}
		if app.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		body, err := app.Fetcher.Fetch(app.Ctx, cfg.URL, cfg.User, cfg.Pass)
		if err != nil {
			return nil, err
		}
		defer func() { _ = body.Close() }()
		return dataset.Parse(body)
	case config.SourceModeBuiltin:
		return dataset.Load()
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *PakUniApp) buildSummaryFormatter() func(name string) string {
	return func(name string) string {
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyEvtSummary,
				TemplateData: map[string]interface{}{"Name": name},
			})
			if err == nil && msg != "" {
				return msg
			}
		}
		return fmt.Sprintf(config.FallbackSummary, name)
	}
}

// refreshCountdownTarget re-resolves the countdown window's effective date.
// Safe to call from the worker goroutine: countdownReobserve is owned by the
// UI thread, so both the nil check and the call happen inside fyne.Do. A
// refresh racing a window close then sees the close handler's nil write
// instead of restarting the ticker for a window that no longer exists.
func (app *PakUniApp) refreshCountdownTarget() {
	fyne.Do(func() {
		if reobserve := app.countdownReobserve; reobserve != nil {
			reobserve()
		}
	})
}

// snapshotTests returns a copy of the cached dataset for display.
func (app *PakUniApp) snapshotTests() []dataset.Test {
	app.TestsMut.RLock()
	defer app.TestsMut.RUnlock()
	tests := make([]dataset.Test, len(app.Tests))
	copy(tests, app.Tests)
	return tests
}
