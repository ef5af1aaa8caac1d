package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "PakUni/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "PakUni"
	AppID             = "com.github.pakuni.go-pakuni"
	KeyringService    = "com.github.pakuni.go-pakuni"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefDatasetURL      = "dataset_url"
	PrefUsername        = "username"
	PrefLanguage        = "language"
	PrefInterval        = "refresh_interval_min"
	PrefServerPort      = "server_port"
	PrefSourceMode      = "source_mode"
	PrefSelectedTest    = "selected_test"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastRun         = "last_run_version"

	// StorageKeyOverrides is the single namespaced preferences key holding the
	// JSON-encoded array of user date overrides.
	StorageKeyOverrides = "pakuni_test_dates"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ur"}

// -----------------------------------------------------------------------------
// UI Tests Window Constants
// -----------------------------------------------------------------------------

const (
	// Window Dimensions
	TestsWinWidth     = 560
	TestsWinHeight    = 400
	CountdownWinWidth = 420
	MeritWinWidth     = 480
	EditorWinWidth    = 320

	// Table Column IDs
	ColIDTest = 0
	ColIDDate = 1
	ColIDDays = 2

	// Table Layout
	ColWidthTest = 240
	ColWidthDate = 140
	ColWidthDays = 120

	// Display Formats & Placeholders
	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	OverrideMarker    = " *"
	LogMsgOpenWin     = "Opening Tests Window"
	LogMsgSorted      = "Tests sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Date Editor Bounds
// -----------------------------------------------------------------------------

const (
	MinEditorDay   = 1
	MaxEditorDay   = 31
	MinEditorMonth = 1
	MaxEditorMonth = 12
	MinEditorYear  = 2024
	MaxEditorYear  = 2030
)

// -----------------------------------------------------------------------------
// Countdown Constants
// -----------------------------------------------------------------------------

const (
	// TickInterval is the cadence at which countdown snapshots are published.
	TickInterval = 1 * time.Second

	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	SecondsPerDay    = 86400

	// Display formats for countdown renderings.
	FormatClock   = "%dd %02d:%02d:%02d" // days, hours, minutes, seconds
	FormatCompact = "%s - %s"            // test name, clock
	FormatBigNum  = "%02d"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinTests      = "win_tests_title"
	TKeyWinCountdown  = "win_countdown_title"
	TKeyWinMerit      = "win_merit_title"
	TKeyMenuRefresh   = "menu_refresh"
	TKeyMenuSettings  = "menu_settings"
	TKeyMenuCountdown = "menu_countdown"
	TKeyMenuMerit     = "menu_merit"
	TKeyTrayStatus    = "tray_status"       // Requires Count > 0
	TKeyTrayToday     = "tray_status_today" // Test day is today
	TKeyTrayNone      = "tray_status_none"  // No upcoming test
	TKeyNotifStart    = "notif_refresh_start"
	TKeyNotifSuccess  = "notif_refresh_success"
	TKeyNotifError    = "notif_err_refresh"
	TKeyModeBuiltin   = "mode_builtin"
	TKeyModeWeb       = "mode_web"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblMinutes    = "lbl_minutes_suffix"
	TKeyLblRefresh    = "lbl_refresh_interval"
	TKeyHelpInterval  = "help_interval"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblGeneral    = "lbl_general"
	TKeyLblEnableRem  = "lbl_enable_reminders"
	TKeyUnitDays      = "unit_days"
	TKeyUnitHours     = "unit_hours"
	TKeyUnitMinutes   = "unit_minutes"
	TKeyDirBefore     = "dir_before"
	TKeyDirAfter      = "dir_after"
	TKeyLblNotif      = "lbl_notifications"
	TKeyLblStartDay   = "lbl_start_of_day"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyLblURL        = "lbl_url"
	TKeyHelpURL       = "help_dataset_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyLblSource     = "lbl_source"
	TKeyEvtSummary    = "event_summary" // Requires Name

	// Column Headers & Formats
	TKeyColTest    = "col_test"
	TKeyColDate    = "col_date"
	TKeyColDays    = "col_days"
	TKeyFormatDate = "format_date_short" // Date format pattern (e.g., "2006-01-02")

	// Countdown Window
	TKeyCntDays    = "cnt_days"
	TKeyCntHours   = "cnt_hours"
	TKeyCntMinutes = "cnt_minutes"
	TKeyCntSeconds = "cnt_seconds"
	TKeyCntExpired = "cnt_expired"
	TKeyBtnEdit    = "btn_edit_date"

	// Date Editor
	TKeyEditorTitle  = "editor_title" // Requires Name
	TKeyLblDay       = "lbl_day"
	TKeyLblMonth     = "lbl_month"
	TKeyLblYear      = "lbl_year"
	TKeyErrDayRange  = "err_day_range"
	TKeyErrMonth     = "err_month_range"
	TKeyErrYearRange = "err_year_range"
	TKeyErrNotADate  = "err_not_a_date"
	TKeyErrSaveFail  = "err_save_failed"

	// Merit Calculator
	TKeyLblProgram   = "lbl_program"
	TKeyLblStudent   = "lbl_student_name"
	TKeyLblMatricObt = "lbl_matric_obtained"
	TKeyLblMatricTot = "lbl_matric_total"
	TKeyLblInterObt  = "lbl_inter_obtained"
	TKeyLblInterTot  = "lbl_inter_total"
	TKeyLblTestObt   = "lbl_test_obtained"
	TKeyLblTestTot   = "lbl_test_total"
	TKeyBtnCompute   = "btn_compute"
	TKeyBtnCopyCard  = "btn_copy_card"
	TKeyLblAggregate = "lbl_aggregate" // Requires Value
	TKeyErrScores    = "err_scores"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeBuiltin = "builtin"
	SourceModeWeb     = "web"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	// DefaultReminderValue is the pre-selected reminder amount in the settings UI.
	DefaultReminderValue = 1
	UIDSalt              = "go-pakuni-v1-" // Salt for deterministic UID generation
	DisabledInterval     = 0
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//PakUni//Schedule//EN"
	ICalCalName   = "Entry Tests"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "pakuni"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	// DateFormatISO is the wire format for dataset test dates and persisted
	// override dates (ISO-8601 / RFC 3339).
	DateFormatISO = time.RFC3339
	// DateFormatDateOnly is accepted for dataset entries carrying a bare date.
	DateFormatDateOnly = "2006-01-02"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout        = 30 * time.Second
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	// MaxHTTPResponseSize bounds remote dataset downloads. The dataset is a
	// small JSON document; 8MB leaves headroom without risking memory pressure.
	MaxHTTPResponseSize = 8 * 1024 * 1024
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrDatasetURLEmpty  = "configuration error: dataset URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrDatasetParse     = "failed to parse test dataset"
	ErrDatasetEmpty     = "test dataset contains no usable entries"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrOverrideID       = "override rejected: test identifier is empty"
	ErrOverrideDate     = "override rejected: date is not a valid instant"
	ErrOverrideEncode   = "failed to encode date overrides"
	ErrDayRange         = "day out of range"
	ErrMonthRange       = "month out of range"
	ErrYearRange        = "year out of range"
	ErrNotARealDate     = "day/month/year do not form a real calendar date"
	ErrScoreRange       = "score component out of range"
	ErrWeightSum        = "profile weights must sum to 1"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Schedule initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary     = "Entry test: %s"
	FallbackTrayError   = "PakUni: Refresh Error"
	FallbackTrayDefault = "PakUni (%d days)"
	FallbackTrayLabel   = "PakUni"
	FallbackTestName    = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	// Using a constant avoids hardcoded magic strings in the schedule logic.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleRefreshError = "Refresh Error"

	MsgPortBusy          = "Port %s is busy or unavailable."
	MsgRefreshSuccess    = "Schedule refresh completed successfully."
	MsgRefreshStarted    = "Schedule refresh started..."
	MsgRefreshFailed     = "Schedule refresh failed. Check logs."
	MsgRefreshReq        = "Refresh requested"
	MsgWorkerStart       = "Background worker started"
	MsgWorkerStop        = "Worker stopping due to context cancellation"
	MsgUpdateInterval    = "Updating refresh interval"
	MsgAppStop           = "Application stopped gracefully"
	MsgCtxCancel         = "Context cancelled, shutting down UI"
	MsgSkippedTest       = "Skipping malformed dataset entry"
	MsgGenSuccess        = "Schedule generation successful"
	MsgAppStarting       = "Starting application"
	MsgServerListen      = "HTTP server listening"
	MsgServerStop        = "Shutting down HTTP server..."
	MsgCacheUpdated      = "Schedule cache updated"
	MsgLocaleSkip        = "Skipping non-locale file"
	MsgLocaleBadName     = "Skipping malformed locale filename"
	MsgLocaleLoaded      = "Locale loaded successfully"
	MsgTransMissing      = "Missing translation key"
	MsgPassFail          = "Password retrieval failed (might be empty)"
	MsgLogWarning        = "Warning: %s at %s: %v\n"
	MsgTestToday         = "Entry test is today"
	MsgOverrideSaved     = "Date override saved"
	MsgOverrideLoadFault = "Override store unreadable, falling back to empty mapping"
	MsgTickerStopped     = "Countdown ticker stopped"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_entries"
	LogKeyUpcoming  = "tests_upcoming"
	LogKeyToday     = "tests_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyTestID    = "test_id"
	LogKeyTestDate  = "test_date"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompCountdown = "countdown"
	CompStore     = "store"
	CompDataset   = "dataset"
	CompSchedule  = "schedule"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompWorker    = "worker"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompMerit     = "merit"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
