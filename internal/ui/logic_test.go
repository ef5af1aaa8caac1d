package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/stretchr/testify/assert"
)

// TestApp_LoadSourceConfig_Reminders tests the conversion of UI preferences
// into the ISO8601 reminder trigger. By being in package 'ui', we can test
// the private method 'loadSourceConfig'.
func TestApp_LoadSourceConfig_Reminders(t *testing.T) {
	a := test.NewApp()
	// Mock Context and minimal dependencies
	app := &PakUniApp{
		App:         a,
		Preferences: a.Preferences(),
	}

	tests := []struct {
		name        string
		enabled     bool
		val         int
		unit        string
		direction   string
		wantTrigger string // Expected ISO8601 string
	}{
		{
			name:        "Disabled",
			enabled:     false,
			wantTrigger: "",
		},
		{
			name:        "1 Day Before",
			enabled:     true,
			val:         1,
			unit:        config.UnitDays,
			direction:   config.DirBefore,
			wantTrigger: "-P1D",
		},
		{
			name:        "2 Hours After",
			enabled:     true,
			val:         2,
			unit:        config.UnitHours,
			direction:   config.DirAfter,
			wantTrigger: "P2H",
		},
		{
			name:        "30 Minutes Before",
			enabled:     true,
			val:         30,
			unit:        config.UnitMinutes,
			direction:   config.DirBefore,
			wantTrigger: "-P30M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup Preferences
			app.Preferences.SetBool(config.PrefReminderEnabled, tt.enabled)
			app.Preferences.SetInt(config.PrefReminderValue, tt.val)
			app.Preferences.SetString(config.PrefReminderUnit, tt.unit)
			app.Preferences.SetString(config.PrefReminderDir, tt.direction)

			// Execute Logic
			cfg := app.loadSourceConfig()

			// Verify
			assert.Equal(t, tt.wantTrigger, cfg.ReminderTrigger)
		})
	}
}

// TestComposeEditorDate covers range enforcement and calendar validity.
func TestComposeEditorDate(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year int
		wantErr          string
	}{
		{"Valid", 20, 9, 2026, ""},
		{"ValidLeapDay", 29, 2, 2028, ""},
		{"ValidUpperBounds", 31, 12, 2030, ""},
		{"DayTooLow", 0, 9, 2026, config.ErrDayRange},
		{"DayTooHigh", 32, 9, 2026, config.ErrDayRange},
		{"MonthTooLow", 20, 0, 2026, config.ErrMonthRange},
		{"MonthTooHigh", 20, 13, 2026, config.ErrMonthRange},
		{"YearTooLow", 20, 9, 2023, config.ErrYearRange},
		{"YearTooHigh", 20, 9, 2031, config.ErrYearRange},
		{"February31", 31, 2, 2026, config.ErrNotARealDate},
		{"February30", 30, 2, 2026, config.ErrNotARealDate},
		{"NonLeapFeb29", 29, 2, 2026, config.ErrNotARealDate},
		{"April31", 31, 4, 2026, config.ErrNotARealDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := composeEditorDate(tt.day, tt.month, tt.year)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.True(t, got.IsZero())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.day, got.Day())
			assert.Equal(t, tt.month, int(got.Month()))
			assert.Equal(t, tt.year, got.Year())
			assert.Zero(t, got.Hour(), "Composed dates start at midnight")
		})
	}
}
