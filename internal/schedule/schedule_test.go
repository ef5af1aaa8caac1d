package schedule_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/dataset"
	"github.com/pakuni/go-pakuni/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

func newGenerator(now time.Time) *schedule.Generator {
	return &schedule.Generator{Clock: stubClock{now: now}}
}

func sampleTests() []dataset.Test {
	return []dataset.Test{
		{ID: "mdcat", Name: "MDCAT", FullName: "Medical and Dental College Admission Test", Date: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "ecat", Name: "ECAT", Date: time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC)},
	}
}

// TestBuild_OneEventPerTest verifies the core generation path.
func TestBuild_OneEventPerTest(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))

	data, today, err := gen.Build(sampleTests(), nil, "")
	require.NoError(t, err)
	assert.Zero(t, today)

	ics := string(data)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
	assert.Contains(t, ics, "SUMMARY:")
	assert.Contains(t, ics, "MDCAT")
	assert.Contains(t, ics, "ECAT")
	assert.Contains(t, ics, config.ICalProdid)

	// Canonical dates rendered as all-day values.
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260920")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260712")

	// Long-form name carried in the description.
	assert.Contains(t, ics, "Medical and Dental College Admission Test")
}

// TestBuild_OverrideMovesEvent checks that the override mapping, not the
// canonical date, decides the event start.
func TestBuild_OverrideMovesEvent(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	overrides := map[string]time.Time{
		"mdcat": time.Date(2026, 10, 4, 0, 0, 0, 0, time.UTC),
	}

	data, _, err := gen.Build(sampleTests(), overrides, "")
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20261004")
	assert.NotContains(t, ics, "DTSTART;VALUE=DATE:20260920", "Overridden canonical date must not appear")
	// The non-overridden test keeps its canonical date.
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20260712")
}

// TestBuild_UIDStability ensures UIDs are deterministic for a fixed test and
// date, and change when the effective date moves.
func TestBuild_UIDStability(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	tests := sampleTests()[:1]

	extractUID := func(data []byte) string {
		for _, line := range strings.Split(string(data), "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}

	data1, _, err := gen.Build(tests, nil, "")
	require.NoError(t, err)
	data2, _, err := gen.Build(tests, nil, "")
	require.NoError(t, err)

	uid := extractUID(data1)
	require.NotEmpty(t, uid)
	assert.Equal(t, uid, extractUID(data2), "UID must be stable across rebuilds")

	moved, _, err := gen.Build(tests, map[string]time.Time{
		"mdcat": time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
	}, "")
	require.NoError(t, err)
	assert.NotEqual(t, uid, extractUID(moved), "Moving the date must change the UID")
}

// TestBuild_Reminder verifies the VALARM block and its trigger.
func TestBuild_Reminder(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	trigger := fmt.Sprintf("%s%d%s", config.ISONegativePrefix, 2, config.ISODay)

	data, _, err := gen.Build(sampleTests(), nil, trigger)
	require.NoError(t, err)

	ics := string(data)
	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VALARM"), "Every event must carry the alarm")
	assert.Contains(t, ics, "ACTION:DISPLAY")
	assert.Contains(t, ics, "TRIGGER:"+trigger)
}

// TestBuild_NoReminder ensures no VALARM is emitted without a trigger.
func TestBuild_NoReminder(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))

	data, _, err := gen.Build(sampleTests(), nil, "")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "BEGIN:VALARM")
}

// TestBuild_CountsToday verifies the today counter against the injected clock.
func TestBuild_CountsToday(t *testing.T) {
	now := time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC)
	gen := newGenerator(now)

	_, today, err := gen.Build(sampleTests(), nil, "")
	require.NoError(t, err)
	assert.Equal(t, 1, today, "MDCAT falls on the clock's current day")
}

// TestBuild_EmptyDataset returns the stub calendar rather than failing.
func TestBuild_EmptyDataset(t *testing.T) {
	gen := newGenerator(time.Now())

	data, today, err := gen.Build(nil, nil, "")
	require.NoError(t, err)
	assert.Zero(t, today)
	assert.Equal(t, config.StubVCalendar, string(data))
}

// TestBuild_LocalizedSummary checks the injected summary formatter is used.
func TestBuild_LocalizedSummary(t *testing.T) {
	gen := newGenerator(time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC))
	gen.FormatSummary = func(name string) string {
		return name + " entrance exam"
	}

	data, _, err := gen.Build(sampleTests()[:1], nil, "")
	require.NoError(t, err)
	assert.Contains(t, string(data), "MDCAT entrance exam")
}
