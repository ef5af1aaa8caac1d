// Package schedule renders the entry-test schedule as an iCalendar object.
// User overrides are applied before rendering, so a subscribed calendar app
// always sees the same effective dates as the in-app countdown.
package schedule

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/countdown"
	"github.com/pakuni/go-pakuni/internal/dataset"
)

// Generator builds the calendar feed from the reference dataset and the
// current override mapping.
type Generator struct {
	Clock countdown.Clock // Interface for time mocking.

	// FormatSummary allows the UI to inject localized event summaries.
	FormatSummary func(name string) string
}

// Build renders one all-day VEVENT per test at its effective date and returns
// the encoded calendar plus the number of tests falling on the current day.
func (g *Generator) Build(tests []dataset.Test, overrides map[string]time.Time, reminderTrigger string) ([]byte, int, error) {
	start := time.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval to subscribing clients.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Test days are local calendar dates; UTC is only used for ICS stamping.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	todayYear, todayMonth, todayDay := now.Date()
	countToday := 0

	for _, t := range tests {
		effective := t.Date
		if override, ok := overrides[t.ID]; ok {
			effective = override
		}

		event := g.buildEvent(t, effective, reminderTrigger)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)

		y, m, d := effective.Date()
		if y == todayYear && m == todayMonth && d == todayDay {
			countToday++
			slog.Info(config.MsgTestToday,
				config.LogKeyComponent, config.CompSchedule,
				config.LogKeyTestID, t.ID,
				config.LogKeyTestDate, effective.Format(config.DateFormatDisplay))
		}
	}

	if len(cal.Children) == 0 {
		// A valid empty VCALENDAR keeps subscribed clients from flagging the feed.
		var buf bytes.Buffer
		fmt.Fprint(&buf, config.StubVCalendar)
		g.logSuccess(len(tests), countToday)
		return buf.Bytes(), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(len(tests), countToday)
	slog.Debug("Schedule build finished",
		config.LogKeyComponent, config.CompSchedule,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), countToday, nil
}

// buildEvent constructs a single all-day VEVENT for a test.
func (g *Generator) buildEvent(t dataset.Test, effective time.Time, reminderTrigger string) *ical.Event {
	event := ical.NewEvent()

	// Deterministic UID generation for stability across refreshes.
	input := fmt.Sprintf(config.FormatHashInput, t.ID, effective.Format(config.DateFormatISO), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	uidBase := fmt.Sprintf("%x", hash[:config.UIDHashLength])
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, effective.Year(), config.ICalDomain))

	summary := fmt.Sprintf(config.FallbackSummary, t.Name)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(t.Name)
	}
	event.Props.SetText(config.PropSummary, summary)
	if t.FullName != "" {
		event.Props.SetText(config.PropDescription, t.FullName)
	}

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(effective)
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func (g *Generator) logSuccess(total, today int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompSchedule,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyToday, today),
		),
	)
}
