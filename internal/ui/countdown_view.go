package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/countdown"
)

// Variant selects one of the three countdown renderings.
type Variant int

const (
	// VariantWidget is the minimal rendering: just the running clock.
	VariantWidget Variant = iota
	// VariantCompact is a single-row summary: test name plus clock.
	VariantCompact
	// VariantCard is the full rendering with captioned day/hour/minute/second fields.
	VariantCard
)

// Captions carries the localized unit labels used by the card variant and the
// expired message shared by all variants.
type Captions struct {
	Days    string
	Hours   string
	Minutes string
	Seconds string
	Expired string
}

// FormatClock renders a snapshot as "25d 04:31:09", or the expired message.
func FormatClock(s countdown.Snapshot, expired string) string {
	if s.Expired {
		return expired
	}
	return fmt.Sprintf(config.FormatClock, s.Days, s.Hours, s.Minutes, s.Seconds)
}

// FormatCompact renders the single-row summary, e.g. "MDCAT - 25d 04:31:09".
func FormatCompact(name string, s countdown.Snapshot, expired string) string {
	return fmt.Sprintf(config.FormatCompact, name, FormatClock(s, expired))
}

// CountdownView is one rendering of the countdown stream. Views hold no
// timing logic of their own; the window owning them runs a single ticker and
// fans each snapshot out to every mounted view.
type CountdownView struct {
	variant  Variant
	captions Captions
	name     string

	title *widget.Label
	value *widget.Label // widget and compact variants

	days    *widget.Label // card variant
	hours   *widget.Label
	minutes *widget.Label
	seconds *widget.Label
	status  *widget.Label

	root fyne.CanvasObject
}

// NewCountdownView builds an empty view for the given variant.
func NewCountdownView(variant Variant, captions Captions) *CountdownView {
	v := &CountdownView{variant: variant, captions: captions}

	switch variant {
	case VariantCard:
		v.title = widget.NewLabel("")
		v.title.Alignment = fyne.TextAlignCenter
		v.title.TextStyle = fyne.TextStyle{Bold: true}

		v.days = newBigLabel()
		v.hours = newBigLabel()
		v.minutes = newBigLabel()
		v.seconds = newBigLabel()

		v.status = widget.NewLabel("")
		v.status.Alignment = fyne.TextAlignCenter

		grid := container.NewGridWithColumns(4,
			captionedColumn(v.days, captions.Days),
			captionedColumn(v.hours, captions.Hours),
			captionedColumn(v.minutes, captions.Minutes),
			captionedColumn(v.seconds, captions.Seconds),
		)
		v.root = container.NewVBox(v.title, grid, v.status)

	default: // VariantWidget, VariantCompact
		v.value = widget.NewLabel("")
		if variant == VariantWidget {
			v.value.Alignment = fyne.TextAlignCenter
			v.value.TextStyle = fyne.TextStyle{Monospace: true}
		}
		v.root = v.value
	}

	return v
}

func newBigLabel() *widget.Label {
	l := widget.NewLabel("")
	l.Alignment = fyne.TextAlignCenter
	l.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return l
}

func captionedColumn(value *widget.Label, caption string) fyne.CanvasObject {
	c := widget.NewLabel(caption)
	c.Alignment = fyne.TextAlignCenter
	return container.NewVBox(value, c)
}

// Object returns the renderable root of the view.
func (v *CountdownView) Object() fyne.CanvasObject {
	return v.root
}

// SetTest updates the displayed test name. Must run on the UI thread.
func (v *CountdownView) SetTest(name string) {
	v.name = name
	if v.title != nil {
		v.title.SetText(name)
	}
}

// Apply renders one snapshot. Must run on the UI thread; callers receiving
// snapshots from the ticker goroutine wrap the call in fyne.Do.
func (v *CountdownView) Apply(s countdown.Snapshot) {
	switch v.variant {
	case VariantCard:
		v.days.SetText(strconv.Itoa(s.Days))
		v.hours.SetText(fmt.Sprintf(config.FormatBigNum, s.Hours))
		v.minutes.SetText(fmt.Sprintf(config.FormatBigNum, s.Minutes))
		v.seconds.SetText(fmt.Sprintf(config.FormatBigNum, s.Seconds))
		if s.Expired {
			v.status.SetText(v.captions.Expired)
		} else {
			v.status.SetText("")
		}
	case VariantCompact:
		v.value.SetText(FormatCompact(v.name, s, v.captions.Expired))
	default:
		v.value.SetText(FormatClock(s, v.captions.Expired))
	}
}
