package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/pakuni/go-pakuni/internal/config"
)

//go:embed tests.json
var builtinFS embed.FS

// Test describes one entry test from the reference dataset.
// The canonical date is read-only; user adjustments live in the override store.
type Test struct {
	// ID is the stable identifier used as the override key (e.g. "mdcat").
	ID string

	// Name is the short display name (e.g. "MDCAT").
	Name string

	// FullName is the long form shown on the countdown card.
	FullName string

	// Date is the canonical test date parsed from the dataset.
	Date time.Time
}

// record is the wire shape of a dataset entry.
type record struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`
	TestDate string `json:"test_date"`
}

// Load returns the built-in reference dataset.
func Load() ([]Test, error) {
	f, err := builtinFS.Open("tests.json")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDatasetParse, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes a JSON test dataset from r.
// Entries with a missing identifier or an unparseable date are skipped with a
// warning so that one bad row never poisons the whole dataset.
func Parse(r io.Reader) ([]Test, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDatasetParse, err)
	}

	tests := make([]Test, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			slog.Warn(config.MsgSkippedTest,
				config.LogKeyComponent, config.CompDataset,
				config.LogKeyName, rec.Name)
			continue
		}

		date, err := parseDate(rec.TestDate)
		if err != nil {
			slog.Warn(config.MsgSkippedTest,
				config.LogKeyComponent, config.CompDataset,
				config.LogKeyTestID, rec.ID,
				config.LogKeyValue, rec.TestDate)
			continue
		}

		name := rec.Name
		if name == "" {
			name = config.FallbackTestName
		}

		tests = append(tests, Test{
			ID:       rec.ID,
			Name:     name,
			FullName: rec.FullName,
			Date:     date,
		})
	}

	if len(tests) == 0 {
		return nil, errors.New(config.ErrDatasetEmpty)
	}
	return tests, nil
}

// parseDate accepts the dataset date formats: full RFC 3339 timestamps and
// bare calendar dates.
func parseDate(value string) (time.Time, error) {
	formats := []string{
		config.DateFormatISO,
		config.DateFormatDateOnly,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
