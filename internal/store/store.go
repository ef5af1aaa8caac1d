// Package store persists user date overrides for entry tests.
//
// The whole mapping lives under a single namespaced preferences key as a
// JSON-encoded array of {testId, customDate} records. Reads are fail-open:
// a missing key or malformed payload degrades to the empty mapping, which
// simply reverts every test to its canonical dataset date.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fyne.io/fyne/v2"
	"github.com/pakuni/go-pakuni/internal/config"
)

// record is the persisted wire shape of one override.
type record struct {
	TestID     string `json:"testId"`
	CustomDate string `json:"customDate"`
}

// OverrideStore owns the test-id → override-date mapping.
// At most one override exists per test identifier; saving again replaces it.
type OverrideStore struct {
	prefs fyne.Preferences
}

// NewOverrideStore creates a store backed by the given preferences.
func NewOverrideStore(prefs fyne.Preferences) *OverrideStore {
	return &OverrideStore{prefs: prefs}
}

// Load returns the current full mapping.
//
// Load never fails: an absent key yields the empty mapping (first run), and a
// storage or decode fault is logged and degraded to the empty mapping as well.
// Losing an override only reverts the countdown to the canonical date, which
// is the safe default.
func (s *OverrideStore) Load() map[string]time.Time {
	raw := s.prefs.String(config.StorageKeyOverrides)
	if raw == "" {
		return map[string]time.Time{}
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.Warn(config.MsgOverrideLoadFault,
			config.LogKeyComponent, config.CompStore,
			config.LogKeyError, err)
		return map[string]time.Time{}
	}

	overrides := make(map[string]time.Time, len(records))
	for _, rec := range records {
		date, err := time.Parse(config.DateFormatISO, rec.CustomDate)
		if err != nil {
			slog.Warn(config.MsgOverrideLoadFault,
				config.LogKeyComponent, config.CompStore,
				config.LogKeyTestID, rec.TestID,
				config.LogKeyValue, rec.CustomDate)
			continue
		}
		// Later records win, so a duplicated identifier resolves to one entry.
		overrides[rec.TestID] = date
	}
	return overrides
}

// Save validates the override and persists the full updated mapping.
//
// The mapping is replaced wholesale under one key, so persisted state is
// never partially written: either the new mapping lands or the previous one
// remains intact. Saving the same identifier and date twice is equivalent to
// saving once. On error nothing is persisted.
func (s *OverrideStore) Save(testID string, date time.Time) error {
	if testID == "" {
		return errors.New(config.ErrOverrideID)
	}
	if date.IsZero() {
		return errors.New(config.ErrOverrideDate)
	}

	overrides := s.Load()
	overrides[testID] = date

	records := make([]record, 0, len(overrides))
	for id, d := range overrides {
		records = append(records, record{
			TestID:     id,
			CustomDate: d.Format(config.DateFormatISO),
		})
	}
	// Deterministic order keeps the persisted payload stable across saves.
	sort.Slice(records, func(i, j int) bool { return records[i].TestID < records[j].TestID })

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrOverrideEncode, err)
	}

	s.prefs.SetString(config.StorageKeyOverrides, string(payload))

	slog.Info(config.MsgOverrideSaved,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyTestID, testID,
		config.LogKeyTestDate, date.Format(config.DateFormatISO))
	return nil
}

// Effective resolves the date the countdown should target for a test:
// the override when present, else the canonical date.
func (s *OverrideStore) Effective(testID string, canonical time.Time) time.Time {
	if date, ok := s.Load()[testID]; ok {
		return date
	}
	return canonical
}
