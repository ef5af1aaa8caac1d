package store_test

import (
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/pakuni/go-pakuni/internal/config"
	"github.com/pakuni/go-pakuni/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore returns a store backed by a headless app's in-memory preferences.
func newTestStore(t *testing.T) (*store.OverrideStore, fyne.Preferences) {
	t.Helper()
	prefs := test.NewApp().Preferences()
	return store.NewOverrideStore(prefs), prefs
}

// TestStore_FirstRunIsEmpty verifies the absent-key case degrades to the
// empty mapping without error.
func TestStore_FirstRunIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Empty(t, s.Load())
}

// TestStore_SaveRoundTrip checks that a saved override is returned by Load
// with its timezone-aware timestamp intact.
func TestStore_SaveRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	date := time.Date(2026, 9, 20, 9, 0, 0, 0, time.FixedZone("PKT", 5*3600))

	require.NoError(t, s.Save("mdcat", date))

	got := s.Load()
	require.Len(t, got, 1)
	assert.True(t, date.Equal(got["mdcat"]), "Loaded date must equal the saved instant")
}

// TestStore_SaveReplaces ensures at most one override exists per test id.
func TestStore_SaveReplaces(t *testing.T) {
	s, _ := newTestStore(t)
	first := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save("mdcat", first))
	require.NoError(t, s.Save("mdcat", second))

	got := s.Load()
	require.Len(t, got, 1, "Saving the same id twice must not grow the mapping")
	assert.True(t, second.Equal(got["mdcat"]))
}

// TestStore_SaveIdempotent verifies that repeating an identical save leaves
// the persisted payload unchanged.
func TestStore_SaveIdempotent(t *testing.T) {
	s, prefs := newTestStore(t)
	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save("mdcat", date))
	payload1 := prefs.String(config.StorageKeyOverrides)

	require.NoError(t, s.Save("mdcat", date))
	payload2 := prefs.String(config.StorageKeyOverrides)

	assert.Equal(t, payload1, payload2)
}

// TestStore_MultipleTests verifies independent overrides coexist under the
// single storage key and persist in a stable order.
func TestStore_MultipleTests(t *testing.T) {
	s, prefs := newTestStore(t)

	require.NoError(t, s.Save("net", time.Date(2026, 12, 5, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, s.Save("ecat", time.Date(2026, 7, 12, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, s.Save("mdcat", time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)))

	got := s.Load()
	assert.Len(t, got, 3)

	// Records are sorted by test id, so ecat must serialize before net.
	payload := prefs.String(config.StorageKeyOverrides)
	assert.Less(t, strings.Index(payload, "ecat"), strings.Index(payload, "mdcat"))
	assert.Less(t, strings.Index(payload, "mdcat"), strings.Index(payload, "net"))
}

// TestStore_SaveValidation checks the rejected inputs and that nothing is
// persisted when validation fails.
func TestStore_SaveValidation(t *testing.T) {
	s, prefs := newTestStore(t)

	err := s.Save("", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrOverrideID)

	err = s.Save("mdcat", time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrOverrideDate)

	assert.Empty(t, prefs.String(config.StorageKeyOverrides), "Failed saves must not write anything")
}

// TestStore_LoadFailOpen ensures corrupted payloads degrade to the empty
// mapping instead of failing.
func TestStore_LoadFailOpen(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"Garbage", "{{{not json"},
		{"WrongShape", `{"testId": "mdcat"}`},
		{"NumberArray", "[1, 2, 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, prefs := newTestStore(t)
			prefs.SetString(config.StorageKeyOverrides, tt.payload)

			assert.Empty(t, s.Load())
		})
	}
}

// TestStore_LoadSkipsBadDates verifies a single unparseable record does not
// discard the rest of the mapping.
func TestStore_LoadSkipsBadDates(t *testing.T) {
	s, prefs := newTestStore(t)
	prefs.SetString(config.StorageKeyOverrides,
		`[{"testId":"bad","customDate":"not-a-date"},{"testId":"mdcat","customDate":"2026-09-20T00:00:00Z"}]`)

	got := s.Load()
	require.Len(t, got, 1)
	assert.Contains(t, got, "mdcat")
}

// TestStore_FailOpenThenSaveRecovers covers the corruption recovery path:
// after a bad payload, a save rebuilds a clean single-entry mapping.
func TestStore_FailOpenThenSaveRecovers(t *testing.T) {
	s, prefs := newTestStore(t)
	prefs.SetString(config.StorageKeyOverrides, "corrupted!")

	date := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Save("mdcat", date))

	got := s.Load()
	require.Len(t, got, 1)
	assert.True(t, date.Equal(got["mdcat"]))
}

// TestStore_Effective resolves overrides against canonical dates.
func TestStore_Effective(t *testing.T) {
	s, _ := newTestStore(t)
	canonical := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	override := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, canonical.Equal(s.Effective("mdcat", canonical)), "Without an override the canonical date applies")

	require.NoError(t, s.Save("mdcat", override))
	assert.True(t, override.Equal(s.Effective("mdcat", canonical)))
	assert.True(t, canonical.Equal(s.Effective("ecat", canonical)), "Overrides are scoped per test id")
}
