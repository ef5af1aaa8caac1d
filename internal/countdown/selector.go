package countdown

import (
	"time"

	"github.com/pakuni/go-pakuni/internal/dataset"
)

// Select resolves which test the countdown should display.
//
// With an explicit identifier the matching test is returned; an unknown
// identifier falls back to the first dataset entry rather than producing
// "no test". Without an identifier the test with the earliest canonical date
// still in the future is chosen; when every date has passed, the first entry
// is returned. Selection is deterministic for a fixed dataset and now.
//
// ok is false only when the dataset is empty.
func Select(tests []dataset.Test, explicitID string, now time.Time) (dataset.Test, bool) {
	if len(tests) == 0 {
		return dataset.Test{}, false
	}

	if explicitID != "" {
		for _, t := range tests {
			if t.ID == explicitID {
				return t, true
			}
		}
		return tests[0], true
	}

	best := -1
	for i, t := range tests {
		if !t.Date.After(now) {
			continue
		}
		if best == -1 || t.Date.Before(tests[best].Date) {
			best = i
		}
	}
	if best == -1 {
		return tests[0], true
	}
	return tests[best], true
}
