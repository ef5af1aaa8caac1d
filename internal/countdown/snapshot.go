package countdown

import (
	"time"

	"github.com/pakuni/go-pakuni/internal/config"
)

// Snapshot is one immutable countdown result computed for a single instant.
// When Expired is true all numeric fields are zero.
type Snapshot struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
	Expired bool
}

// Remaining computes the countdown snapshot for a target instant relative to now.
//
// The decomposition is pure elapsed-time arithmetic: whole days, then the
// remaining hours (0-23), minutes (0-59) and seconds (0-59). There is no
// calendar awareness (months, leap adjustments) by contract; the countdown
// measures a duration, not a calendar distance. Past targets are valid and
// yield the expired snapshot.
func Remaining(target, now time.Time) Snapshot {
	diff := target.Sub(now)
	if diff <= 0 {
		return Snapshot{Expired: true}
	}

	total := int64(diff / time.Second)

	return Snapshot{
		Days:    int(total / config.SecondsPerDay),
		Hours:   int(total % config.SecondsPerDay / config.SecondsPerHour),
		Minutes: int(total % config.SecondsPerHour / config.SecondsPerMinute),
		Seconds: int(total % config.SecondsPerMinute),
	}
}
