package countdown

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pakuni/go-pakuni/internal/config"
)

// Ticker publishes a live-updating stream of snapshots for one target date.
//
// Snapshots are delivered from a single goroutine, one per interval, in
// non-decreasing time order. The first snapshot is published immediately on
// start so consumers never wait a full interval for their first value.
//
// A Ticker observes exactly one target; to change targets, Stop the old
// ticker before starting a new one.
type Ticker struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Start launches a ticker that computes a snapshot for target every interval
// and hands it to publish. The returned handle must be stopped when the
// consumer stops observing.
func Start(clock Clock, interval time.Duration, target time.Time, publish func(Snapshot)) *Ticker {
	t := &Ticker{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(clock, interval, target, publish)
	return t
}

// Stop cancels the ticker. It blocks until the delivery goroutine has exited,
// so no snapshot is published after Stop returns. Stop is idempotent.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
	slog.Debug(config.MsgTickerStopped, config.LogKeyComponent, config.CompCountdown)
}

func (t *Ticker) run(clock Clock, interval time.Duration, target time.Time, publish func(Snapshot)) {
	defer close(t.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	publish(Remaining(target, clock.Now()))

	for {
		select {
		case <-t.stop:
			return
		case <-ticker.C:
			// A tick may already be pending when Stop is requested;
			// re-check before publishing so it is dropped, not delivered.
			select {
			case <-t.stop:
				return
			default:
			}
			publish(Remaining(target, clock.Now()))
		}
	}
}
