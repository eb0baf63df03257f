package quiz

import (
	"sync"
	"time"
)

// Timer is a handle to a repeating callback.
type Timer interface {
	Stop()
}

// Clock schedules repeating callbacks.
type Clock interface {
	Every(interval time.Duration, tick func()) Timer
}

// SystemClock runs callbacks from a time.Ticker goroutine.
type SystemClock struct{}

func (SystemClock) Every(interval time.Duration, tick func()) Timer {
	t := &tickerTimer{
		ticker: time.NewTicker(interval),
		stop:   make(chan struct{}),
	}
	go t.run(tick)
	return t
}

type tickerTimer struct {
	ticker   *time.Ticker
	stop     chan struct{}
	stopOnce sync.Once
}

func (t *tickerTimer) run(tick func()) {
	for {
		select {
		case <-t.stop:
			return
		case <-t.ticker.C:
			// A stop racing with a tick must win.
			select {
			case <-t.stop:
				return
			default:
			}
			tick()
		}
	}
}

func (t *tickerTimer) Stop() {
	t.stopOnce.Do(func() {
		t.ticker.Stop()
		close(t.stop)
	})
}
