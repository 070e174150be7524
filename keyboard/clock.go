package keyboard

import "time"

// Clock abstracts the engine's hold and settle waits so tests can run
// without wall-clock sleeps.
type Clock interface {
	Sleep(d time.Duration)
}

type wallClock struct{}

func (wallClock) Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
