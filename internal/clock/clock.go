package clock

import "time"

// Clock abstracts time for components with freshness logic so tests can
// advance it deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns the real wall clock.
func System() Clock { return systemClock{} }
