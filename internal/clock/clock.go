package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock supplies the current time. Scheduling code never calls
// time.Now directly so that day arithmetic stays deterministic in tests.
type Clock interface {
	Now() time.Time
}

var Module = fx.Module("clock",
	fx.Provide(NewSystemClock),
)

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
