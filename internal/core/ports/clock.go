package ports

import "time"

// Clock supplies the current instant to the resolvers. Injecting it keeps
// every temporal decision deterministic under test.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// NewRealClock returns a Clock backed by the system time.
func NewRealClock() Clock {
	return realClock{}
}
