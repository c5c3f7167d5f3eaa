package config

import "time"

type TimeSource interface {
	Now() time.Time
}

type RealTimeSource struct{}

func (t RealTimeSource) Now() time.Time {
	return time.Now()
}

type FixedTimeSource struct {
	Time time.Time
}

func (t FixedTimeSource) Now() time.Time {
	return t.Time
}
