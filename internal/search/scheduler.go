package search

import "time"

// Timer is a scheduled task that can be stopped before it runs.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type clockScheduler struct{}

func (clockScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ClockScheduler schedules with time.AfterFunc.
var ClockScheduler Scheduler = clockScheduler{}
