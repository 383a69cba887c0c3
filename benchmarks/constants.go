package test

import "time"

const (
	RunTimes           = 1 << 14
	SleepParam         = 10 * time.Microsecond
	PoolSize           = 5e4
	DefaultExpiredTime = 10 * time.Second
)
