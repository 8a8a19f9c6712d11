package validate_reservation

import "time"

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
