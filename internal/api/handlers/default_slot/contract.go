package default_slot

import "time"

type TimeProvider interface {
	Now() time.Time
}
