package domain

import "time"

// Overlaps сообщает, пересекаются ли полуоткрытые интервалы [startA, endA) и [startB, endB)
// Интервалы, которые только касаются концами, не пересекаются
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && endA.After(startB)
}
