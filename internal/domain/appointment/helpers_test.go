package appointment

import "time"

func monday() time.Time {
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
}
