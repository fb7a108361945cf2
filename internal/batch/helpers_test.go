package batch

import "time"

func fixedNow() time.Time { return time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC) }
