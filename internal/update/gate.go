package update

import "time"

// ShouldCheck reports whether a new background check is warranted: the
// repository has never been checked, or more than interval has passed
// since the last completed check. Pure function of its inputs.
func ShouldCheck(now, lastChecked time.Time, checked bool, interval time.Duration) bool {
	if !checked {
		return true
	}

	return now.Sub(lastChecked) > interval
}
