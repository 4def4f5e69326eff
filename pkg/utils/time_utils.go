package utils

import "time"

// Epoch seconds are what the DB stores; render as RFC3339 UTC at the edges.

func NowUnixSeconds() int64 { return time.Now().Unix() }

func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).UTC()
}

func FormatRFC3339(t int64) string {
	ts := FromUnixSeconds(t)
	if ts.IsZero() {
		return ""
	}
	return ts.Format(time.RFC3339)
}
