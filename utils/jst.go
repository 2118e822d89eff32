// utils/jst.go - JST day boundaries for daily rankings
package utils

import "time"

// JST is a fixed UTC+9 zone; daily rankings roll over at midnight JST.
var JST = time.FixedZone("JST", 9*60*60)

// JSTMidnight returns midnight JST of the day containing t.
func JSTMidnight(t time.Time) time.Time {
	local := t.In(JST)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, JST)
}

// JSTToday returns the YYYY-MM-DD date string for t in JST.
func JSTToday(t time.Time) string {
	return t.In(JST).Format("2006-01-02")
}
