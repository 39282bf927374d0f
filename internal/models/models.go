package models

// Shift is one on-call assignment. Times are wall-clock "HH:MM" strings
// without a date; EndTime may be earlier than StartTime for overnight shifts.
type Shift struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`   // chat handle without the leading "@"
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`   // "HH:MM"
}

// Interval renders the shift as "HH:MM-HH:MM".
func (s Shift) Interval() string {
	return s.StartTime + "-" + s.EndTime
}
