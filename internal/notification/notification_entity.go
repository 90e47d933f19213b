package notification

import "time"

const (
	CategoryToday     = "Today"
	CategoryYesterday = "Yesterday"
	CategoryEarlier   = "Earlier"
)

type Notification struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"userId"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category buckets t relative to now in loc.
func Category(t, now time.Time, loc *time.Location) string {
	ty, tm, td := t.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, loc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, loc)

	switch {
	case !day.Before(today):
		return CategoryToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return CategoryYesterday
	default:
		return CategoryEarlier
	}
}
