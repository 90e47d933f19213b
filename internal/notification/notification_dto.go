package notification

import "time"

type CreateInput struct {
	Icon  string
	Title string
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	Icon      string    `json:"icon"`
	Title     string    `json:"title"`
	Time      string    `json:"time"`
	IsRead    bool      `json:"isRead"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// Group is one section of the notification screen.
type Group struct {
	Category      string                 `json:"category"`
	Notifications []NotificationResponse `json:"notifications"`
}

type ListResponse struct {
	Unread int     `json:"unread"`
	Groups []Group `json:"groups"`
}

type MarkAllResponse struct {
	Updated int `json:"updated"`
}

func mapToResponse(n Notification, now time.Time, loc *time.Location) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Icon:      n.Icon,
		Title:     n.Title,
		Time:      n.CreatedAt.In(loc).Format("3:04 PM"),
		IsRead:    n.IsRead,
		Category:  Category(n.CreatedAt, now, loc),
		CreatedAt: n.CreatedAt,
	}
}
