package models

// NotificationPayload is the fire-and-forget message handed to the
// delivery channel. Delivery and retry are the channel's responsibility.
type NotificationPayload struct {
	ATTUID string `json:"attuid"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// AuthUser is the shape of one roster entry as cached by the directory
// sync job. Only the attuid is load-bearing here; the remaining fields
// are carried for display.
type AuthUser struct {
	ATTUID string `json:"attuid"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}
