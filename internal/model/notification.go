package model

import "time"

// Notification tells a follower of a catalogue item that the item received a
// new comment. It lives in the recipient's Notifications list; presence in the
// list IS the unread signal; reading the referenced comment removes it.
//
// Item and Comment are back-references and are not serialized; clients follow
// linkToNewComment instead.
type Notification struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Item    *CatalogueItem `json:"-"`
	Comment *Comment       `json:"-"`

	LinkToComment string `json:"linkToNewComment"`
}
