package model

import "time"

// Comment is a user comment on a catalogue item, or a reply to another
// comment (Parent != nil). Ids are assigned monotonically by the store and
// never reused.
//
// Deletion is a tombstone: the content is overwritten with a deletion message
// and the replies are cleared, but the record stays in the store and remains
// addressable by id. Orphaned replies keep their Parent pointer.
//
// ContentHTML is the markdown-rendered, sanitised form of Content, produced at
// write time.
type Comment struct {
	ID          int       `json:"id"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	CreatedAt   time.Time `json:"createdAt"`

	Owner   *User          `json:"owner"`
	Item    *CatalogueItem `json:"-"`
	Parent  *Comment       `json:"-"`
	Replies []*Comment     `json:"-"`

	LinkToSelf    string `json:"linkToSelf,omitempty"`
	LinkToReplies string `json:"linkToReplies,omitempty"`

	FavouritesCount int `json:"favouritesCount"`
}
