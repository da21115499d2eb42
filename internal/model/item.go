package model

// CatalogueItem is a library entry (a book) that can receive comments and be
// followed. Comments are kept in insertion order; only top-level comments are
// appended here; replies hang off their parent comment.
//
// Comments and Followers are back-references and are not serialized; the item
// exposes forward navigation links instead.
type CatalogueItem struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`

	Comments  []*Comment `json:"-"`
	Followers []*User    `json:"-"`

	LinkToAllComments  string   `json:"linkToAllComments"`
	LinksToEachComment []string `json:"linksToEachComment"`
}
