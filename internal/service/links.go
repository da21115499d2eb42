package service

import "fmt"

// Links builds the absolute navigation URLs embedded in API payloads
// (comment self/replies links, item comment links, pagination links).
type Links struct {
	Base string
}

// ItemComments returns the URL of an item's comment collection.
func (l Links) ItemComments(itemID int) string {
	return fmt.Sprintf("%s/api/items/%d/comments", l.Base, itemID)
}

// Comment returns the URL of a single comment under its item.
func (l Links) Comment(itemID, commentID int) string {
	return fmt.Sprintf("%s/api/items/%d/comments/%d", l.Base, itemID, commentID)
}

// CommentReplies returns the URL of a comment's reply collection.
func (l Links) CommentReplies(itemID, commentID int) string {
	return fmt.Sprintf("%s/api/items/%d/comments/%d/replies", l.Base, itemID, commentID)
}

// CommentsPage returns the URL of a comment page with explicit offsets.
func (l Links) CommentsPage(itemID, start, size int) string {
	return fmt.Sprintf("%s/api/items/%d/comments?start=%d&size=%d", l.Base, itemID, start, size)
}
