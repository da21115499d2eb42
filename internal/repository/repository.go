// Package repository defines the storage contracts for the crowdlib entity
// store. The only implementation is the in-memory store in the memory
// subpackage; services depend on these interfaces, not on the concrete store.
package repository

import (
	"context"

	"github.com/fzaki/crowdlib/internal/model"
)

// UserRepository covers user lookup, the favourite/follow registries and the
// per-user notification list.
//
// Favourite and Follow are deliberately atomic: they check membership and
// update every affected collection under one lock, so callers cannot leave the
// bidirectional follower relation half-applied.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	FavouriteComments(ctx context.Context, user *model.User) []*model.Comment
	IsFavourite(ctx context.Context, user *model.User, comment *model.Comment) bool
	// Favourite adds the comment to the user's favourites and bumps the
	// comment's favourites counter. Reports whether the comment was newly
	// added; favouriting twice is a no-op.
	Favourite(ctx context.Context, user *model.User, comment *model.Comment) bool

	FollowedItems(ctx context.Context, user *model.User) []*model.CatalogueItem
	IsFollowing(ctx context.Context, user *model.User, item *model.CatalogueItem) bool
	// Follow records the user as a follower of the item and the item as
	// followed by the user, both sides in one step. Reports whether the
	// relation was newly added.
	Follow(ctx context.Context, user *model.User, item *model.CatalogueItem) bool

	Notifications(ctx context.Context, user *model.User) []*model.Notification
	AddNotification(ctx context.Context, user *model.User, n *model.Notification)
	// RemoveNotificationsForComment drops every notification in the user's
	// list that references the comment (there may be more than one).
	RemoveNotificationsForComment(ctx context.Context, user *model.User, comment *model.Comment)
	RemoveNotificationsForComments(ctx context.Context, user *model.User, comments []*model.Comment)
}

// CatalogueRepository covers catalogue items, their comment sequences and
// their follower lists.
type CatalogueRepository interface {
	AllItems(ctx context.Context) []*model.CatalogueItem
	ItemByID(ctx context.Context, id int) (*model.CatalogueItem, error)

	Comments(ctx context.Context, item *model.CatalogueItem) []*model.Comment
	// CommentSubset returns item comments [start, start+size), truncated at
	// the end of the list; start at or past the end yields an empty slice.
	CommentSubset(ctx context.Context, item *model.CatalogueItem, start, size int) []*model.Comment
	// RemainingComments returns how many comments sit at or after start:
	// max(0, len-start).
	RemainingComments(ctx context.Context, item *model.CatalogueItem, start int) int
	AddItemComment(ctx context.Context, item *model.CatalogueItem, comment *model.Comment, link string)

	Followers(ctx context.Context, item *model.CatalogueItem) []*model.User
}

// CommentRepository covers the global comment index and the comment tree.
type CommentRepository interface {
	CommentByID(ctx context.Context, id int) (*model.Comment, error)
	// CreateComment assigns the next id, stamps the creation time and
	// registers the comment in the global index. It does NOT append the
	// comment to the item; that is AddItemComment's job.
	CreateComment(ctx context.Context, content, contentHTML string, owner *model.User, item *model.CatalogueItem) *model.Comment
	// AddReply registers the reply in the global index and links it under the
	// parent: reply.Parent is set and the reply joins parent.Replies.
	AddReply(ctx context.Context, parent, reply *model.Comment)
	Replies(ctx context.Context, comment *model.Comment) []*model.Comment
	SetCommentLinks(ctx context.Context, comment *model.Comment, linkToSelf, linkToReplies string)

	// IncrementFavourites bumps the favourites counter unconditionally; the
	// caller is responsible for deduplication (see UserRepository.Favourite).
	IncrementFavourites(ctx context.Context, comment *model.Comment)
	IsOwner(ctx context.Context, user *model.User, comment *model.Comment) bool

	// DeleteComment tombstones the comment: the content is replaced by the
	// deletion message, the replies list is cleared and the replies link is
	// unset. The record stays in the index and replies are not cascaded.
	DeleteComment(ctx context.Context, comment *model.Comment, message, messageHTML string)
}
