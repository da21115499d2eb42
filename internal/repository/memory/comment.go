package memory

import (
	"context"
	"strconv"
	"time"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/model"
)

// CommentByID looks a comment up in the global index. Tombstoned comments are
// still found here; deletion never removes the record.
func (s *Store) CommentByID(_ context.Context, id int) (*model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, apperror.NotFound("comment", strconv.Itoa(id))
	}
	return comment, nil
}

// CreateComment builds a comment with the next monotonic id and registers it
// in the global index. The caller appends it to the item (AddItemComment) or
// to a parent comment (AddReply); creation itself touches neither.
func (s *Store) CreateComment(_ context.Context, content, contentHTML string, owner *model.User, item *model.CatalogueItem) *model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextCommentID++
	comment := &model.Comment{
		ID:          s.nextCommentID,
		Content:     content,
		ContentHTML: contentHTML,
		CreatedAt:   time.Now(),
		Owner:       owner,
		Item:        item,
	}
	s.comments[comment.ID] = comment
	return comment
}

// AddReply registers the reply in the global index and links it under the
// parent, keeping reply.Parent and parent.Replies symmetric.
func (s *Store) AddReply(_ context.Context, parent, reply *model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.comments[reply.ID] = reply
	reply.Parent = parent
	parent.Replies = append(parent.Replies, reply)
}

// Replies returns a snapshot of the comment's direct replies.
func (s *Store) Replies(_ context.Context, comment *model.Comment) []*model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(comment.Replies)
}

// SetCommentLinks sets the comment's self and replies navigation links.
func (s *Store) SetCommentLinks(_ context.Context, comment *model.Comment, linkToSelf, linkToReplies string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.LinkToSelf = linkToSelf
	comment.LinkToReplies = linkToReplies
}

// IncrementFavourites bumps the favourites counter. Not idempotent: calling
// twice increments twice. Deduplication lives in Favourite.
func (s *Store) IncrementFavourites(_ context.Context, comment *model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	comment.FavouritesCount++
}

// IsOwner reports whether the user owns the comment.
func (s *Store) IsOwner(_ context.Context, user *model.User, comment *model.Comment) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return comment.Owner != nil && comment.Owner.ID == user.ID
}

// DeleteComment tombstones the comment: the content is overwritten with the
// deletion message, the replies list is emptied and the replies link unset.
// The record stays in the index, the favourites counter and owner are left
// alone, and replies are NOT deleted; they stay addressable by id, orphaned
// from display.
func (s *Store) DeleteComment(_ context.Context, comment *model.Comment, message, messageHTML string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.Content = message
	comment.ContentHTML = messageHTML
	comment.Replies = nil
	comment.LinkToReplies = ""
}
