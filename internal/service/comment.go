package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/render"
	"github.com/fzaki/crowdlib/internal/repository"
)

// Tombstone messages written over deleted comment content.
const (
	OwnerDeletionMessage = "This comment has been deleted by its owner."
	AdminDeletionMessage = "This comment has been deleted by an administrator."
)

// MaxCommentLength bounds comment bodies (~10KB of text).
const MaxCommentLength = 10000

// CommentService manages the comment tree: creation, replies, reads and
// tombstone deletion.
type CommentService struct {
	comments      repository.CommentRepository
	items         repository.CatalogueRepository
	notifications *NotificationService
	links         Links
	logger        *slog.Logger
}

// NewCommentService creates a CommentService.
func NewCommentService(comments repository.CommentRepository, items repository.CatalogueRepository, notifications *NotificationService, links Links, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments:      comments,
		items:         items,
		notifications: notifications,
		links:         links,
		logger:        logger,
	}
}

// Get returns a comment by id and marks it read for the requesting user,
// pruning any notifications that reference it.
func (s *CommentService) Get(ctx context.Context, user *model.User, commentID int) (*model.Comment, error) {
	comment, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	s.notifications.MarkCommentSeen(ctx, user, comment)
	return comment, nil
}

// AddToItem posts a new top-level comment on a catalogue item and notifies
// every follower of the item.
func (s *CommentService) AddToItem(ctx context.Context, owner *model.User, itemID int, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	item, err := s.items.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comment := s.comments.CreateComment(ctx, content, render.Markdown(content), owner, item)

	linkToComment := s.links.Comment(item.ID, comment.ID)
	s.comments.SetCommentLinks(ctx, comment, linkToComment, s.links.CommentReplies(item.ID, comment.ID))
	s.items.AddItemComment(ctx, item, comment, linkToComment)

	s.notifications.NotifyFollowers(ctx, item, comment, linkToComment)

	s.logger.Info("comment created",
		slog.Int("comment", comment.ID),
		slog.Int("item", item.ID),
		slog.String("owner", owner.Username),
	)

	return comment, nil
}

// Reply posts a reply under an existing comment. The reply belongs to the
// parent's catalogue item but is not appended to the item's top-level comment
// list, and item followers are not notified; only new top-level comments
// trigger notifications.
func (s *CommentService) Reply(ctx context.Context, owner *model.User, parentID int, content string) (*model.Comment, error) {
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}

	parent, err := s.comments.CommentByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	reply := s.comments.CreateComment(ctx, content, render.Markdown(content), owner, parent.Item)
	s.comments.AddReply(ctx, parent, reply)

	if parent.Item != nil {
		s.comments.SetCommentLinks(ctx, reply,
			s.links.Comment(parent.Item.ID, reply.ID),
			s.links.CommentReplies(parent.Item.ID, reply.ID),
		)
	}

	s.logger.Info("reply created",
		slog.Int("reply", reply.ID),
		slog.Int("parent", parent.ID),
		slog.String("owner", owner.Username),
	)

	return reply, nil
}

// Replies returns the direct replies of a comment.
func (s *CommentService) Replies(ctx context.Context, commentID int) ([]*model.Comment, error) {
	comment, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.comments.Replies(ctx, comment), nil
}

// Delete tombstones a comment. The owner gets the owner tombstone message, an
// admin deleting someone else's comment gets the admin message, and a caller
// who is neither gets the comment back untouched: no error, no change.
// Replies of a deleted comment stay in the store, addressable by id.
func (s *CommentService) Delete(ctx context.Context, user *model.User, commentID int) (*model.Comment, error) {
	comment, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	switch {
	case s.comments.IsOwner(ctx, user, comment):
		s.comments.DeleteComment(ctx, comment, OwnerDeletionMessage, render.Markdown(OwnerDeletionMessage))
		s.logger.Info("comment deleted by owner", slog.Int("comment", comment.ID))
	case user.IsAdmin():
		s.comments.DeleteComment(ctx, comment, AdminDeletionMessage, render.Markdown(AdminDeletionMessage))
		s.logger.Info("comment deleted by admin",
			slog.Int("comment", comment.ID),
			slog.String("admin", user.Username),
		)
	}

	return comment, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", apperror.ValidationFailed("content", "comment content is required")
	}
	if len(content) > MaxCommentLength {
		return "", apperror.ValidationFailed("content", "comment content is too long")
	}
	return content, nil
}
