package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/rs/xid"

	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/repository"
)

// NotificationService creates notifications for item followers and prunes
// them once the referenced comments have been read.
type NotificationService struct {
	users  repository.UserRepository
	items  repository.CatalogueRepository
	logger *slog.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(users repository.UserRepository, items repository.CatalogueRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		users:  users,
		items:  items,
		logger: logger,
	}
}

// NotifyFollowers appends one notification per follower of the item, in
// follower order. There is no deduplication: every entry in the follower list
// receives its own notification, the commenting user included if they follow
// their own item.
func (s *NotificationService) NotifyFollowers(ctx context.Context, item *model.CatalogueItem, comment *model.Comment, linkToComment string) {
	followers := s.items.Followers(ctx, item)
	for _, follower := range followers {
		s.users.AddNotification(ctx, follower, &model.Notification{
			ID:            xid.New().String(),
			CreatedAt:     time.Now(),
			Item:          item,
			Comment:       comment,
			LinkToComment: linkToComment,
		})
	}

	if len(followers) > 0 {
		s.logger.Info("followers notified",
			slog.Int("item", item.ID),
			slog.Int("comment", comment.ID),
			slog.Int("followers", len(followers)),
		)
	}
}

// MarkCommentSeen removes every notification in the user's list that
// references the comment. Duplicate notifications for the same comment are
// all removed at once.
func (s *NotificationService) MarkCommentSeen(ctx context.Context, user *model.User, comment *model.Comment) {
	s.users.RemoveNotificationsForComment(ctx, user, comment)
}

// MarkCommentsSeen removes every notification whose comment is a member of
// the given set.
func (s *NotificationService) MarkCommentsSeen(ctx context.Context, user *model.User, comments []*model.Comment) {
	if len(comments) == 0 {
		return
	}
	s.users.RemoveNotificationsForComments(ctx, user, comments)
}
