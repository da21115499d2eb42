package service

import (
	"context"
	"log/slog"

	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/repository"
)

// UserService serves the per-user views: profile, favourites, followed items
// and pending notifications.
type UserService struct {
	users    repository.UserRepository
	comments repository.CommentRepository
	items    repository.CatalogueRepository
	logger   *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, comments repository.CommentRepository, items repository.CatalogueRepository, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		comments: comments,
		items:    items,
		logger:   logger,
	}
}

// GetByUsername resolves a user account by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Favourites returns the user's favourite comments.
func (s *UserService) Favourites(ctx context.Context, user *model.User) []*model.Comment {
	return s.users.FavouriteComments(ctx, user)
}

// AddFavourite marks a comment as a favourite of the user. Idempotent: the
// comment joins the favourites and its counter is bumped only the first time;
// repeated calls return the comment unchanged.
func (s *UserService) AddFavourite(ctx context.Context, user *model.User, commentID int) (*model.Comment, error) {
	comment, err := s.comments.CommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if s.users.Favourite(ctx, user, comment) {
		s.logger.Info("comment favourited",
			slog.Int("comment", comment.ID),
			slog.String("user", user.Username),
		)
	}

	return comment, nil
}

// FollowedItems returns the catalogue items the user follows.
func (s *UserService) FollowedItems(ctx context.Context, user *model.User) []*model.CatalogueItem {
	return s.users.FollowedItems(ctx, user)
}

// FollowItem subscribes the user to an item. Both sides of the relation are
// recorded in one step; following twice is a no-op.
func (s *UserService) FollowItem(ctx context.Context, user *model.User, itemID int) (*model.CatalogueItem, error) {
	item, err := s.items.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if s.users.Follow(ctx, user, item) {
		s.logger.Info("item followed",
			slog.Int("item", item.ID),
			slog.String("user", user.Username),
		)
	}

	return item, nil
}

// Notifications returns the user's pending notifications in insertion order.
func (s *UserService) Notifications(ctx context.Context, user *model.User) []*model.Notification {
	return s.users.Notifications(ctx, user)
}
