// Package service contains the business logic layer: catalogue browsing,
// the comment tree, the follow/favourite registries and notification
// dispatch. Handlers parse HTTP and delegate here; services validate, enforce
// the domain rules and talk to the repositories.
package service

import (
	"context"
	"log/slog"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/repository"
)

// CatalogueService serves catalogue items and their comment pages.
type CatalogueService struct {
	items         repository.CatalogueRepository
	notifications *NotificationService
	logger        *slog.Logger
}

// NewCatalogueService creates a CatalogueService.
func NewCatalogueService(items repository.CatalogueRepository, notifications *NotificationService, logger *slog.Logger) *CatalogueService {
	return &CatalogueService{
		items:         items,
		notifications: notifications,
		logger:        logger,
	}
}

// PageRequest is an optional pagination window over an item's comments.
type PageRequest struct {
	Start int
	Size  int
}

// CommentPage is one page of an item's comments plus the offset of the page
// that follows it.
type CommentPage struct {
	Comments []*model.Comment
	// NextStart is the start offset of the next page. Once the list is
	// exhausted it wraps to 0: the next link points back at the first page
	// instead of signalling end-of-list. Surprising, but kept deliberately
	// for compatibility with existing clients.
	NextStart int
	Paged     bool
}

// Items returns all catalogue items.
func (s *CatalogueService) Items(ctx context.Context) []*model.CatalogueItem {
	return s.items.AllItems(ctx)
}

// Item returns a single catalogue item by id.
func (s *CatalogueService) Item(ctx context.Context, id int) (*model.CatalogueItem, error) {
	return s.items.ItemByID(ctx, id)
}

// Comments returns the item's comments for the reading user: the whole list
// when page is nil, otherwise the requested window. Every comment handed back
// counts as read: matching notifications are pruned from the user's list.
func (s *CatalogueService) Comments(ctx context.Context, user *model.User, itemID int, page *PageRequest) (*CommentPage, error) {
	item, err := s.items.ItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if page == nil {
		comments := s.items.Comments(ctx, item)
		s.notifications.MarkCommentsSeen(ctx, user, comments)
		return &CommentPage{Comments: comments}, nil
	}

	if page.Start < 0 {
		return nil, apperror.ValidationFailed("start", "start must not be negative")
	}
	if page.Size < 0 {
		return nil, apperror.ValidationFailed("size", "size must not be negative")
	}

	comments := s.items.CommentSubset(ctx, item, page.Start, page.Size)

	next := 0
	if s.items.RemainingComments(ctx, item, page.Start+page.Size) > 0 {
		next = page.Start + page.Size
	}

	s.notifications.MarkCommentsSeen(ctx, user, comments)

	return &CommentPage{
		Comments:  comments,
		NextStart: next,
		Paged:     true,
	}, nil
}
