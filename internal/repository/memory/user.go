package memory

import (
	"context"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/model"
)

// GetByUsername looks a user up by username.
func (s *Store) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, apperror.NotFoundMessage("not a registered user")
	}
	return user, nil
}

// FavouriteComments returns a snapshot of the user's favourites. Snapshots
// are never nil, so empty collections serialize as [] rather than null.
func (s *Store) FavouriteComments(_ context.Context, user *model.User) []*model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(user.FavouriteComments)
}

// IsFavourite reports whether the comment is among the user's favourites.
// Membership is by comment id.
func (s *Store) IsFavourite(_ context.Context, user *model.User, comment *model.Comment) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsComment(user.FavouriteComments, comment)
}

// Favourite adds the comment to the user's favourites and increments the
// comment's favourites counter. The membership check and both mutations happen
// under one lock, so favouriting the same comment twice bumps the counter once.
func (s *Store) Favourite(_ context.Context, user *model.User, comment *model.Comment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if containsComment(user.FavouriteComments, comment) {
		return false
	}
	user.FavouriteComments = append(user.FavouriteComments, comment)
	comment.FavouritesCount++
	return true
}

// FollowedItems returns a snapshot of the items the user follows.
func (s *Store) FollowedItems(_ context.Context, user *model.User) []*model.CatalogueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(user.FollowedItems)
}

// IsFollowing reports whether the user follows the item.
func (s *Store) IsFollowing(_ context.Context, user *model.User, item *model.CatalogueItem) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsItem(user.FollowedItems, item)
}

// Follow records the relation on both sides, user.FollowedItems and
// item.Followers, in one step, so the two lists cannot drift apart.
func (s *Store) Follow(_ context.Context, user *model.User, item *model.CatalogueItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if containsItem(user.FollowedItems, item) {
		return false
	}
	user.FollowedItems = append(user.FollowedItems, item)
	item.Followers = append(item.Followers, user)
	return true
}

// Notifications returns a snapshot of the user's pending notifications in
// insertion order.
func (s *Store) Notifications(_ context.Context, user *model.User) []*model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(user.Notifications)
}

// AddNotification appends to the user's notification list.
func (s *Store) AddNotification(_ context.Context, user *model.User, n *model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Notifications = append(user.Notifications, n)
}

// RemoveNotificationsForComment drops every notification referencing the
// comment. Duplicates (a follower notified twice) are all removed.
func (s *Store) RemoveNotificationsForComment(_ context.Context, user *model.User, comment *model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := user.Notifications[:0]
	for _, n := range user.Notifications {
		if n.Comment == nil || n.Comment.ID != comment.ID {
			kept = append(kept, n)
		}
	}
	user.Notifications = kept
}

// RemoveNotificationsForComments drops every notification whose comment is a
// member of the given set.
func (s *Store) RemoveNotificationsForComments(_ context.Context, user *model.User, comments []*model.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int]bool, len(comments))
	for _, c := range comments {
		seen[c.ID] = true
	}

	kept := user.Notifications[:0]
	for _, n := range user.Notifications {
		if n.Comment == nil || !seen[n.Comment.ID] {
			kept = append(kept, n)
		}
	}
	user.Notifications = kept
}

func containsComment(comments []*model.Comment, comment *model.Comment) bool {
	for _, c := range comments {
		if c.ID == comment.ID {
			return true
		}
	}
	return false
}

func containsItem(items []*model.CatalogueItem, item *model.CatalogueItem) bool {
	for _, i := range items {
		if i.ID == item.ID {
			return true
		}
	}
	return false
}
