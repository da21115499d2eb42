package memory

import (
	"context"
	"sort"
	"strconv"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/model"
)

// AllItems returns every catalogue item, ordered by id.
func (s *Store) AllItems(_ context.Context) []*model.CatalogueItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*model.CatalogueItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

// ItemByID looks a catalogue item up by id.
func (s *Store) ItemByID(_ context.Context, id int) (*model.CatalogueItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, apperror.NotFound("catalogue item", strconv.Itoa(id))
	}
	return item, nil
}

// Comments returns a snapshot of the item's top-level comments in insertion
// order.
func (s *Store) Comments(_ context.Context, item *model.CatalogueItem) []*model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(item.Comments)
}

// CommentSubset returns the bounded sublist [start, start+size) of the item's
// comments. A start at or past the end of the list yields an empty slice; a
// window running past the end is truncated.
func (s *Store) CommentSubset(_ context.Context, item *model.CatalogueItem, start, size int) []*model.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comments := item.Comments
	if start < 0 {
		start = 0
	}
	if size < 0 {
		size = 0
	}

	switch {
	case start >= len(comments):
		return []*model.Comment{}
	case start+size > len(comments):
		return snapshot(comments[start:])
	default:
		return snapshot(comments[start : start+size])
	}
}

// RemainingComments returns how many of the item's comments sit at or after
// the given start offset: max(0, len-start).
func (s *Store) RemainingComments(_ context.Context, item *model.CatalogueItem, start int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if start >= len(item.Comments) {
		return 0
	}
	return len(item.Comments) - start
}

// AddItemComment appends the comment and its navigation link to the item.
func (s *Store) AddItemComment(_ context.Context, item *model.CatalogueItem, comment *model.Comment, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.Comments = append(item.Comments, comment)
	item.LinksToEachComment = append(item.LinksToEachComment, link)
}

// Followers returns a snapshot of the item's followers in follow order.
func (s *Store) Followers(_ context.Context, item *model.CatalogueItem) []*model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(item.Followers)
}
