// Package memory implements the repository interfaces with plain in-process
// maps. All state lives here for the lifetime of the process: a restart loses
// everything except what Seed recreates. There are no transactions: every
// operation is a single mutation under the store lock, last write wins.
package memory

import (
	"fmt"
	"sync"

	"github.com/fzaki/crowdlib/internal/model"
)

// Store owns every entity in the system. It is constructed once in main and
// passed to the services; nothing else holds ambient state.
//
// One RWMutex guards the maps and all entity fields. Entities reference each
// other freely (comment → item → followers → notifications), so a coarse
// store-level lock is the simplest discipline that keeps every multi-entity
// mutation (follow, favourite, notify) atomic.
type Store struct {
	mu sync.RWMutex

	users    map[string]*model.User   // keyed by username
	items    map[int]*model.CatalogueItem
	comments map[int]*model.Comment

	nextCommentID int
}

// snapshot copies a slice so callers never observe later mutations. The
// result is never nil; empty collections serialize as [] rather than null.
func snapshot[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]*model.User),
		items:    make(map[int]*model.CatalogueItem),
		comments: make(map[int]*model.Comment),
	}
}

// AddUser registers a user, keyed by username. Last write wins on duplicates.
func (s *Store) AddUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Username] = u
}

// AddItem registers a catalogue item.
func (s *Store) AddItem(item *model.CatalogueItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Seed loads the fixed demo dataset: three catalogue items and three user
// accounts. Passwords are hashed through the supplied function before they are
// stored. baseURL is used to build each item's comments link.
func (s *Store) Seed(baseURL string, hash func(string) (string, error)) error {
	users := []struct {
		id       int
		title    string
		name     string
		surname  string
		role     model.Role
		username string
		password string
	}{
		{1, "Mr.", "Fady", "Zaki", model.RoleGuest, "student1", "whoopey"},
		{2, "Mr.", "John", "Doe", model.RoleGuest, "student2", "password"},
		{3, "Mr.", "Alex", "Voss", model.RoleAdmin, "lecturer", "secret"},
	}

	for _, u := range users {
		hashed, err := hash(u.password)
		if err != nil {
			return fmt.Errorf("memory: seeding user %s: %w", u.username, err)
		}
		s.AddUser(&model.User{
			ID:           u.id,
			Title:        u.title,
			Name:         u.name,
			Surname:      u.surname,
			Role:         u.role,
			Username:     u.username,
			PasswordHash: hashed,
		})
	}

	for id := 1; id <= 3; id++ {
		s.AddItem(&model.CatalogueItem{
			ID:                id,
			Title:             fmt.Sprintf("Book%d", id),
			Author:            fmt.Sprintf("Author%d", id),
			LinkToAllComments: fmt.Sprintf("%s/api/items/%d/comments", baseURL, id),
		})
	}

	return nil
}
