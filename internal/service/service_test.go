package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/repository/memory"
)

// testEnv wires the full service chain onto a fresh in-memory store with two
// guest users, one admin and a single catalogue item.
type testEnv struct {
	store         *memory.Store
	notifications *NotificationService
	catalogue     *CatalogueService
	comments      *CommentService
	users         *UserService

	student1 *model.User
	student2 *model.User
	lecturer *model.User
	item     *model.CatalogueItem
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	links := Links{Base: "http://test"}

	store := memory.New()

	env := &testEnv{
		store:    store,
		student1: &model.User{ID: 1, Username: "student1", Role: model.RoleGuest},
		student2: &model.User{ID: 2, Username: "student2", Role: model.RoleGuest},
		lecturer: &model.User{ID: 3, Username: "lecturer", Role: model.RoleAdmin},
		item:     &model.CatalogueItem{ID: 1, Title: "Book1", Author: "Author1"},
	}
	store.AddUser(env.student1)
	store.AddUser(env.student2)
	store.AddUser(env.lecturer)
	store.AddItem(env.item)

	env.notifications = NewNotificationService(store, store, logger)
	env.catalogue = NewCatalogueService(store, env.notifications, logger)
	env.comments = NewCommentService(store, store, env.notifications, links, logger)
	env.users = NewUserService(store, store, store, logger)

	return env
}
