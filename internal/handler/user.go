package handler

import (
	"log/slog"
	"net/http"

	"github.com/fzaki/crowdlib/internal/service"
)

// UserHandler serves the authenticated user's own resources: profile,
// favourites, followed items and notifications.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleSelf returns the authenticated user's profile.
//
// HTTP: GET /api/users/self
func (h *UserHandler) HandleSelf(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleFavourites returns the user's favourite comments.
//
// HTTP: GET /api/users/self/favourites
func (h *UserHandler) HandleFavourites(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.users.Favourites(r.Context(), user))
}

// HandleAddFavourite marks a comment as a favourite. Repeating the call is a
// no-op; the favourites counter on the comment is bumped only once.
//
// HTTP: PUT /api/users/self/favourites/{commentID}
func (h *UserHandler) HandleAddFavourite(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	commentID, err := parseID(r.PathValue("commentID"), "commentID")
	if err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.users.AddFavourite(r.Context(), user, commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// HandleFollowedItems returns the items the user follows.
//
// HTTP: GET /api/users/self/followedItems
func (h *UserHandler) HandleFollowedItems(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.users.FollowedItems(r.Context(), user))
}

// HandleFollowItem subscribes the user to an item's notifications.
//
// HTTP: PUT /api/users/self/followedItems/{itemID}
func (h *UserHandler) HandleFollowItem(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	itemID, err := parseID(r.PathValue("itemID"), "itemID")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.users.FollowItem(r.Context(), user, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleNotifications returns the user's pending notifications. A
// notification disappears from this list once the referenced comment has
// been read.
//
// HTTP: GET /api/users/self/notifications
func (h *UserHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.users)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.users.Notifications(r.Context(), user))
}
