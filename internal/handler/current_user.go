package handler

import (
	"net/http"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/auth"
	"github.com/fzaki/crowdlib/internal/model"
	"github.com/fzaki/crowdlib/internal/service"
)

// currentUser resolves the authenticated account for the request. The auth
// middleware guarantees a username is present on protected routes; the store
// lookup can still miss if a token outlives its account.
func currentUser(r *http.Request, users *service.UserService) (*model.User, error) {
	username, ok := auth.UsernameFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthorized("valid authentication required")
	}
	return users.GetByUsername(r.Context(), username)
}
