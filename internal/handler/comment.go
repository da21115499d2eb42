package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fzaki/crowdlib/internal/apperror"
	"github.com/fzaki/crowdlib/internal/service"
)

// CommentHandler serves comment creation, reads, replies and deletion.
type CommentHandler struct {
	comments *service.CommentService
	users    *service.UserService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments *service.CommentService, users *service.UserService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		users:    users,
		logger:   logger,
	}
}

// HandleCreate posts a new top-level comment on an item. Followers of the
// item each receive a notification.
//
// HTTP: POST /api/items/{itemID}/comments
// Body: {"content":"..."} or raw text/plain
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	content, err := readContent(r)
	if err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.AddToItem(r.Context(), user, itemID, content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// HandleGet returns a single comment and marks it read for the caller.
//
// HTTP: GET /api/items/{itemID}/comments/{commentID}
func (h *CommentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.comments.Get(r.Context(), user, commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// HandleReply posts a reply under an existing comment.
//
// HTTP: POST /api/items/{itemID}/comments/{commentID}
func (h *CommentHandler) HandleReply(w http.ResponseWriter, r *http.Request) {
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

	content, err := readContent(r)
	if err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.comments.Reply(r.Context(), user, commentID, content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reply)
}

// HandleReplies returns the direct replies of a comment.
//
// HTTP: GET /api/items/{itemID}/comments/{commentID}/replies
func (h *CommentHandler) HandleReplies(w http.ResponseWriter, r *http.Request) {
	commentID, err := parseID(r.PathValue("commentID"), "commentID")
	if err != nil {
		writeError(w, err)
		return
	}

	replies, err := h.comments.Replies(r.Context(), commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, replies)
}

// HandleDelete tombstones a comment and returns it. Owners and admins get
// the tombstone applied; anyone else gets the comment back unchanged.
//
// HTTP: DELETE /api/items/{itemID}/comments/{commentID}
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	comment, err := h.comments.Delete(r.Context(), user, commentID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// readContent extracts comment content from the request body: a JSON object
// with a "content" field, or the raw body for text/plain clients.
func readContent(r *http.Request) (string, error) {
	defer r.Body.Close()

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", apperror.ValidationFailed("content", "invalid JSON body")
		}
		return body.Content, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, service.MaxCommentLength+1))
	if err != nil {
		return "", apperror.ValidationFailed("content", "unreadable request body")
	}
	return string(raw), nil
}
