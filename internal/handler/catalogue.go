package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fzaki/crowdlib/internal/service"
)

// CatalogueHandler serves catalogue items and their comment pages.
type CatalogueHandler struct {
	catalogue *service.CatalogueService
	users     *service.UserService
	links     service.Links
	logger    *slog.Logger
}

// NewCatalogueHandler creates a CatalogueHandler.
func NewCatalogueHandler(catalogue *service.CatalogueService, users *service.UserService, links service.Links, logger *slog.Logger) *CatalogueHandler {
	return &CatalogueHandler{
		catalogue: catalogue,
		users:     users,
		links:     links,
		logger:    logger,
	}
}

// HandleList returns all catalogue items.
//
// HTTP: GET /api/items
func (h *CatalogueHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalogue.Items(r.Context()))
}

// HandleGet returns a single catalogue item.
//
// HTTP: GET /api/items/{itemID}
func (h *CatalogueHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	itemID, err := parseID(r.PathValue("itemID"), "itemID")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.catalogue.Item(r.Context(), itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleComments returns an item's comments, whole or paginated.
//
// HTTP: GET /api/items/{itemID}/comments[?start=N&size=M]
//
// When both start and size are given the response carries a
// `Link: <...>; rel="next"` header pointing at the next page. Once the list
// is exhausted the next link wraps back to start=0 rather than disappearing;
// clients paging through comments should stop when the link returns to the
// first page.
//
// Reading comments marks them seen: any of the caller's notifications that
// reference a returned comment are removed.
func (h *CatalogueHandler) HandleComments(w http.ResponseWriter, r *http.Request) {
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

	var page *service.PageRequest
	startRaw, sizeRaw := r.URL.Query().Get("start"), r.URL.Query().Get("size")
	if startRaw != "" && sizeRaw != "" {
		start, err := parseID(startRaw, "start")
		if err != nil {
			writeError(w, err)
			return
		}
		size, err := parseID(sizeRaw, "size")
		if err != nil {
			writeError(w, err)
			return
		}
		page = &service.PageRequest{Start: start, Size: size}
	}

	result, err := h.catalogue.Comments(r.Context(), user, itemID, page)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Paged {
		next := h.links.CommentsPage(itemID, result.NextStart, page.Size)
		w.Header().Set("Link", fmt.Sprintf("<%s>; rel=%q", next, "next"))
	}

	writeJSON(w, http.StatusOK, result.Comments)
}
