package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fzaki/crowdlib/internal/config"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	cfg := config.Config{
		Port:       8080,
		BaseURL:    "http://localhost:8080",
		JWTSecret:  "test-secret-at-least-16-chars",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := New(cfg, logger)
	require.NoError(t, err)
	return srv.Router()
}

// do sends a request through the router with an optional bearer token and
// JSON body, and returns the recorded response.
func do(t *testing.T, h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := do(t, h, http.MethodPost, "/api/login", "", body)
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	h := newTestServer(t)

	t.Run("valid credentials", func(t *testing.T) {
		body := `{"username":"student1","password":"whoopey"}`
		rec := do(t, h, http.MethodPost, "/api/login", "", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "student1", resp.User.Username)
		assert.Equal(t, "guest", resp.User.Role)

		// The password hash never leaves the server.
		assert.NotContains(t, rec.Body.String(), "passwordHash")
		assert.NotContains(t, rec.Body.String(), "$2a$")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "token", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		body := `{"username":"student1","password":"nope"}`
		rec := do(t, h, http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		body := `{"username":"ghost","password":"whoopey"}`
		rec := do(t, h, http.MethodPost, "/api/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/login", "", `{"username":"student1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/login", "", `{nope`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	h := newTestServer(t)

	paths := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/items"},
		{http.MethodGet, "/api/items/1"},
		{http.MethodGet, "/api/items/1/comments"},
		{http.MethodPost, "/api/items/1/comments"},
		{http.MethodGet, "/api/users/self"},
		{http.MethodGet, "/api/users/self/notifications"},
	}

	for _, p := range paths {
		rec := do(t, h, p.method, p.target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.target)
	}
}

func TestListAndGetItems(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "student1", "whoopey")

	rec := do(t, h, http.MethodGet, "/api/items", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Author string `json:"author"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 3)
	assert.Equal(t, "Book1", items[0].Title)
	assert.Equal(t, "Author1", items[0].Author)

	rec = do(t, h, http.MethodGet, "/api/items/2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book2")

	rec = do(t, h, http.MethodGet, "/api/items/99", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/items/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentLifecycle(t *testing.T) {
	h := newTestServer(t)
	student1 := login(t, h, "student1", "whoopey")
	student2 := login(t, h, "student2", "password")
	lecturer := login(t, h, "lecturer", "secret")

	// Post a comment.
	rec := do(t, h, http.MethodPost, "/api/items/1/comments", student1, `{"content":"First!"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment struct {
		ID            int    `json:"id"`
		Content       string `json:"content"`
		LinkToSelf    string `json:"linkToSelf"`
		LinkToReplies string `json:"linkToReplies"`
		Owner         struct {
			Username string `json:"username"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, "First!", comment.Content)
	assert.Equal(t, "student1", comment.Owner.Username)
	assert.Equal(t, "http://localhost:8080/api/items/1/comments/1", comment.LinkToSelf)

	// It shows up in the item's comment list.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First!")

	// Reply to it.
	rec = do(t, h, http.MethodPost, fmt.Sprintf("/api/items/1/comments/%d", comment.ID), student2, `{"content":"Disagree."}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var reply struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reply))

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/items/1/comments/%d/replies", comment.ID), student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disagree.")

	// A third user cannot tombstone someone else's comment; the response is
	// the untouched comment.
	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/api/items/1/comments/%d", comment.ID), student2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First!")

	// An admin can. The record stays addressable with tombstone content and
	// an emptied reply list.
	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/api/items/1/comments/%d", comment.ID), lecturer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted by an administrator")

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/items/1/comments/%d", comment.ID), student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "deleted by an administrator")

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/items/1/comments/%d/replies", comment.ID), student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	// The orphaned reply is still reachable by id.
	rec = do(t, h, http.MethodGet, fmt.Sprintf("/api/items/1/comments/%d", reply.ID), student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disagree.")

	// Unknown comment ids are 404s.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments/99", student1, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Empty content is rejected.
	rec = do(t, h, http.MethodPost, "/api/items/1/comments", student1, `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCommentPagination(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "student1", "whoopey")

	for i := 0; i < 4; i++ {
		body := fmt.Sprintf(`{"content":"comment %d"}`, i)
		rec := do(t, h, http.MethodPost, "/api/items/1/comments", token, body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, h, http.MethodGet, "/api/items/1/comments?start=0&size=2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page, 2)
	assert.Equal(t, "comment 0", page[0].Content)
	assert.Equal(t, "comment 1", page[1].Content)
	assert.Equal(t,
		`<http://localhost:8080/api/items/1/comments?start=2&size=2>; rel="next"`,
		rec.Header().Get("Link"),
	)

	// The last page's next link wraps back to the first page.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments?start=2&size=2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t,
		`<http://localhost:8080/api/items/1/comments?start=0&size=2>; rel="next"`,
		rec.Header().Get("Link"),
	)

	// Negative offsets are rejected.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments?start=-1&size=2", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Without both parameters the full list comes back, no Link header.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments?start=2", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Len(t, page, 4)
	assert.Empty(t, rec.Header().Get("Link"))
}

func TestFavourites(t *testing.T) {
	h := newTestServer(t)
	student1 := login(t, h, "student1", "whoopey")
	student2 := login(t, h, "student2", "password")

	rec := do(t, h, http.MethodPost, "/api/items/1/comments", student1, `{"content":"Nice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Favouriting twice bumps the counter once.
	for i := 0; i < 2; i++ {
		rec = do(t, h, http.MethodPut, "/api/users/self/favourites/1", student2, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	var comment struct {
		FavouritesCount int `json:"favouritesCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, 1, comment.FavouritesCount)

	rec = do(t, h, http.MethodGet, "/api/users/self/favourites", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nice")

	// The other user's favourites list is untouched.
	rec = do(t, h, http.MethodGet, "/api/users/self/favourites", student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/users/self/favourites/99", student2, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFollowAndNotifications(t *testing.T) {
	h := newTestServer(t)
	student1 := login(t, h, "student1", "whoopey")
	student2 := login(t, h, "student2", "password")

	rec := do(t, h, http.MethodPut, "/api/users/self/followedItems/1", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/users/self/followedItems", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Book1")

	// A new comment on the followed item produces a notification.
	rec = do(t, h, http.MethodPost, "/api/items/1/comments", student1, `{"content":"News"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/users/self/notifications", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var notifications []struct {
		LinkToNewComment string `json:"linkToNewComment"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "http://localhost:8080/api/items/1/comments/1", notifications[0].LinkToNewComment)

	// The commenter follows nothing and has no notifications.
	rec = do(t, h, http.MethodGet, "/api/users/self/notifications", student1, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	// Reading the comment clears the notification.
	rec = do(t, h, http.MethodGet, "/api/items/1/comments/1", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/users/self/notifications", student2, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestSelf(t *testing.T) {
	h := newTestServer(t)
	token := login(t, h, "lecturer", "secret")

	rec := do(t, h, http.MethodGet, "/api/users/self", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var user struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		Name     string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "lecturer", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "Alex", user.Name)
}
