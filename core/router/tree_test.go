package router_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/core/handler"
	"github.com/dmitrymomot/waypoint/core/response"
	"github.com/dmitrymomot/waypoint/core/router"
)

// named returns a handler that renders its own name, so a lookup can be
// traced back to the registration that produced it.
func named(name string) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		return response.String(name)
	}
}

// nameOf invokes the matched handler and returns the name it renders.
func nameOf(t *testing.T, m router.Match[*router.Context]) string {
	t.Helper()
	require.True(t, m.Found(), "expected a match")
	resp := m.Handler(nil).(*response.Content)
	return string(resp.Body())
}

func TestTreeStaticRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	routes := []string{
		"/",
		"/users",
		"/users/profile",
		"/admin",
		"/admin/users",
		"/api/v1/posts",
		"/api/v2/posts",
	}
	for _, route := range routes {
		r.Get(route, named(route))
	}

	for _, route := range routes {
		t.Run("route_"+route, func(t *testing.T) {
			m := r.Find(http.MethodGet, route)
			assert.Equal(t, route, nameOf(t, m))
			assert.Equal(t, route, m.Pattern)
			assert.Empty(t, m.Params)
		})
	}

	assert.False(t, r.Find(http.MethodGet, "/api").Found())
	assert.False(t, r.Find(http.MethodGet, "/users/profile/extra").Found())
}

func TestTreeParameterRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/user/:user", named("user"))
	r.Get("/user/:user/:post/data", named("post-data"))

	t.Run("single param", func(t *testing.T) {
		m := r.Find(http.MethodGet, "/user/42")
		assert.Equal(t, "user", nameOf(t, m))
		assert.Equal(t, map[string]string{"user": "42"}, m.Params)
	})

	t.Run("multiple params", func(t *testing.T) {
		m := r.Find(http.MethodGet, "/user/42/9/data")
		assert.Equal(t, "post-data", nameOf(t, m))
		assert.Equal(t, map[string]string{"user": "42", "post": "9"}, m.Params)
	})

	t.Run("param does not span segments", func(t *testing.T) {
		assert.False(t, r.Find(http.MethodGet, "/user/42/9").Found())
	})

	t.Run("empty segment does not bind", func(t *testing.T) {
		assert.False(t, r.Find(http.MethodGet, "/user/").Found())
	})
}

func TestTreeWildcardRoutes(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/posts/*post", named("posts"))

	tests := []struct {
		path  string
		value string
	}{
		{"/posts/123/abc", "123/abc"},
		{"/posts/123", "123"},
		{"/posts/a/b/c/d", "a/b/c/d"},
		{"/posts/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := r.Find(http.MethodGet, tt.path)
			assert.Equal(t, "posts", nameOf(t, m))
			assert.Equal(t, map[string]string{"post": tt.value}, m.Params)
		})
	}

	assert.False(t, r.Find(http.MethodGet, "/posts").Found())
}

func TestTreePrecedence(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	// registered from least to most specific on purpose
	r.Get("/posts/*rest", named("wildcard"))
	r.Get("/posts/:id", named("param"))
	r.Get("/posts/new", named("static"))
	r.Get("/posts/:id/comments", named("comments"))

	tests := []struct {
		path   string
		want   string
		params map[string]string
	}{
		{"/posts/new", "static", nil},
		{"/posts/123", "param", map[string]string{"id": "123"}},
		{"/posts/123/comments", "comments", map[string]string{"id": "123"}},
		// the param branch dead-ends, so the catch-all takes over
		{"/posts/123/abc", "wildcard", map[string]string{"rest": "123/abc"}},
		{"/posts/new/comments", "comments", map[string]string{"id": "new"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			m := r.Find(http.MethodGet, tt.path)
			assert.Equal(t, tt.want, nameOf(t, m))
			if tt.params == nil {
				assert.Empty(t, m.Params)
			} else {
				assert.Equal(t, tt.params, m.Params)
			}
		})
	}
}

func TestTreeLastRegistrationWins(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/same/:id", named("first"))
	r.Get("/same/:id", named("second"))

	assert.Equal(t, "second", nameOf(t, r.Find(http.MethodGet, "/same/1")))
	assert.Len(t, r.Routes(), 1)
}

func TestTreeMethodsAreSeparate(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/items", named("get"))
	r.Post("/items", named("post"))

	assert.Equal(t, "get", nameOf(t, r.Find(http.MethodGet, "/items")))
	assert.Equal(t, "post", nameOf(t, r.Find(http.MethodPost, "/items")))
	assert.False(t, r.Find(http.MethodPut, "/items").Found())

	m := r.Find("PURGE", "/items")
	assert.False(t, m.Found())
	assert.Empty(t, m.Params)
}

func TestTreeRegistrationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		setup   string
		err     error
	}{
		{name: "missing leading slash", pattern: "users", err: router.ErrInvalidPattern},
		{name: "empty pattern", pattern: "", err: router.ErrInvalidPattern},
		{name: "non-terminal wildcard", pattern: "/a/*x/b", err: router.ErrWildcardPosition},
		{name: "unnamed param", pattern: "/a/:", err: router.ErrInvalidPattern},
		{name: "unnamed wildcard", pattern: "/a/*", err: router.ErrInvalidPattern},
		{name: "duplicate param", pattern: "/a/:id/b/:id", err: router.ErrDuplicateParam},
		{name: "conflicting param", setup: "/a/:id", pattern: "/a/:name", err: router.ErrParamConflict},
		{name: "conflicting wildcard", setup: "/a/*rest", pattern: "/a/*path", err: router.ErrParamConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			if tt.setup != "" {
				r.Get(tt.setup, named("setup"))
			}

			defer func() {
				rec := recover()
				require.NotNil(t, rec, "expected registration to panic")
				err, ok := rec.(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, tt.err)
			}()
			r.Get(tt.pattern, named("bad"))
		})
	}
}

func TestTreeSiblingKinds(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Get("/files/readme", named("static"))
	r.Get("/files/:name", named("param"))
	r.Get("/files/*path", named("wildcard"))

	assert.Equal(t, "static", nameOf(t, r.Find(http.MethodGet, "/files/readme")))
	assert.Equal(t, "param", nameOf(t, r.Find(http.MethodGet, "/files/a.txt")))
	assert.Equal(t, "wildcard", nameOf(t, r.Find(http.MethodGet, "/files/dir/a.txt")))
}
