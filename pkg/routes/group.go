// Package routes declares HTTP routes as nested groups and registers them on
// a ServeMux using method-qualified patterns.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
// Pattern is relative to the enclosing group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Summary string
}

// Group organizes routes under a common prefix. Children inherit the prefix.
// Tag names the group in generated API documentation.
type Group struct {
	Prefix   string
	Tag      string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux and returns the
// registered patterns in registration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	Walk(func(g Group, path string, r Route) {
		pattern := r.Method + " " + path
		mux.HandleFunc(pattern, r.Handler)
		patterns = append(patterns, pattern)
	}, groups...)
	return patterns
}

// Walk calls fn for every route with its full path and innermost group.
func Walk(fn func(g Group, path string, r Route), groups ...Group) {
	for _, group := range groups {
		walk("", group, fn)
	}
}

func walk(parent string, group Group, fn func(Group, string, Route)) {
	prefix := parent + group.Prefix
	for _, route := range group.Routes {
		fn(group, prefix+route.Pattern, route)
	}
	for _, child := range group.Children {
		walk(prefix, child, fn)
	}
}
