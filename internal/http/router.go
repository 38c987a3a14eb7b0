package http

import (
	nethttp "net/http"

	"wasup-chucks/internal/http/handlers"
)

type route struct {
	pattern string
	handler nethttp.Handler
}

// NewRouter registers the refresher's operational routes. admin and metrics are optional;
// favorites routes are mounted when admin carries a favorites editor.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler, metrics nethttp.Handler) nethttp.Handler {
	routes := []route{
		{"GET /health", nethttp.HandlerFunc(handler.Health)},
		{"GET /ready", nethttp.HandlerFunc(handler.Ready)},
		{"GET /status", nethttp.HandlerFunc(handler.Status)},
	}
	if admin != nil {
		routes = append(routes, route{"POST /admin/refresh", nethttp.HandlerFunc(admin.Refresh)})
	}
	if admin.ServesFavorites() {
		routes = append(routes,
			route{"GET /admin/favorites", nethttp.HandlerFunc(admin.ListFavorites)},
			route{"POST /admin/favorites/items", nethttp.HandlerFunc(admin.ToggleFavoriteItem)},
			route{"POST /admin/favorites/keywords", nethttp.HandlerFunc(admin.AddFavoriteKeyword)},
			route{"DELETE /admin/favorites/keywords/{keyword}", nethttp.HandlerFunc(admin.RemoveFavoriteKeyword)},
		)
	}
	if metrics != nil {
		routes = append(routes, route{"GET /metrics", metrics})
	}

	mux := nethttp.NewServeMux()
	for _, r := range routes {
		mux.Handle(r.pattern, r.handler)
	}
	return mux
}
