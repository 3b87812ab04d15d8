package hxmdx

import (
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context, so a root registry placed on the request context with
// WithComponents is in scope for the whole tree:
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxmdx.Render(w, r, docs.Page(nil))
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. Page handlers use this to
// answer with the document fragment instead of the full layout:
//
//	if hxmdx.IsHTMX(r) {
//	    return docs.Content(nil)
//	}
//	return docs.Page(nil)
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// IsBoosted returns true if the request is a boosted navigation (hx-boost).
func IsBoosted(r *http.Request) bool {
	return r.Header.Get("HX-Boosted") == "true"
}
