package middleware

import "net/http"

// HTMX flags fragment requests in the context. Boosted requests
// (hx-boost navigations) expect a complete document, same as a regular
// browser navigation, so they are not treated as fragments.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true" &&
			r.Header.Get("HX-Boosted") != "true"
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), is)))
	})
}
