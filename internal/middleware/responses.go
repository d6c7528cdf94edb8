package middleware

import (
	"fmt"
	"html/template"
	"net/http"
)

// Error writes a failure response. Fragment requests get an alert
// snippet htmx can swap into the target, so the failure is visible in
// place; everything else gets the stdlib plain-text error.
func Error(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if IsHTMX(r.Context()) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(code)
		_, _ = fmt.Fprintf(w, `<p class="alert alert-error">%s</p>`, template.HTMLEscapeString(msg))
		return
	}
	http.Error(w, msg, code)
}
