package main

import (
	"net/http"
	"strings"

	mw "zeromonos.org/zeromonos-web/internal/middleware"
)

const defaultErrorMessage = "A operação não pôde ser concluída. Por favor, tente novamente."

// ErrorHandler renders the shared error page. The message is sourced
// in order from the "message" query parameter, the legacy "error"
// parameter, and the session flash; the default covers a direct visit.
func ErrorHandler(w http.ResponseWriter, r *http.Request) {
	msg := strings.TrimSpace(r.URL.Query().Get("message"))
	if msg == "" {
		msg = strings.TrimSpace(r.URL.Query().Get("error"))
	}
	if msg == "" {
		msg = mw.GetSession(r).TakeFlashError()
	}
	if msg == "" {
		msg = defaultErrorMessage
	}

	vm := newPageData(r, "Ocorreu um erro")
	vm.Error = &ErrorView{Message: msg}
	renderPage(w, r, "error", vm)
}

// redirectToError stashes the message in the session and sends the
// browser to the error page. htmx requests get HX-Redirect so the full
// page navigates instead of the fragment target.
func redirectToError(w http.ResponseWriter, r *http.Request, msg string) {
	mw.GetSession(r).SetFlashError(msg)
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Redirect", "/error")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, "/error", http.StatusSeeOther)
}

// NotFoundHandler reuses the error page for unknown routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "Página não encontrada")
	vm.Error = &ErrorView{Message: "A página que procura não existe."}
	w.WriteHeader(http.StatusNotFound)
	renderPage(w, r, "error", vm)
}
