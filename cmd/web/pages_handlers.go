package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zeromonos.org/zeromonos-web/internal/content"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "ZeroMonos")
	renderPage(w, r, "home", vm)
}

// InfoHandler renders a markdown-backed informational page.
func InfoHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := contentStore.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			NotFoundHandler(w, r)
			return
		}
		redirectToError(w, r, defaultErrorMessage)
		return
	}

	vm := newPageData(r, page.Title)
	vm.Info = &page
	renderPage(w, r, "info", vm)
}
