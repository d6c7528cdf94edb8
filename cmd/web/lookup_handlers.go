package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"zeromonos.org/zeromonos-web/internal/gateway"
	mw "zeromonos.org/zeromonos-web/internal/middleware"
)

// LookupHandler renders the booking-lookup page. When a token arrives
// via the query string (deep link from the confirmation panel), the
// page fetches the result immediately on load.
func LookupHandler(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	vm := newPageData(r, "Consultar Agendamento")
	vm.Lookup = &LookupView{Token: token, AutoSearch: token != ""}
	renderPage(w, r, "lookup", vm)
}

// LookupResultFrag fetches one booking and renders the detail card. A
// blank token renders the validation message without touching the API.
func LookupResultFrag(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		renderTemplate(w, r, "frag_lookup_result", LookupResultView{
			Message: "Por favor, insira um token válido.",
		})
		return
	}

	b, err := apiClient.GetBooking(r.Context(), token)
	if err != nil {
		renderTemplate(w, r, "frag_lookup_result", LookupResultView{
			Message: lookupErrorMessage(err),
		})
		return
	}

	renderTemplate(w, r, "frag_lookup_result", LookupResultView{
		Booking:   buildBookingDetailView(&b),
		CSRFToken: mw.GetSession(r).CSRFToken,
	})
}

// BookingCancelHandler cancels a booking and re-renders the detail
// card from a fresh fetch, so the displayed state is always the
// server's, not a local guess.
func BookingCancelHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := apiClient.CancelBooking(r.Context(), token); err != nil {
		if mw.IsHTMX(r.Context()) {
			renderTemplate(w, r, "frag_lookup_result", LookupResultView{
				Message: gateway.ErrorMessage(err),
			})
			return
		}
		redirectToError(w, r, gateway.ErrorMessage(err))
		return
	}

	b, err := apiClient.GetBooking(r.Context(), token)
	if err != nil {
		renderTemplate(w, r, "frag_lookup_result", LookupResultView{
			Message: gateway.ErrorMessage(err),
		})
		return
	}

	renderTemplate(w, r, "frag_lookup_result", LookupResultView{
		Booking:   buildBookingDetailView(&b),
		CSRFToken: mw.GetSession(r).CSRFToken,
	})
}

// lookupErrorMessage specializes the not-found case; everything else
// falls through to the shared gateway message.
func lookupErrorMessage(err error) string {
	var se *gateway.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return "Agendamento não encontrado. Verifique o token e tente novamente."
	}
	return gateway.ErrorMessage(err)
}
