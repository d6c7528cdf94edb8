package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zeromonos.org/zeromonos-web/internal/booking"
	"zeromonos.org/zeromonos-web/internal/format"
	"zeromonos.org/zeromonos-web/internal/gateway"
	mw "zeromonos.org/zeromonos-web/internal/middleware"
	"zeromonos.org/zeromonos-web/internal/suggest"
)

// BookingNewHandler renders the new-booking form.
func BookingNewHandler(w http.ResponseWriter, r *http.Request) {
	vm := newPageData(r, "Agendar Recolha")
	vm.Form = buildBookingFormView("", "", "", "")
	vm.Form.CSRFToken = vm.CSRFToken
	renderPage(w, r, "booking_new", vm)
}

// BookingCreateHandler validates and submits the booking form. Field
// errors re-render the form; gateway failures route to the error page.
func BookingCreateHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	municipality := strings.TrimSpace(r.PostFormValue("municipality"))
	date := strings.TrimSpace(r.PostFormValue("requestedDate"))
	slot := strings.TrimSpace(r.PostFormValue("timeSlot"))
	desc := strings.TrimSpace(r.PostFormValue("description"))

	form := buildBookingFormView(municipality, date, slot, desc)
	form.CSRFToken = mw.GetSession(r).CSRFToken

	if municipality == "" {
		form.Errors["municipality"] = "Por favor, indique o município."
	}
	if slot == "" {
		form.Errors["timeSlot"] = "Por favor, escolha um período."
	}
	if desc == "" {
		form.Errors["description"] = "Por favor, descreva os itens a recolher."
	}
	if date == "" {
		form.Errors["requestedDate"] = "Por favor, escolha a data da recolha."
	} else if d, err := format.ParseAPIDate(date); err != nil {
		form.Errors["requestedDate"] = "Data inválida."
	} else if err := booking.ValidateRequestedDate(d, time.Now()); err != nil {
		form.Errors["requestedDate"] = err.Error()
	}

	if len(form.Errors) > 0 {
		vm := newPageData(r, "Agendar Recolha")
		vm.Form = form
		w.WriteHeader(http.StatusUnprocessableEntity)
		renderPage(w, r, "booking_new", vm)
		return
	}

	created, err := apiClient.CreateBooking(r.Context(), gateway.CreateRequest{
		MunicipalityName: municipality,
		RequestedDate:    date,
		TimeSlot:         booking.TimeSlot(slot),
		Description:      desc,
	})
	if err != nil {
		redirectToError(w, r, gateway.ErrorMessage(err))
		return
	}

	vm := newPageData(r, "Agendamento Criado")
	vm.Created = buildBookingCreatedView(&created)
	renderPage(w, r, "booking_created", vm)
}

// SuggestFrag renders the municipality autocomplete dropdown. The
// dropdown state machine lives server-side; the client round-trips the
// query, the cursor and the pressed key with every interaction.
func SuggestFrag(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	cursor := -1
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			cursor = n
		}
	}

	names, err := muniLoader.Load(r.Context())
	if err != nil {
		v := SuggestView{Query: query, Cursor: -1, Error: gateway.ErrorMessage(err)}
		renderTemplate(w, r, "frag_suggestions", v)
		return
	}

	// Rebuild the previous selection state from the wire, then apply the
	// event that triggered this request.
	sel := suggest.Selection{
		Items:  suggest.Filter(names, query),
		Cursor: cursor,
		Open:   true,
	}.ClampCursor()

	ev := suggest.Event{Kind: suggest.EventNewQuery, Query: query}
	if key := r.URL.Query().Get("key"); key != "" {
		if kind, ok := suggest.ParseKey(key); ok {
			ev = suggest.Event{Kind: kind, Query: query}
		}
	} else if raw := r.URL.Query().Get("hover"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			ev = suggest.Event{Kind: suggest.EventMouseEnter, Index: n}
		}
	} else if r.URL.Query().Get("dismiss") != "" {
		ev = suggest.Event{Kind: suggest.EventDismiss}
	}

	next, out := sel.Apply(names, ev)

	if out.Committed {
		payload := map[string]any{
			"suggest:commit": map[string]string{"value": out.Commit},
		}
		if raw, err := json.Marshal(payload); err == nil {
			w.Header().Set("HX-Trigger", string(raw))
		}
	}
	if out.Blur {
		if raw, err := json.Marshal(map[string]any{"suggest:blur": map[string]string{}}); err == nil {
			w.Header().Set("HX-Trigger", string(raw))
		}
	}

	renderTemplate(w, r, "frag_suggestions", buildSuggestView(query, next))
}
