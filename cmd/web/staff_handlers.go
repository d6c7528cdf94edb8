package main

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"zeromonos.org/zeromonos-web/internal/booking"
	"zeromonos.org/zeromonos-web/internal/gateway"
	mw "zeromonos.org/zeromonos-web/internal/middleware"
)

// StaffHandler renders the dashboard shell: the municipality filter
// and the table container the fragments fill in.
func StaffHandler(w http.ResponseWriter, r *http.Request) {
	selected := strings.TrimSpace(r.URL.Query().Get("municipality"))
	if selected == "" {
		selected = "all"
	}

	sv := &StaffView{Selected: selected}
	if names, err := muniLoader.Load(r.Context()); err != nil {
		sv.LoadError = gateway.ErrorMessage(err)
	} else {
		sv.Municipalities = names
	}

	vm := newPageData(r, "Painel Staff")
	vm.Staff = sv
	renderPage(w, r, "staff", vm)
}

// StaffTableFrag renders the bookings table for one municipality (or
// all of them).
func StaffTableFrag(w http.ResponseWriter, r *http.Request) {
	municipality := strings.TrimSpace(r.URL.Query().Get("municipality"))
	if municipality == "" {
		municipality = "all"
	}

	push := "/staff"
	if municipality != "all" {
		push += "?" + url.Values{"municipality": []string{municipality}}.Encode()
	}
	w.Header().Set("HX-Push-Url", push)

	renderTemplate(w, r, "frag_staff_table", loadStaffTable(r, municipality))
}

// StaffStatusUpdateHandler applies one status transition, then tells
// the dashboard to reload its table so every row reflects server
// state.
func StaffStatusUpdateHandler(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	target := booking.Status(strings.TrimSpace(r.URL.Query().Get("status")))

	switch target {
	case booking.StatusReceived, booking.StatusAssigned, booking.StatusInProgress,
		booking.StatusCompleted, booking.StatusCancelled:
	default:
		mw.Error(w, r, http.StatusBadRequest, "estado desconhecido")
		return
	}

	municipality := strings.TrimSpace(r.URL.Query().Get("municipality"))
	if municipality == "" {
		municipality = strings.TrimSpace(r.PostFormValue("municipality"))
	}

	// Reject stale or forged transitions before touching the API: the
	// buttons only render legal moves, so anything else is a request
	// built outside the dashboard or raced by another staff member.
	current, err := apiClient.GetBooking(r.Context(), token)
	if err != nil {
		if mw.IsHTMX(r.Context()) {
			view := loadStaffTable(r, municipality)
			view.Error = gateway.ErrorMessage(err)
			renderTemplate(w, r, "frag_staff_table", view)
			return
		}
		redirectToError(w, r, gateway.ErrorMessage(err))
		return
	}
	if !booking.LegalTransition(current.Status, target) {
		mw.Error(w, r, http.StatusConflict, "Transição de estado inválida.")
		return
	}

	if _, err := apiClient.UpdateStatus(r.Context(), token, target); err != nil {
		if mw.IsHTMX(r.Context()) {
			view := loadStaffTable(r, municipality)
			view.Error = gateway.ErrorMessage(err)
			renderTemplate(w, r, "frag_staff_table", view)
			return
		}
		redirectToError(w, r, gateway.ErrorMessage(err))
		return
	}

	if raw, err := json.Marshal(map[string]any{"staff:reload": map[string]string{}}); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}

	renderTemplate(w, r, "frag_staff_table", loadStaffTable(r, municipality))
}

// StaffHistoryFrag renders the status history modal for one booking.
func StaffHistoryFrag(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	b, err := apiClient.GetBooking(r.Context(), token)
	if err != nil {
		renderTemplate(w, r, "frag_history_modal", HistoryView{
			Token: token,
			Error: gateway.ErrorMessage(err),
		})
		return
	}

	entries := booking.ParseHistory(b.History)
	renderTemplate(w, r, "frag_history_modal", HistoryView{
		Token:   b.Token,
		Entries: entries,
		Empty:   len(entries) == 0,
	})
}

func loadStaffTable(r *http.Request, municipality string) StaffTableView {
	if municipality == "" {
		municipality = "all"
	}
	view := StaffTableView{
		Municipality: municipality,
		CSRFToken:    mw.GetSession(r).CSRFToken,
	}
	bookings, err := apiClient.StaffBookings(r.Context(), municipality)
	if err != nil {
		view.Error = gateway.ErrorMessage(err)
		return view
	}
	for _, b := range bookings {
		view.Rows = append(view.Rows, buildStaffRow(b))
	}
	view.Empty = len(view.Rows) == 0
	return view
}
