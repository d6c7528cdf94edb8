package main

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"zeromonos.org/zeromonos-web/internal/booking"
	"zeromonos.org/zeromonos-web/internal/content"
	"zeromonos.org/zeromonos-web/internal/format"
	mw "zeromonos.org/zeromonos-web/internal/middleware"
	"zeromonos.org/zeromonos-web/internal/nav"
	"zeromonos.org/zeromonos-web/internal/suggest"
	"zeromonos.org/zeromonos-web/internal/view"
)

// PageData is the envelope passed to every full page template.
type PageData struct {
	Title       string
	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	CSRFToken   string

	Form    *BookingFormView
	Created *BookingCreatedView
	Lookup  *LookupView
	Staff   *StaffView
	Error   *ErrorView
	Info    *content.Page
}

func newPageData(r *http.Request, title string) PageData {
	return PageData{
		Title:       title,
		Path:        r.URL.Path,
		Nav:         nav.Build(r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(r.URL.Path),
		CSRFToken:   mw.GetSession(r).CSRFToken,
	}
}

// BookingFormView carries the new-booking form fields, any per-field
// validation messages, and select options.
type BookingFormView struct {
	Municipality  string
	RequestedDate string
	TimeSlot      string
	Description   string
	Errors        map[string]string
	Slots         []SlotOption
	MinDate       string
	CSRFToken     string
}

type SlotOption struct {
	Value    string
	Label    string
	Selected bool
}

func buildBookingFormView(municipality, date, slot, desc string) *BookingFormView {
	v := &BookingFormView{
		Municipality:  municipality,
		RequestedDate: date,
		TimeSlot:      slot,
		Description:   desc,
		Errors:        map[string]string{},
		MinDate:       time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
	}
	for _, ts := range booking.TimeSlots() {
		v.Slots = append(v.Slots, SlotOption{
			Value:    string(ts),
			Label:    ts.Label(),
			Selected: string(ts) == slot,
		})
	}
	return v
}

// BookingCreatedView feeds the confirmation panel after a successful submission.
type BookingCreatedView struct {
	Token     string
	LookupURL string
	LongDate  string
	Slot      string
}

func buildBookingCreatedView(b *booking.Booking) *BookingCreatedView {
	v := &BookingCreatedView{
		Token:     b.Token,
		LookupURL: "/booking/lookup?token=" + url.QueryEscape(b.Token),
		Slot:      b.TimeSlot.Label(),
	}
	if d, err := format.ParseAPIDate(b.RequestedDate); err == nil {
		v.LongDate = format.LongDate(d)
	} else {
		v.LongDate = b.RequestedDate
	}
	return v
}

// SuggestView is the state rendered into the autocomplete dropdown fragment.
type SuggestView struct {
	Query     string
	Open      bool
	Cursor    int
	Items     []SuggestItem
	NoResults bool
	Error     string
}

type SuggestItem struct {
	Index  int
	Value  string
	HTML   template.HTML
	Active bool
}

func buildSuggestView(query string, sel suggest.Selection) SuggestView {
	v := SuggestView{
		Query:  query,
		Open:   sel.Open,
		Cursor: sel.Cursor,
	}
	for i, s := range sel.Items {
		v.Items = append(v.Items, SuggestItem{
			Index:  i,
			Value:  s.Value,
			HTML:   view.Highlight(s),
			Active: i == sel.Cursor,
		})
	}
	v.NoResults = sel.Open && len(sel.Items) == 0 && query != ""
	return v
}

// LookupView drives the lookup page; AutoSearch triggers an immediate
// fetch when a token arrived via the query string.
type LookupView struct {
	Token      string
	AutoSearch bool
}

// LookupResultView is either a message or a booking detail card.
type LookupResultView struct {
	Message   string
	Booking   *BookingDetailView
	CSRFToken string
}

// BookingDetailView is the read-only card shown for a looked-up booking.
type BookingDetailView struct {
	Token       string
	StatusLabel string
	StatusTone  string
	Fields      []DetailField
	Cancellable bool
	CancelURL   string
}

type DetailField struct {
	Label string
	Value string
}

func buildBookingDetailView(b *booking.Booking) *BookingDetailView {
	v := &BookingDetailView{
		Token:       b.Token,
		StatusLabel: b.Status.Label(),
		StatusTone:  b.Status.BadgeTone(),
		Cancellable: booking.Cancellable(b.Status),
		CancelURL:   "/booking/" + url.PathEscape(b.Token) + "/cancel",
	}
	date := b.RequestedDate
	if d, err := format.ParseAPIDate(b.RequestedDate); err == nil {
		date = format.LongDate(d)
	}
	created := b.CreatedAt
	if t, err := format.ParseAPITime(b.CreatedAt); err == nil {
		created = format.DateTime(t)
	}
	v.Fields = []DetailField{
		{Label: "Token", Value: b.Token},
		{Label: "Município", Value: b.MunicipalityName},
		{Label: "Data da Recolha", Value: date},
		{Label: "Período", Value: b.TimeSlot.Label()},
		{Label: "Descrição", Value: b.Description},
		{Label: "Criado em", Value: created},
	}
	return v
}

// StaffView drives the dashboard page shell: the municipality filter
// plus the table container that htmx fills in.
type StaffView struct {
	Municipalities []string
	Selected       string
	LoadError      string
}

// StaffTableView is the booking table fragment.
type StaffTableView struct {
	Municipality string
	Rows         []StaffRow
	Empty        bool
	Error        string
	CSRFToken    string
}

type StaffRow struct {
	Token        string
	Municipality string
	Date         string
	Slot         string
	Description  string
	StatusLabel  string
	StatusTone   string
	HistoryURL   string
	Actions      []StaffActionView
}

type StaffActionView struct {
	Label   string
	Tone    string
	URL     string
	Confirm string
}

func buildStaffRow(b booking.Booking) StaffRow {
	row := StaffRow{
		Token:        b.Token,
		Municipality: b.MunicipalityName,
		Slot:         b.TimeSlot.Label(),
		Description:  b.Description,
		StatusLabel:  b.Status.Label(),
		StatusTone:   b.Status.BadgeTone(),
		HistoryURL:   "/staff/bookings/" + url.PathEscape(b.Token) + "/history",
	}
	row.Date = b.RequestedDate
	if d, err := format.ParseAPIDate(b.RequestedDate); err == nil {
		row.Date = format.Date(d)
	}
	for _, a := range booking.AvailableActions(b.Status) {
		row.Actions = append(row.Actions, StaffActionView{
			Label: a.Label,
			Tone:  a.Tone(),
			URL: "/staff/bookings/" + url.PathEscape(b.Token) +
				"/status?status=" + url.QueryEscape(string(a.Target)),
			Confirm: fmt.Sprintf("Alterar o estado para %q?", a.Target.Label()),
		})
	}
	return row
}

// HistoryView is the status history modal fragment.
type HistoryView struct {
	Token   string
	Entries []booking.HistoryEntry
	Empty   bool
	Error   string
}

// ErrorView carries the message shown on the error page.
type ErrorView struct {
	Message string
}
