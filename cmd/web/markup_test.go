package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeromonos.org/zeromonos-web/internal/booking"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestBookingFormMarkup(t *testing.T) {
	_, h := newTestEnv(t)
	rec := get(t, h, "/booking/new", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec.Body.String())

	form := doc.Find(`form[action="/booking"]`)
	require.Equal(t, 1, form.Length())
	_, guarded := form.Attr("data-disable-on-submit")
	assert.True(t, guarded, "booking form must lock its submit button while posting")
	assert.Equal(t, 1, form.Find(`input[name="municipality"]`).Length())
	assert.Equal(t, 1, form.Find(`input[name="requestedDate"][type="date"]`).Length())
	assert.Equal(t, 1, form.Find(`input[name="_csrf"][type="hidden"]`).Length())
	assert.Equal(t, 1, form.Find(`textarea[name="description"]`).Length())

	// all seven slots plus the placeholder
	options := form.Find(`select[name="timeSlot"] option`)
	assert.Equal(t, 8, options.Length())

	// the dropdown container starts hidden with no selection
	dd := doc.Find("#suggestions")
	require.Equal(t, 1, dd.Length())
	assert.True(t, dd.HasClass("is-hidden"))
	cursor, _ := dd.Attr("data-cursor")
	assert.Equal(t, "-1", cursor)
}

func TestSuggestFragMarkupCarriesCursorState(t *testing.T) {
	_, h := newTestEnv(t)
	rec := get(t, h, "/booking/suggest?q=lou&cursor=-1&key=ArrowDown", true)
	doc := parseDoc(t, rec.Body.String())

	dd := doc.Find("#suggestions")
	require.Equal(t, 1, dd.Length())
	cursor, _ := dd.Attr("data-cursor")
	assert.Equal(t, "0", cursor)

	items := dd.Find(".suggestion")
	require.Equal(t, 2, items.Length())
	assert.True(t, items.First().HasClass("is-active"))
	assert.False(t, items.Last().HasClass("is-active"))
}

func TestStaffPageMarkup(t *testing.T) {
	_, h := newTestEnv(t)
	rec := get(t, h, "/staff", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseDoc(t, rec.Body.String())

	sel := doc.Find("#municipality-filter")
	require.Equal(t, 1, sel.Length())
	// "all" plus the five fake municipalities
	assert.Equal(t, 6, sel.Find("option").Length())

	table := doc.Find("#staff-table")
	require.Equal(t, 1, table.Length())
	trigger, _ := table.Attr("hx-trigger")
	assert.Contains(t, trigger, "staff:reload")
}

func TestStaffTableMarkupActionButtons(t *testing.T) {
	api, h := newTestEnv(t)
	api.put(&booking.Booking{Token: "ZM-1", MunicipalityName: "Lisboa", RequestedDate: "2024-05-10", TimeSlot: booking.SlotMorning, Status: booking.StatusInProgress})

	rec := get(t, h, "/staff/table?municipality=all", true)
	doc := parseDoc(t, rec.Body.String())

	buttons := doc.Find("td.cell-actions form button")
	require.Equal(t, 2, buttons.Length())
	assert.Equal(t, "Concluir", buttons.First().Text())
	assert.Equal(t, "Cancelar", buttons.Last().Text())

	// every action form carries the CSRF field
	forms := doc.Find("td.cell-actions form")
	forms.Each(func(_ int, f *goquery.Selection) {
		assert.Equal(t, 1, f.Find(`input[name="_csrf"]`).Length())
	})
}

// Every control that fires a request must be disabled while that
// request is in flight, so a double-click cannot issue it twice.
func TestControlsDisabledWhileRequestInFlight(t *testing.T) {
	api, h := newTestEnv(t)
	api.put(&booking.Booking{Token: "ZM-1", MunicipalityName: "Lisboa", RequestedDate: "2024-05-10", TimeSlot: booking.SlotMorning, Status: booking.StatusReceived})

	rec := get(t, h, "/booking/lookup", false)
	doc := parseDoc(t, rec.Body.String())
	val, ok := doc.Find(`form[hx-get="/booking/lookup/result"]`).Attr("hx-disabled-elt")
	require.True(t, ok, "lookup form missing in-flight guard")
	assert.Equal(t, "find button", val)

	rec = get(t, h, "/booking/lookup/result?token=ZM-1", true)
	doc = parseDoc(t, rec.Body.String())
	_, ok = doc.Find(`form[hx-post="/booking/ZM-1/cancel"]`).Attr("hx-disabled-elt")
	require.True(t, ok, "cancel form missing in-flight guard")

	rec = get(t, h, "/staff", false)
	doc = parseDoc(t, rec.Body.String())
	_, ok = doc.Find("#municipality-filter").Attr("hx-disabled-elt")
	require.True(t, ok, "staff filter missing in-flight guard")

	rec = get(t, h, "/staff/table?municipality=all", true)
	doc = parseDoc(t, rec.Body.String())
	forms := doc.Find("td.cell-actions form")
	require.Greater(t, forms.Length(), 0)
	forms.Each(func(_ int, f *goquery.Selection) {
		_, ok := f.Attr("hx-disabled-elt")
		assert.True(t, ok, "status action form missing in-flight guard")
	})
	_, ok = doc.Find(`td.cell-actions button[hx-get]`).Attr("hx-disabled-elt")
	assert.True(t, ok, "history button missing in-flight guard")
}

func TestNavMarksActivePage(t *testing.T) {
	_, h := newTestEnv(t)
	rec := get(t, h, "/booking/lookup", false)
	doc := parseDoc(t, rec.Body.String())

	active := doc.Find("nav.site-nav a.is-active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Consultar Agendamento", active.Text())
}
