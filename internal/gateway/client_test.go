package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zeromonos.org/zeromonos-web/internal/booking"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestMunicipalitiesDecodesArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/municipalities", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Lisboa","Loures","Sintra"]`))
	})
	names, err := c.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lisboa", "Loures", "Sintra"}, names)
}

func TestMunicipalitiesRejectsNonArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"municipalities":["Lisboa"]}`))
	})
	_, err := c.Municipalities(context.Background())
	var se *ShapeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "Resposta inválida do servidor", ErrorMessage(err))
}

func TestCreateBookingSendsPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"ZM-1","municipalityName":"Loures","status":"RECEIVED","timeSlot":"MORNING"}`))
	})
	b, err := c.CreateBooking(context.Background(), CreateRequest{
		MunicipalityName: "Loures",
		RequestedDate:    "2024-05-10",
		TimeSlot:         booking.SlotMorning,
		Description:      "um sofá",
	})
	require.NoError(t, err)
	assert.Equal(t, "ZM-1", b.Token)
	assert.Equal(t, booking.StatusReceived, b.Status)
}

func TestGetBookingEscapesToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/bookings/a%2Fb", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"a/b"}`))
	})
	b, err := c.GetBooking(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, "a/b", b.Token)
}

func TestCancelBookingUsesPut(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/bookings/ZM-1/cancel", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"ZM-1","status":"CANCELLED"}`))
	})
	b, err := c.CancelBooking(context.Background(), "ZM-1")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, b.Status)
}

func TestStaffBookingsDefaultsToAll(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/staff/bookings", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("municipality"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"token":"ZM-1"},{"token":"ZM-2"}]`))
	})
	bookings, err := c.StaffBookings(context.Background(), "  ")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
}

func TestUpdateStatusUsesPatchWithQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/staff/bookings/ZM-1/status", r.URL.Path)
		assert.Equal(t, "ASSIGNED", r.URL.Query().Get("status"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"ZM-1","status":"ASSIGNED"}`))
	})
	b, err := c.UpdateStatus(context.Background(), "ZM-1", booking.StatusAssigned)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusAssigned, b.Status)
}

func TestErrorBodyJSONMessageWins(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Data inválida"}`))
	})
	_, err := c.GetBooking(context.Background(), "ZM-1")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Equal(t, "Data inválida", ErrorMessage(err))
}

func TestErrorBodyFallsBackToRawText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("boom"))
	})
	_, err := c.GetBooking(context.Background(), "ZM-1")
	assert.Equal(t, "boom", ErrorMessage(err))
}

func TestErrorBodyJSONWithoutMessageFallsBackToRawText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":42}`))
	})
	_, err := c.GetBooking(context.Background(), "ZM-1")
	assert.Equal(t, `{"code":42}`, ErrorMessage(err))
}

func TestErrorBodyEmptySynthesizesFromStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.GetBooking(context.Background(), "ZM-1")
	assert.Equal(t, "Erro 500: Internal Server Error", ErrorMessage(err))
}

func TestTransportErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(srv.URL)
	_, err := c.GetBooking(context.Background(), "ZM-1")
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "Erro de comunicação com o servidor. Por favor, tente novamente.", ErrorMessage(err))
}

func TestDecodeErrorMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":`))
	})
	_, err := c.GetBooking(context.Background(), "ZM-1")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Resposta inválida do servidor", ErrorMessage(err))
}

func TestErrorMessageFallbackForUnknownErrors(t *testing.T) {
	assert.Equal(t, "Erro inesperado. Por favor, tente novamente.",
		ErrorMessage(errors.New("weird")))
	assert.Empty(t, ErrorMessage(nil))
}
