// Package gateway is the typed client for the ZeroMonos booking API.
// It owns request construction, response decoding and the reduction of
// every failure mode to a single displayable message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"zeromonos.org/zeromonos-web/internal/booking"
)

const (
	// maxErrorBody bounds how much of an error response is read when
	// building the displayed message.
	maxErrorBody = 4 << 10
)

// Client issues calls against the booking API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given API base URL. Fetches carry
// no explicit timeout; the transport default applies.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
}

// CreateRequest is the payload for a new booking.
type CreateRequest struct {
	MunicipalityName string           `json:"municipalityName"`
	RequestedDate    string           `json:"requestedDate"`
	TimeSlot         booking.TimeSlot `json:"timeSlot"`
	Description      string           `json:"description"`
}

// Municipalities fetches the autocomplete source list. The payload
// must be a JSON array of strings; anything else is a contract
// violation surfaced as an error, never silently coerced.
func (c *Client) Municipalities(ctx context.Context) ([]string, error) {
	raw, err := c.getRaw(ctx, "/api/bookings/municipalities", nil)
	if err != nil {
		return nil, err
	}
	if !looksLikeArray(raw) {
		return nil, &ShapeError{Expected: "array of municipality names"}
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return names, nil
}

// CreateBooking submits a new booking and returns the server's record,
// token included.
func (c *Client) CreateBooking(ctx context.Context, req CreateRequest) (booking.Booking, error) {
	var b booking.Booking
	payload, err := json.Marshal(req)
	if err != nil {
		return b, &DecodeError{Err: err}
	}
	err = c.doJSON(ctx, http.MethodPost, "/api/bookings", nil, payload, &b)
	return b, err
}

// GetBooking fetches one booking by its opaque token.
func (c *Client) GetBooking(ctx context.Context, token string) (booking.Booking, error) {
	var b booking.Booking
	err := c.doJSON(ctx, http.MethodGet, "/api/bookings/"+url.PathEscape(token), nil, nil, &b)
	return b, err
}

// CancelBooking asks the API to cancel a booking. The updated record
// is returned but callers re-fetch after mutations anyway.
func (c *Client) CancelBooking(ctx context.Context, token string) (booking.Booking, error) {
	var b booking.Booking
	err := c.doJSON(ctx, http.MethodPut, "/api/bookings/"+url.PathEscape(token)+"/cancel", nil, nil, &b)
	return b, err
}

// StaffBookings lists bookings for the staff dashboard, filtered by
// municipality name or "all".
func (c *Client) StaffBookings(ctx context.Context, municipality string) ([]booking.Booking, error) {
	if strings.TrimSpace(municipality) == "" {
		municipality = "all"
	}
	q := url.Values{"municipality": []string{municipality}}
	raw, err := c.getRaw(ctx, "/api/staff/bookings", q)
	if err != nil {
		return nil, err
	}
	if !looksLikeArray(raw) {
		return nil, &ShapeError{Expected: "array of bookings"}
	}
	var bookings []booking.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return bookings, nil
}

// UpdateStatus applies a staff status transition and returns the
// updated record.
func (c *Client) UpdateStatus(ctx context.Context, token string, target booking.Status) (booking.Booking, error) {
	var b booking.Booking
	q := url.Values{"status": []string{string(target)}}
	path := "/api/staff/bookings/" + url.PathEscape(token) + "/status"
	err := c.doJSON(ctx, http.MethodPatch, path, q, nil, &b)
	return b, err
}

// doJSON performs a request and decodes a JSON object response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// getRaw performs a GET and returns the raw success body for callers
// that need to check the payload shape before decoding.
func (c *Client) getRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return raw, nil
}

// do issues the request and classifies failures: transport errors when
// no response arrived, StatusError for non-2xx answers. Success
// responses are returned with the body unread.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if resp.StatusCode >= 400 {
		msg := parseErrorBody(resp)
		_ = resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Msg: msg}
	}
	return resp, nil
}

// parseErrorBody reduces a non-2xx response to one message, trying
// exactly three sources in priority order: a JSON body with a
// non-empty "message" field, the raw body text, and finally a message
// synthesized from the status line. The first hit wins.
func parseErrorBody(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fmt.Sprintf("Erro %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// looksLikeArray reports whether a JSON document's top-level value is
// an array, without decoding it.
func looksLikeArray(raw []byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
