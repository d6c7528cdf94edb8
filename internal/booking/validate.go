package booking

import (
	"errors"
	"time"
)

// Validation failures double as the user-facing message, so they are
// full pt-PT sentences rather than the usual lowercase error strings.
var (
	ErrDatePast   = errors.New("A data da recolha não pode ser no passado")
	ErrDateToday  = errors.New("A data da recolha não pode ser no mesmo dia")
	ErrDateSunday = errors.New("Não são feitas recolhas ao fim de semana")
)

// Pickup scheduling follows Lisbon's calendar regardless of where the
// frontend runs.
var lisbon = loadLisbon()

func loadLisbon() *time.Location {
	loc, err := time.LoadLocation("Europe/Lisbon")
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidateRequestedDate applies the pickup date rules: not in the
// past, not same-day, no Sundays. The API validates again and remains
// authoritative; this only spares the user a round trip.
func ValidateRequestedDate(date, now time.Time) error {
	y, m, d := now.In(lisbon).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if day.Before(today) {
		return ErrDatePast
	}
	if day.Equal(today) {
		return ErrDateToday
	}
	if day.Weekday() == time.Sunday {
		return ErrDateSunday
	}
	return nil
}
