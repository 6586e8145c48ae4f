package ticket

import (
	"testing"
	"time"

	"github.com/ncastro/riobook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	departure, _ := domain.ParseTimeOfDay("08:30")
	arrival, _ := domain.ParseTimeOfDay("10:45")
	duration, _ := domain.ParseTripDuration("2h 15m")

	trip := &domain.Trip{
		ID:          "trip-1",
		OperatorID:  "buquebus",
		Origin:      "Montevideo",
		Destination: "Buenos Aires",
		Departure:   departure,
		Arrival:     arrival,
		Duration:    duration,
		Type:        domain.TransportFerry,
	}
	booking := &domain.Booking{
		ID:             "booking-1",
		TripID:         "trip-1",
		PassengerName:  "Ana Pereira",
		PassengerEmail: "ana@example.com",
		Passengers:     2,
		TotalPrice:     130000,
		Status:         domain.BookingStatusConfirmed,
		TravelDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	}

	pdf, err := Render(booking, trip, "Buquebus")

	assert.NoError(t, err)
	assert.True(t, len(pdf) > 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
