package email

import (
	"context"
	"fmt"

	"github.com/ncastro/riobook/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s about %s for booking %s (%d passengers, trip %s)\n",
		event.PassengerEmail, event.Type, event.BookingID, event.Passengers, event.TripID)
	return nil
}
