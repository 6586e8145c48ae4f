package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ncastro/riobook/internal/domain"
	"github.com/ncastro/riobook/internal/kafka"
	"github.com/ncastro/riobook/internal/metrics"
	"github.com/ncastro/riobook/internal/repository"
	"github.com/ncastro/riobook/internal/service/miles"
)

var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("not authorized to cancel this booking")
	ErrBookingCompleted = errors.New("completed bookings cannot be cancelled")
)

// SeatAvailabilityError rejects a booking that asks for more seats than
// the trip has left; Available carries the remaining count for the
// caller.
type SeatAvailabilityError struct {
	Available int
}

func (e *SeatAvailabilityError) Error() string {
	return fmt.Sprintf("not enough seats available (%d left)", e.Available)
}

type CreateBookingInput struct {
	TripID         string    `json:"tripId"`
	UserID         string    `json:"-"`
	PassengerName  string    `json:"passengerName"`
	PassengerEmail string    `json:"passengerEmail"`
	PassengerPhone string    `json:"passengerPhone"`
	Passengers     int       `json:"passengers"`
	TravelDate     time.Time `json:"travelDate"`
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	UserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error)
	CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	trips              repository.TripRepository
	miles              miles.MilesUseCase
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	trips repository.TripRepository,
	milesSvc miles.MilesUseCase,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		trips:        trips,
		miles:        milesSvc,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.TripID == "" {
		return nil, errors.New("trip id is required")
	}
	if input.PassengerName == "" {
		return nil, errors.New("passenger name is required")
	}
	if input.PassengerEmail == "" {
		return nil, errors.New("passenger email is required")
	}
	if input.Passengers == 0 {
		input.Passengers = 1
	}
	if input.Passengers < 0 {
		return nil, errors.New("passengers must be positive")
	}
	if input.TravelDate.IsZero() {
		return nil, errors.New("travel date is required")
	}

	trip, err := s.trips.GetByID(ctx, input.TripID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if trip.AvailableSeats < input.Passengers {
		return nil, &SeatAvailabilityError{Available: trip.AvailableSeats}
	}

	totalPrice := trip.Price * input.Passengers
	milesEarned := 0
	if input.UserID != "" {
		milesEarned = totalPrice / 100
	}

	booking := &domain.Booking{
		TripID:         input.TripID,
		UserID:         input.UserID,
		PassengerName:  input.PassengerName,
		PassengerEmail: input.PassengerEmail,
		PassengerPhone: input.PassengerPhone,
		Passengers:     input.Passengers,
		TotalPrice:     totalPrice,
		TravelDate:     input.TravelDate,
		MilesEarned:    milesEarned,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrNotEnoughSeats) {
			// Lost a race for the last seats; report what is left now.
			available := 0
			if current, gerr := s.trips.GetByID(ctx, input.TripID); gerr == nil {
				available = current.AvailableSeats
			}
			return nil, &SeatAvailabilityError{Available: available}
		}
		return nil, err
	}

	if milesEarned > 0 {
		if _, err := s.miles.AddMiles(ctx, input.UserID, milesEarned, booking.ID, ""); err != nil {
			log.Printf("WARNING: failed to accrue %d miles for booking %s: %v", milesEarned, booking.ID, err)
		}
	}

	metrics.BookingsCreatedTotal.Inc()
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for booking %s: %v", booking.ID, err)
	}
	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) UserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// CancelBooking flips the status to cancelled. Seats are not restored:
// inventory only ever decreases once booked.
func (s *BookingService) CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if current.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}
	if current.Status == domain.BookingStatusCompleted {
		return nil, ErrBookingCompleted
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled)
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelledTotal.Inc()
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for booking %s: %v", updated.ID, err)
	}
	return updated, nil
}

// CompleteDepartedBookings marks confirmed bookings with a past travel
// date as completed. Run periodically by the worker.
func (s *BookingService) CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.CompleteDepartedBefore(ctx, time.Now())
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:           eventType,
		BookingID:      booking.ID,
		TripID:         booking.TripID,
		PassengerEmail: booking.PassengerEmail,
		Passengers:     booking.Passengers,
		TotalPrice:     booking.TotalPrice,
		Status:         string(booking.Status),
		TravelDate:     booking.TravelDate,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
