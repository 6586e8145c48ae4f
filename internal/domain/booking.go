package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID             string        `json:"id"`
	TripID         string        `json:"tripId"`
	UserID         string        `json:"userId,omitempty"`
	PassengerName  string        `json:"passengerName"`
	PassengerEmail string        `json:"passengerEmail"`
	PassengerPhone string        `json:"passengerPhone,omitempty"`
	Passengers     int           `json:"passengers"`
	TotalPrice     int           `json:"totalPrice"`
	BookingDate    time.Time     `json:"bookingDate"`
	TravelDate     time.Time     `json:"travelDate"`
	Status         BookingStatus `json:"status"`
	MilesEarned    int           `json:"milesEarned"`
}
