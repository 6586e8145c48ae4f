package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncastro/riobook/internal/service/booking"
	"github.com/ncastro/riobook/internal/service/trips"
	"github.com/ncastro/riobook/internal/ticket"
)

type BookingHandler struct {
	service booking.BookingUseCase
	trips   trips.TripUseCase
}

type createBookingRequest struct {
	TripID         string `json:"tripId"`
	PassengerName  string `json:"passengerName"`
	PassengerEmail string `json:"passengerEmail"`
	PassengerPhone string `json:"passengerPhone"`
	Passengers     int    `json:"passengers"`
	TravelDate     string `json:"travelDate"`
}

func NewBookingHandler(service booking.BookingUseCase, trips trips.TripUseCase) *BookingHandler {
	return &BookingHandler{service: service, trips: trips}
}

func (h *BookingHandler) Register(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	router.POST("/bookings", h.create)
	router.GET("/bookings/:id", h.get)
	router.GET("/bookings/:id/ticket", h.ticket)
	router.GET("/my-bookings", authRequired, h.myBookings)
	router.PUT("/bookings/:id/cancel", authRequired, h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelDate, err := parseTravelDate(req.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid travel date"})
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		TripID:         req.TripID,
		UserID:         c.GetString(userIDKey),
		PassengerName:  req.PassengerName,
		PassengerEmail: req.PassengerEmail,
		PassengerPhone: req.PassengerPhone,
		Passengers:     req.Passengers,
		TravelDate:     travelDate,
	})
	if err != nil {
		var seatErr *booking.SeatAvailabilityError
		switch {
		case errors.Is(err, booking.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
		case errors.As(err, &seatErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough seats available", "availableSeats": seatErr.Available})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *BookingHandler) get(c *gin.Context) {
	result, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *BookingHandler) ticket(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return
	}

	trip, err := h.trips.GetByID(c.Request.Context(), b.TripID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load trip"})
		return
	}

	operatorName := ""
	if operators, err := h.trips.Operators(c.Request.Context()); err == nil {
		for _, o := range operators {
			if o.ID == trip.OperatorID {
				operatorName = o.Name
				break
			}
		}
	}

	pdf, err := ticket.Render(b, trip, operatorName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render ticket"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ticket-`+b.ID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *BookingHandler) myBookings(c *gin.Context) {
	bookings, err := h.service.UserBookings(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	result, err := h.service.CancelBooking(c.Request.Context(), c.Param("id"), c.GetString(userIDKey))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case errors.Is(err, booking.ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to cancel this booking"})
		case errors.Is(err, booking.ErrBookingCompleted):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseTravelDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
