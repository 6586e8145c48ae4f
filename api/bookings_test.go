package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncastro/riobook/internal/domain"
	"github.com/ncastro/riobook/internal/service/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) UserBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, id, userID string) (*domain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// identityAs stands in for the auth middleware, injecting a fixed user.
func identityAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

func newBookingRouter(service booking.BookingUseCase, trips *MockTripUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api")
	group.Use(identityAs(userID))
	NewBookingHandler(service, trips).Register(group, func(c *gin.Context) { c.Next() })
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestBookingHandler_Create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	created := &domain.Booking{ID: "booking-1", TotalPrice: 130000, Status: domain.BookingStatusConfirmed}
	mockService.On("CreateBooking", mock.Anything, mock.MatchedBy(func(input booking.CreateBookingInput) bool {
		return input.TripID == "trip-1" &&
			input.UserID == "" &&
			input.Passengers == 2 &&
			input.TravelDate.Year() == 2026 && input.TravelDate.Month() == time.August && input.TravelDate.Day() == 31
	})).Return(created, nil).Once()

	w := postJSON(router, "/api/bookings", gin.H{
		"tripId":         "trip-1",
		"passengerName":  "Ana Pereira",
		"passengerEmail": "ana@example.com",
		"passengers":     2,
		"travelDate":     "2026-08-31",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var result domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "booking-1", result.ID)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Create_AuthenticatedUserAttached(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "user-1")

	mockService.On("CreateBooking", mock.Anything, mock.MatchedBy(func(input booking.CreateBookingInput) bool {
		return input.UserID == "user-1"
	})).Return(&domain.Booking{ID: "booking-1", MilesEarned: 1300}, nil).Once()

	w := postJSON(router, "/api/bookings", gin.H{
		"tripId":         "trip-1",
		"passengerName":  "Ana Pereira",
		"passengerEmail": "ana@example.com",
		"travelDate":     "2026-08-31T00:00:00Z",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Create_InvalidDate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	w := postJSON(router, "/api/bookings", gin.H{
		"tripId":     "trip-1",
		"travelDate": "next tuesday",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestBookingHandler_Create_NotEnoughSeats(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, &booking.SeatAvailabilityError{Available: 3}).Once()

	w := postJSON(router, "/api/bookings", gin.H{
		"tripId":         "trip-1",
		"passengerName":  "Ana Pereira",
		"passengerEmail": "ana@example.com",
		"passengers":     5,
		"travelDate":     "2026-08-31",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Not enough seats available", body["error"])
	assert.Equal(t, float64(3), body["availableSeats"])
}

func TestBookingHandler_Create_TripNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	mockService.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, booking.ErrTripNotFound).Once()

	w := postJSON(router, "/api/bookings", gin.H{
		"tripId":         "missing",
		"passengerName":  "Ana Pereira",
		"passengerEmail": "ana@example.com",
		"travelDate":     "2026-08-31",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_Get(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	mockService.On("GetBooking", mock.Anything, "booking-1").
		Return(&domain.Booking{ID: "booking-1"}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/booking-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "")

	mockService.On("GetBooking", mock.Anything, "missing").
		Return(nil, booking.ErrBookingNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_MyBookings(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "user-1")

	bookings := []domain.Booking{{ID: "booking-2"}, {ID: "booking-1"}}
	mockService.On("UserBookings", mock.Anything, "user-1").Return(bookings, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my-bookings", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result []domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result, 2)
	assert.Equal(t, "booking-2", result[0].ID)
}

func TestBookingHandler_Cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "user-1")

	cancelled := &domain.Booking{ID: "booking-1", Status: domain.BookingStatusCancelled}
	mockService.On("CancelBooking", mock.Anything, "booking-1", "user-1").Return(cancelled, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/booking-1/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
}

func TestBookingHandler_Cancel_Forbidden(t *testing.T) {
	mockService := &MockBookingUseCase{}
	router := newBookingRouter(mockService, &MockTripUseCase{}, "someone-else")

	mockService.On("CancelBooking", mock.Anything, "booking-1", "someone-else").
		Return(nil, booking.ErrNotBookingOwner).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/bookings/booking-1/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBookingHandler_Ticket(t *testing.T) {
	mockService := &MockBookingUseCase{}
	mockTrips := &MockTripUseCase{}
	router := newBookingRouter(mockService, mockTrips, "")

	departure, _ := domain.ParseTimeOfDay("09:00")
	arrival, _ := domain.ParseTimeOfDay("11:00")
	trip := &domain.Trip{ID: "trip-1", OperatorID: "cot", Origin: "Montevideo", Destination: "Punta del Este",
		Departure: departure, Arrival: arrival}
	b := &domain.Booking{ID: "booking-1", TripID: "trip-1", PassengerName: "Ana Pereira",
		Passengers: 2, TotalPrice: 130000, Status: domain.BookingStatusConfirmed,
		TravelDate: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)}

	mockService.On("GetBooking", mock.Anything, "booking-1").Return(b, nil).Once()
	mockTrips.On("GetByID", mock.Anything, "trip-1").Return(trip, nil).Once()
	mockTrips.On("Operators", mock.Anything).Return([]domain.Operator{{ID: "cot", Name: "COT"}}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/booking-1/ticket", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
