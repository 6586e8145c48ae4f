package trips

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ncastro/riobook/internal/cache"
	"github.com/ncastro/riobook/internal/domain"
	"github.com/ncastro/riobook/internal/repository"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
)

const maxConnections = 10

type SearchInput struct {
	Origin      string
	Destination string
	Types       []string
	Date        string
	MinPrice    *int
	MaxPrice    *int
	Sort        string
}

type TripUseCase interface {
	Search(ctx context.Context, input SearchInput) ([]domain.Trip, error)
	GetByID(ctx context.Context, id string) (*domain.Trip, error)
	FindConnections(ctx context.Context, origin, destination, date string) ([]domain.Connection, error)
	PricesByDateRange(ctx context.Context, origin, destination, startDate, endDate string) ([]domain.DatePrice, error)
	Operators(ctx context.Context) ([]domain.Operator, error)
}

type Cache interface {
	GetOperators(ctx context.Context) ([]domain.Operator, error)
	SetOperators(ctx context.Context, operators []domain.Operator) error
	GetTripSearch(ctx context.Context, key string) ([]domain.Trip, error)
	SetTripSearch(ctx context.Context, key string, trips []domain.Trip) error
}

type TripService struct {
	trips     repository.TripRepository
	operators repository.OperatorRepository
	cache     Cache
}

func NewTripService(trips repository.TripRepository, operators repository.OperatorRepository, c Cache) *TripService {
	return &TripService{trips: trips, operators: operators, cache: c}
}

func (s *TripService) Search(ctx context.Context, input SearchInput) ([]domain.Trip, error) {
	dayOfWeek, err := dayCodeFor(input.Date)
	if err != nil {
		return nil, err
	}

	key := cache.SearchKey(input.Origin, input.Destination, input.Types, dayOfWeek, input.MinPrice, input.MaxPrice)
	var trips []domain.Trip
	if s.cache != nil {
		if cached, err := s.cache.GetTripSearch(ctx, key); err == nil && cached != nil {
			trips = cached
		}
	}

	if trips == nil {
		trips, err = s.trips.Search(ctx, repository.TripSearchParams{
			Origin:      input.Origin,
			Destination: input.Destination,
			Types:       input.Types,
			DayOfWeek:   dayOfWeek,
			MinPrice:    input.MinPrice,
			MaxPrice:    input.MaxPrice,
		})
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			_ = s.cache.SetTripSearch(ctx, key, trips)
		}
	}

	sortTrips(trips, input.Sort)
	return trips, nil
}

func sortTrips(trips []domain.Trip, mode string) {
	switch mode {
	case "price":
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Price < trips[j].Price })
	case "departure":
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Departure < trips[j].Departure })
	case "duration":
		sort.SliceStable(trips, func(i, j int) bool { return trips[i].Duration < trips[j].Duration })
	}
}

func (s *TripService) GetByID(ctx context.Context, id string) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return trip, nil
}

// FindConnections joins trips leaving the origin with trips arriving at
// the destination through a shared intermediate city. Legs are matched
// on same-day wall-clock times; itineraries crossing midnight are not
// representable.
func (s *TripService) FindConnections(ctx context.Context, origin, destination, date string) ([]domain.Connection, error) {
	dayOfWeek, err := dayCodeFor(date)
	if err != nil {
		return nil, err
	}

	fromOrigin, err := s.trips.ListByOrigin(ctx, origin)
	if err != nil {
		return nil, err
	}
	toDestination, err := s.trips.ListByDestination(ctx, destination)
	if err != nil {
		return nil, err
	}
	if dayOfWeek != "" {
		fromOrigin = filterByDay(fromOrigin, dayOfWeek)
		toDestination = filterByDay(toDestination, dayOfWeek)
	}

	connections := make([]domain.Connection, 0)
	for _, leg1 := range fromOrigin {
		for _, leg2 := range toDestination {
			if leg2.Origin != leg1.Destination || !leg2.Departure.After(leg1.Arrival) {
				continue
			}
			connections = append(connections, domain.Connection{
				Legs:          []domain.Trip{leg1, leg2},
				TotalDuration: leg1.Duration + leg2.Duration,
				TotalPrice:    leg1.Price + leg2.Price,
			})
		}
	}

	sort.SliceStable(connections, func(i, j int) bool { return connections[i].TotalPrice < connections[j].TotalPrice })
	if len(connections) > maxConnections {
		connections = connections[:maxConnections]
	}
	return connections, nil
}

// PricesByDateRange reports the lowest fare per calendar day in the
// inclusive range. Days on which no trip runs are omitted.
func (s *TripService) PricesByDateRange(ctx context.Context, origin, destination, startDate, endDate string) ([]domain.DatePrice, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}

	routeTrips, err := s.trips.ListByRoute(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	prices := make([]domain.DatePrice, 0)
	if len(routeTrips) == 0 {
		return prices, nil
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		code := domain.DayCode(d)
		lowest := -1
		for _, t := range routeTrips {
			if t.RunsOn(code) && (lowest == -1 || t.Price < lowest) {
				lowest = t.Price
			}
		}
		if lowest >= 0 {
			prices = append(prices, domain.DatePrice{Date: d.Format("2006-01-02"), LowestPrice: lowest})
		}
	}
	return prices, nil
}

func (s *TripService) Operators(ctx context.Context) ([]domain.Operator, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetOperators(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	operators, err := s.operators.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetOperators(ctx, operators)
	}
	return operators, nil
}

func filterByDay(trips []domain.Trip, dayCode string) []domain.Trip {
	filtered := make([]domain.Trip, 0, len(trips))
	for _, t := range trips {
		if t.RunsOn(dayCode) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// dayCodeFor converts an optional YYYY-MM-DD date into a schedule
// weekday code; an empty date means no weekday filter.
func dayCodeFor(date string) (string, error) {
	if date == "" {
		return "", nil
	}
	d, err := parseDate(date)
	if err != nil {
		return "", err
	}
	return domain.DayCode(d), nil
}

var _ TripUseCase = (*TripService)(nil)
