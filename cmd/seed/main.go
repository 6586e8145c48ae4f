package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/ncastro/riobook/config"
	"github.com/ncastro/riobook/internal/domain"
	"github.com/ncastro/riobook/internal/repository"
)

var allDays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

func mustTime(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		log.Fatalf("bad seed time %q: %v", s, err)
	}
	return t
}

func mustDuration(s string) domain.TripDuration {
	d, err := domain.ParseTripDuration(s)
	if err != nil {
		log.Fatalf("bad seed duration %q: %v", s, err)
	}
	return d
}

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	log.Println("seeding database...")

	if _, err := pool.Exec(ctx, `DELETE FROM trips`); err != nil {
		log.Fatalf("clear trips: %v", err)
	}
	if _, err := pool.Exec(ctx, `DELETE FROM operators`); err != nil {
		log.Fatalf("clear operators: %v", err)
	}

	operators := repository.NewOperatorRepository(pool)
	trips := repository.NewTripRepository(pool)

	buquebus := &domain.Operator{Name: "Buquebus", Type: domain.TransportFerry}
	coloniaExpress := &domain.Operator{Name: "Colonia Express", Type: domain.TransportFerry}
	cot := &domain.Operator{Name: "COT", Type: domain.TransportBus}
	turil := &domain.Operator{Name: "Turil", Type: domain.TransportBus}
	ega := &domain.Operator{Name: "EGA", Type: domain.TransportBus}
	copsa := &domain.Operator{Name: "COPSA", Type: domain.TransportBus}

	for _, o := range []*domain.Operator{buquebus, coloniaExpress, cot, turil, ega, copsa} {
		if err := operators.Create(ctx, o); err != nil {
			log.Fatalf("create operator %s: %v", o.Name, err)
		}
	}

	seedTrips := []domain.Trip{
		{OperatorID: buquebus.ID, Origin: "Buenos Aires", Destination: "Colonia", Departure: mustTime("07:30"), Arrival: mustTime("08:45"), Duration: mustDuration("1h 15m"), Price: 240000, Type: domain.TransportFerry, Features: []string{"wifi", "cafe", "shop"}, AvailableSeats: 200},
		{OperatorID: buquebus.ID, Origin: "Buenos Aires", Destination: "Montevideo", Departure: mustTime("09:00"), Arrival: mustTime("12:00"), Duration: mustDuration("3h 00m"), Price: 380000, Type: domain.TransportFerry, Features: []string{"wifi", "cafe", "shop", "bed"}, AvailableSeats: 150},
		{OperatorID: coloniaExpress.ID, Origin: "Buenos Aires", Destination: "Colonia", Departure: mustTime("12:30"), Arrival: mustTime("13:45"), Duration: mustDuration("1h 15m"), Price: 210000, Type: domain.TransportFerry, Features: []string{"pets", "wifi"}, AvailableSeats: 180},
		{OperatorID: coloniaExpress.ID, Origin: "Buenos Aires", Destination: "Colonia", Departure: mustTime("17:00"), Arrival: mustTime("18:15"), Duration: mustDuration("1h 15m"), Price: 225000, Type: domain.TransportFerry, Features: []string{"wifi", "cafe"}, AvailableSeats: 180},
		{OperatorID: cot.ID, Origin: "Montevideo", Destination: "Punta del Este", Departure: mustTime("09:00"), Arrival: mustTime("11:00"), Duration: mustDuration("2h 00m"), Price: 65000, Type: domain.TransportBus, Features: []string{"ac", "wifi"}, AvailableSeats: 45},
		{OperatorID: cot.ID, Origin: "Montevideo", Destination: "Punta del Este", Departure: mustTime("14:30"), Arrival: mustTime("16:30"), Duration: mustDuration("2h 00m"), Price: 65000, Type: domain.TransportBus, Features: []string{"ac", "wifi"}, AvailableSeats: 45},
		{OperatorID: turil.ID, Origin: "Montevideo", Destination: "Salto", Departure: mustTime("14:00"), Arrival: mustTime("20:00"), Duration: mustDuration("6h 00m"), Price: 110000, Type: domain.TransportBus, Features: []string{"bed", "coffee", "wifi", "ac"}, AvailableSeats: 38},
		{OperatorID: turil.ID, Origin: "Montevideo", Destination: "Paysandú", Departure: mustTime("15:30"), Arrival: mustTime("20:30"), Duration: mustDuration("5h 00m"), Price: 95000, Type: domain.TransportBus, Features: []string{"ac", "wifi", "coffee"}, AvailableSeats: 42},
		{OperatorID: ega.ID, Origin: "Montevideo", Destination: "Colonia", Departure: mustTime("08:00"), Arrival: mustTime("10:30"), Duration: mustDuration("2h 30m"), Price: 55000, Type: domain.TransportBus, Features: []string{"ac", "wifi"}, AvailableSeats: 48},
		{OperatorID: copsa.ID, Origin: "Colonia", Destination: "Montevideo", Departure: mustTime("16:00"), Arrival: mustTime("18:30"), Duration: mustDuration("2h 30m"), Price: 58000, Type: domain.TransportBus, Features: []string{"ac"}, AvailableSeats: 50},
		{OperatorID: cot.ID, Origin: "Punta del Este", Destination: "Montevideo", Departure: mustTime("18:00"), Arrival: mustTime("20:00"), Duration: mustDuration("2h 00m"), Price: 65000, Type: domain.TransportBus, Features: []string{"ac", "wifi"}, AvailableSeats: 45},
	}

	for i := range seedTrips {
		seedTrips[i].DaysOfWeek = allDays
		if err := trips.Create(ctx, &seedTrips[i]); err != nil {
			log.Fatalf("create trip %s-%s: %v", seedTrips[i].Origin, seedTrips[i].Destination, err)
		}
	}

	log.Printf("seeded %d operators and %d trips", 6, len(seedTrips))
}
