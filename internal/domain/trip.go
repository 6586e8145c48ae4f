package domain

type TransportType string

const (
	TransportFerry TransportType = "ferry"
	TransportBus   TransportType = "bus"
)

type Operator struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Type TransportType `json:"type"`
	Logo string        `json:"logo,omitempty"`
}

type Trip struct {
	ID             string        `json:"id"`
	OperatorID     string        `json:"operatorId"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	Departure      TimeOfDay     `json:"departure"`
	Arrival        TimeOfDay     `json:"arrival"`
	Duration       TripDuration  `json:"duration"`
	Price          int           `json:"price"`
	Type           TransportType `json:"type"`
	Features       []string      `json:"features"`
	AvailableSeats int           `json:"availableSeats"`
	DaysOfWeek     []string      `json:"daysOfWeek"`
}

// RunsOn reports whether the trip is scheduled on the given weekday code.
func (t *Trip) RunsOn(dayCode string) bool {
	for _, d := range t.DaysOfWeek {
		if d == dayCode {
			return true
		}
	}
	return false
}

// Connection is a one-transfer itinerary between two cities.
type Connection struct {
	Legs          []Trip       `json:"legs"`
	TotalDuration TripDuration `json:"totalDuration"`
	TotalPrice    int          `json:"totalPrice"`
}

// DatePrice is the lowest fare available for a route on one calendar day.
type DatePrice struct {
	Date        string `json:"date"`
	LowestPrice int    `json:"lowestPrice"`
}
