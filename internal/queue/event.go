// Package queue carries trip events over RabbitMQ.
package queue

const TripCreatedQueue = "trip.created"

// TripCreatedEvent is published after a trip and its passengers are stored.
type TripCreatedEvent struct {
	TripID         string `json:"trip_id"`
	AirportName    string `json:"airport_name"`
	TravelDate     string `json:"travel_date"`
	FlightNumber   string `json:"flight_number"`
	TravelType     string `json:"travel_type"`
	FlightType     string `json:"flight_type"`
	PassengerCount int    `json:"passenger_count"`
	OrderID        string `json:"order_id,omitempty"`
	CreatedAt      string `json:"created_at"`
}
