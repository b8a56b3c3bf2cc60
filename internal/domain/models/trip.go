package models

import "time"

const (
	TravelTypeDeparture = "departure"
	TravelTypeArrival   = "arrival"

	FlightTypeClassA = "class_a"
	FlightTypeClassB = "class_b"

	PassengerAdult  = "adult"
	PassengerChild  = "child"
	PassengerInfant = "infant"

	GenderMale   = "male"
	GenderFemale = "female"

	DefaultNationality = "ایرانی"
)

type Trip struct {
	ID             string      `json:"id"`
	AirportName    string      `json:"airportName"`
	TravelDate     string      `json:"travelDate"`
	FlightNumber   string      `json:"flightNumber"`
	TravelType     string      `json:"travelType"`
	FlightType     string      `json:"flightType"`
	PassengerCount int         `json:"passengerCount"`
	OrderID        string      `json:"orderId,omitempty"`
	AdditionalInfo string      `json:"additionalInfo,omitempty"`
	BuyerName      string      `json:"buyerName,omitempty"`
	BuyerPhone     string      `json:"buyerPhone,omitempty"`
	BuyerEmail     string      `json:"buyerEmail,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	Passengers     []Passenger `json:"passengers"`
}

type Passenger struct {
	ID             string `json:"id"`
	TripID         string `json:"tripId"`
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	NationalID     string `json:"nationalId"`
	PassportNumber string `json:"passportNumber"`
	LuggageCount   int    `json:"luggageCount"`
	PassengerType  string `json:"passengerType"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
}

// TripCreate is the POST /trips payload. PassengerCount is a pointer so an
// explicit 0 can be told apart from a missing value.
type TripCreate struct {
	AirportName    string            `json:"airportName"`
	TravelDate     string            `json:"travelDate"`
	FlightNumber   string            `json:"flightNumber"`
	TravelType     string            `json:"travelType"`
	FlightType     string            `json:"flightType"`
	PassengerCount *int              `json:"passengerCount"`
	OrderID        string            `json:"orderId"`
	AdditionalInfo string            `json:"additionalInfo"`
	BuyerName      string            `json:"buyerName"`
	BuyerPhone     string            `json:"buyerPhone"`
	BuyerEmail     string            `json:"buyerEmail"`
	Passengers     []PassengerCreate `json:"passengers"`
}

type PassengerCreate struct {
	Name           string `json:"name"`
	LastName       string `json:"lastName"`
	FullName       string `json:"fullName"`
	NationalID     string `json:"nationalId"`
	PassportNumber string `json:"passportNumber"`
	LuggageCount   int    `json:"luggageCount"`
	PassengerType  string `json:"passengerType"`
	Gender         string `json:"gender"`
	Nationality    string `json:"nationality"`
}
