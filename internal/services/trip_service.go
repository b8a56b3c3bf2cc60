package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/queue"
	"airportbot/internal/repositories"
	"airportbot/internal/utils"
)

type TripService struct {
	Repo      repositories.TripRepository
	Events    queue.Publisher
	RequestID string
}

func (s TripService) Create(ctx context.Context, in models.TripCreate) (models.Trip, error) {
	trip, err := buildTrip(in)
	if err != nil {
		return models.Trip{}, err
	}
	if err := s.Repo.Create(ctx, trip); err != nil {
		return models.Trip{}, domain.InternalError{Msg: "failed to save trip", Err: err}
	}
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%s passengers=%d", trip.ID, len(trip.Passengers)))

	if s.Events != nil {
		ev := queue.TripCreatedEvent{
			TripID:         trip.ID,
			AirportName:    trip.AirportName,
			TravelDate:     trip.TravelDate,
			FlightNumber:   trip.FlightNumber,
			TravelType:     trip.TravelType,
			FlightType:     trip.FlightType,
			PassengerCount: trip.PassengerCount,
			OrderID:        trip.OrderID,
			CreatedAt:      utils.FormatDateTime(trip.CreatedAt),
		}
		if err := s.Events.PublishTripCreated(ctx, ev); err != nil {
			utils.LogError(s.RequestID, "trip", "publish", err)
		}
	}
	return trip, nil
}

func buildTrip(in models.TripCreate) (models.Trip, error) {
	trip := models.Trip{
		ID:             uuid.NewString(),
		AirportName:    strings.TrimSpace(in.AirportName),
		TravelDate:     utils.ConvertToStandardDate(in.TravelDate),
		FlightNumber:   strings.TrimSpace(in.FlightNumber),
		TravelType:     strings.ToLower(utils.FirstNonEmpty(in.TravelType, models.TravelTypeDeparture)),
		FlightType:     strings.ToLower(utils.FirstNonEmpty(in.FlightType, models.FlightTypeClassA)),
		OrderID:        strings.TrimSpace(in.OrderID),
		AdditionalInfo: strings.TrimSpace(in.AdditionalInfo),
		BuyerName:      strings.TrimSpace(in.BuyerName),
		BuyerPhone:     strings.TrimSpace(in.BuyerPhone),
		BuyerEmail:     strings.TrimSpace(in.BuyerEmail),
		CreatedAt:      utils.NowUTC(),
		Passengers:     []models.Passenger{},
	}

	switch {
	case trip.AirportName == "":
		return trip, domain.ValidationError{Field: "airportName", Msg: "required"}
	case trip.TravelDate == "":
		return trip, domain.ValidationError{Field: "travelDate", Msg: "required"}
	case trip.FlightNumber == "":
		return trip, domain.ValidationError{Field: "flightNumber", Msg: "required"}
	}
	if trip.TravelType != models.TravelTypeDeparture && trip.TravelType != models.TravelTypeArrival {
		return trip, domain.ValidationError{Field: "travelType", Msg: "must be departure or arrival"}
	}
	if trip.FlightType != models.FlightTypeClassA && trip.FlightType != models.FlightTypeClassB {
		return trip, domain.ValidationError{Field: "flightType", Msg: "must be class_a or class_b"}
	}

	for i, pc := range in.Passengers {
		p, err := buildPassenger(pc)
		if err != nil {
			if ve, ok := err.(domain.ValidationError); ok {
				ve.Field = fmt.Sprintf("passengers[%d].%s", i, ve.Field)
				return trip, ve
			}
			return trip, err
		}
		p.TripID = trip.ID
		trip.Passengers = append(trip.Passengers, p)
	}

	trip.PassengerCount = len(trip.Passengers)
	if in.PassengerCount != nil {
		if *in.PassengerCount < 0 {
			return trip, domain.ValidationError{Field: "passengerCount", Msg: "must not be negative"}
		}
		trip.PassengerCount = *in.PassengerCount
	}
	return trip, nil
}

func buildPassenger(in models.PassengerCreate) (models.Passenger, error) {
	p := models.Passenger{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		LastName:       strings.TrimSpace(in.LastName),
		FullName:       utils.NormalizeSpace(in.FullName),
		NationalID:     strings.TrimSpace(in.NationalID),
		PassportNumber: strings.TrimSpace(in.PassportNumber),
		LuggageCount:   in.LuggageCount,
		PassengerType:  strings.ToLower(utils.FirstNonEmpty(in.PassengerType, models.PassengerAdult)),
		Gender:         strings.ToLower(strings.TrimSpace(in.Gender)),
		Nationality:    utils.FirstNonEmpty(in.Nationality, models.DefaultNationality),
	}
	if p.FullName == "" {
		p.FullName = utils.NormalizeSpace(p.Name + " " + p.LastName)
	}
	if p.FullName == "" {
		return p, domain.ValidationError{Field: "fullName", Msg: "required"}
	}
	if p.LuggageCount < 0 {
		return p, domain.ValidationError{Field: "luggageCount", Msg: "must not be negative"}
	}
	switch p.PassengerType {
	case models.PassengerAdult, models.PassengerChild, models.PassengerInfant:
	default:
		return p, domain.ValidationError{Field: "passengerType", Msg: "must be adult, child or infant"}
	}
	if p.Gender != "" && p.Gender != models.GenderMale && p.Gender != models.GenderFemale {
		return p, domain.ValidationError{Field: "gender", Msg: "must be male or female"}
	}
	return p, nil
}

func (s TripService) Get(ctx context.Context, id string) (models.Trip, error) {
	if strings.TrimSpace(id) == "" {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "required"}
	}
	trip, err := s.Repo.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		return models.Trip{}, domain.NotFoundError{Resource: "Trip", Err: err}
	}
	return trip, err
}

func (s TripService) List(ctx context.Context, page domain.Pagination) ([]models.Trip, error) {
	page = page.Normalize(20, 100)
	trips, err := s.Repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list trips", Err: err}
	}
	return trips, nil
}

func (s TripService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if domain.IsNotFound(err) {
			return domain.NotFoundError{Resource: "Trip", Err: err}
		}
		return domain.InternalError{Msg: "failed to delete trip", Err: err}
	}
	utils.LogEvent(s.RequestID, "trip", "delete", "trip_id="+id)
	return nil
}
