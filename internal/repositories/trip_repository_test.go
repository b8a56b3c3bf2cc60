package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
)

var tripCols = []string{"id", "airport_name", "travel_date", "flight_number", "travel_type", "flight_type",
	"passenger_count", "order_id", "additional_info", "buyer_name", "buyer_phone", "buyer_email", "created_at"}

var passengerCols = []string{"id", "trip_id", "name", "last_name", "full_name", "national_id",
	"passport_number", "luggage_count", "passenger_type", "gender", "nationality"}

func TestTripRepositoryCreateInsertsPassengersInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	trip := models.Trip{
		ID: "t1", AirportName: "IKA", TravelDate: "2025/09/28", FlightNumber: "IR123",
		TravelType: "departure", FlightType: "class_a", PassengerCount: 2, CreatedAt: now,
		Passengers: []models.Passenger{
			{ID: "p1", FullName: "Ali Rezaei", LuggageCount: 1, PassengerType: "adult", Nationality: "ایرانی"},
			{ID: "p2", FullName: "Sara Rezaei", LuggageCount: 0, PassengerType: "child", Nationality: "ایرانی"},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").
		WithArgs("t1", "IKA", "2025/09/28", "IR123", "departure", "class_a", 2, nil, nil, nil, nil, nil, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WithArgs("p1", "t1", sqlmock.AnyArg(), sqlmock.AnyArg(), "Ali Rezaei",
		sqlmock.AnyArg(), sqlmock.AnyArg(), 1, "adult", sqlmock.AnyArg(), "ایرانی").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WithArgs("p2", "t1", sqlmock.AnyArg(), sqlmock.AnyArg(), "Sara Rezaei",
		sqlmock.AnyArg(), sqlmock.AnyArg(), 0, "child", sqlmock.AnyArg(), "ایرانی").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := (TripRepository{DB: db}).Create(context.Background(), trip); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepositoryCreateRollsBackOnPassengerFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO passengers").WillReturnError(context.DeadlineExceeded)
	mock.ExpectRollback()

	trip := models.Trip{ID: "t1", Passengers: []models.Passenger{{ID: "p1"}}}
	if err := (TripRepository{DB: db}).Create(context.Background(), trip); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTripRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT (.+) FROM trips WHERE id=").WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("t1", "IKA", "2025/09/28", "IR123", "arrival", "class_b", 1, "ord-9", "", "", "", "", now))
	mock.ExpectQuery("FROM passengers WHERE trip_id IN").WithArgs("t1").
		WillReturnRows(sqlmock.NewRows(passengerCols).
			AddRow("p1", "t1", "Ali", "Rezaei", "Ali Rezaei", "0012345678", "", 2, "adult", "male", "ایرانی"))

	trip, err := (TripRepository{DB: db}).GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if trip.TravelType != "arrival" || trip.OrderID != "ord-9" {
		t.Fatalf("unexpected trip: %+v", trip)
	}
	if len(trip.Passengers) != 1 || trip.Passengers[0].FullName != "Ali Rezaei" {
		t.Fatalf("unexpected passengers: %+v", trip.Passengers)
	}
}

func TestTripRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id=").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(tripCols))

	_, err = (TripRepository{DB: db}).GetByID(context.Background(), "missing")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestTripRepositoryListAttachesPassengers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("FROM trips ORDER BY created_at DESC").WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(tripCols).
			AddRow("t1", "IKA", "2025/09/28", "IR1", "departure", "class_a", 1, "", "", "", "", "", now).
			AddRow("t2", "MHD", "2025/10/01", "IR2", "departure", "class_a", 0, "", "", "", "", "", now))
	mock.ExpectQuery("FROM passengers WHERE trip_id IN").WithArgs("t1", "t2").
		WillReturnRows(sqlmock.NewRows(passengerCols).
			AddRow("p1", "t1", "", "", "Ali", "", "", 0, "adult", "", "ایرانی"))

	trips, err := (TripRepository{DB: db}).List(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}
	if len(trips[0].Passengers) != 1 || trips[1].Passengers == nil || len(trips[1].Passengers) != 0 {
		t.Fatalf("unexpected passengers: %+v / %+v", trips[0].Passengers, trips[1].Passengers)
	}
}

func TestTripRepositoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM passengers").WithArgs("t9").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM trips").WithArgs("t9").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = (TripRepository{DB: db}).Delete(context.Background(), "t9")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
