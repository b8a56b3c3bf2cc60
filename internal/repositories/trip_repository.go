package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "airportbot/internal/config"
	intdb "airportbot/internal/db"
	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const tripColumns = `id, airport_name, travel_date, flight_number, COALESCE(travel_type,'departure'),
	COALESCE(flight_type,'class_a'), COALESCE(passenger_count,0), COALESCE(order_id,''),
	COALESCE(additional_info,''), COALESCE(buyer_name,''), COALESCE(buyer_phone,''),
	COALESCE(buyer_email,''), created_at`

const passengerColumns = `id, trip_id, COALESCE(name,''), COALESCE(last_name,''), COALESCE(full_name,''),
	COALESCE(national_id,''), COALESCE(passport_number,''), COALESCE(luggage_count,0),
	COALESCE(passenger_type,'adult'), COALESCE(gender,''), COALESCE(nationality,'')`

// Create inserts the trip and its passengers in one transaction.
func (r TripRepository) Create(ctx context.Context, trip models.Trip) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, intdb.Rebind(`INSERT INTO trips
		(id, airport_name, travel_date, flight_number, travel_type, flight_type, passenger_count,
		 order_id, additional_info, buyer_name, buyer_phone, buyer_email, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`),
		trip.ID, trip.AirportName, trip.TravelDate, trip.FlightNumber, trip.TravelType, trip.FlightType,
		trip.PassengerCount, intdb.NullIfEmpty(trip.OrderID), intdb.NullIfEmpty(trip.AdditionalInfo),
		intdb.NullIfEmpty(trip.BuyerName), intdb.NullIfEmpty(trip.BuyerPhone), intdb.NullIfEmpty(trip.BuyerEmail),
		trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert trip: %w", err)
	}

	for _, p := range trip.Passengers {
		_, err = tx.ExecContext(ctx, intdb.Rebind(`INSERT INTO passengers
			(id, trip_id, name, last_name, full_name, national_id, passport_number, luggage_count,
			 passenger_type, gender, nationality)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`),
			p.ID, trip.ID, p.Name, p.LastName, p.FullName, p.NationalID, p.PassportNumber, p.LuggageCount,
			p.PassengerType, p.Gender, p.Nationality,
		)
		if err != nil {
			return fmt.Errorf("insert passenger: %w", err)
		}
	}
	return tx.Commit()
}

func (r TripRepository) GetByID(ctx context.Context, id string) (models.Trip, error) {
	db := r.db()
	if db == nil {
		return models.Trip{}, domain.InternalError{Msg: "database not connected"}
	}
	row := db.QueryRowContext(ctx, intdb.Rebind(`SELECT `+tripColumns+` FROM trips WHERE id=? LIMIT 1`), id)
	trip, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Trip{}, domain.NotFoundError{Resource: "trip", Err: err}
	}
	if err != nil {
		return models.Trip{}, err
	}

	byTrip, err := r.passengersFor(ctx, db, []string{trip.ID})
	if err != nil {
		return models.Trip{}, err
	}
	trip.Passengers = byTrip[trip.ID]
	if trip.Passengers == nil {
		trip.Passengers = []models.Passenger{}
	}
	return trip, nil
}

// List returns trips newest first with their passengers attached.
func (r TripRepository) List(ctx context.Context, limit, offset int) ([]models.Trip, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	rows, err := db.QueryContext(ctx, intdb.Rebind(`SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	ids := []string{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	byTrip, err := r.passengersFor(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Passengers = byTrip[out[i].ID]
		if out[i].Passengers == nil {
			out[i].Passengers = []models.Passenger{}
		}
	}
	return out, nil
}

// Delete removes the trip and its passengers. Passengers are deleted
// explicitly so SQLite without foreign_keys enabled behaves the same.
func (r TripRepository) Delete(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, intdb.Rebind(`DELETE FROM passengers WHERE trip_id=?`), id); err != nil {
		return fmt.Errorf("delete passengers: %w", err)
	}
	res, err := tx.ExecContext(ctx, intdb.Rebind(`DELETE FROM trips WHERE id=?`), id)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}
	return tx.Commit()
}

func (r TripRepository) passengersFor(ctx context.Context, db *sql.DB, tripIDs []string) (map[string][]models.Passenger, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tripIDs)), ",")
	args := make([]any, 0, len(tripIDs))
	for _, id := range tripIDs {
		args = append(args, id)
	}
	rows, err := db.QueryContext(ctx, intdb.Rebind(`SELECT `+passengerColumns+` FROM passengers WHERE trip_id IN (`+placeholders+`) ORDER BY id ASC`), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]models.Passenger{}
	for rows.Next() {
		var p models.Passenger
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.LastName, &p.FullName, &p.NationalID,
			&p.PassportNumber, &p.LuggageCount, &p.PassengerType, &p.Gender, &p.Nationality); err != nil {
			return nil, err
		}
		out[p.TripID] = append(out[p.TripID], p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(s rowScanner) (models.Trip, error) {
	var t models.Trip
	err := s.Scan(&t.ID, &t.AirportName, &t.TravelDate, &t.FlightNumber, &t.TravelType, &t.FlightType,
		&t.PassengerCount, &t.OrderID, &t.AdditionalInfo, &t.BuyerName, &t.BuyerPhone, &t.BuyerEmail, &t.CreatedAt)
	return t, err
}
