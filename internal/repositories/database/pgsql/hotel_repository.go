package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayfolio/pms_backend/internal/apperrors"
	"github.com/stayfolio/pms_backend/internal/core/domain"
	portsrepo "github.com/stayfolio/pms_backend/internal/core/ports/repositories"
	"github.com/stayfolio/pms_backend/internal/models"
	"github.com/stayfolio/pms_backend/internal/utils/mapping"
)

type PgxHotelRepository struct {
	BaseRepository
}

// newPgxHotelRepository creates a new repository for hotel state.
func newPgxHotelRepository(pool *pgxpool.Pool) portsrepo.HotelRepositoryFacade {
	return &PgxHotelRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HotelRepositoryFacade = (*PgxHotelRepository)(nil)

const hotelColumns = `
	hotel_id, name, currency_code, current_working_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanHotel(row pgx.Row) (*models.Hotel, error) {
	var m models.Hotel
	err := row.Scan(
		&m.HotelID, &m.Name, &m.CurrencyCode, &m.CurrentWorkingDate, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveHotel inserts a hotel row.
func (r *PgxHotelRepository) SaveHotel(ctx context.Context, hotel domain.Hotel) error {
	m := mapping.ToModelHotel(hotel)
	query := `
		INSERT INTO hotels (` + hotelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.HotelID, m.Name, m.CurrencyCode, m.CurrentWorkingDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "hotel "+m.HotelID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert hotel "+m.HotelID, err)
	}
	return nil
}

// FindHotelByID fetches one hotel.
func (r *PgxHotelRepository) FindHotelByID(ctx context.Context, hotelID string) (*domain.Hotel, error) {
	m, err := scanHotel(r.Pool.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE hotel_id = $1;`, hotelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("hotel " + hotelID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find hotel "+hotelID, err)
	}
	hotel := mapping.ToDomainHotel(*m)
	return &hotel, nil
}

// AdvanceWorkingDate moves the business date forward. The guard on the
// current value keeps a double-submitted night audit from skipping a day.
func (r *PgxHotelRepository) AdvanceWorkingDate(ctx context.Context, hotelID string, newDate time.Time, actorID string, at time.Time) error {
	query := `
		UPDATE hotels
		SET current_working_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE hotel_id = $1 AND current_working_date < $2;
	`
	tag, err := r.Pool.Exec(ctx, query, hotelID, newDate, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to advance working date for hotel "+hotelID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "working date for hotel "+hotelID+" already at or past "+newDate.Format("2006-01-02"), apperrors.ErrDuplicate)
	}
	return nil
}

type PgxPaymentMethodRepository struct {
	BaseRepository
}

// newPgxPaymentMethodRepository creates a new repository for the payment
// method registry.
func newPgxPaymentMethodRepository(pool *pgxpool.Pool) portsrepo.PaymentMethodRepositoryFacade {
	return &PgxPaymentMethodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentMethodRepositoryFacade = (*PgxPaymentMethodRepository)(nil)

const paymentMethodColumns = `
	payment_method_id, hotel_id, name, kind, company_id, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPaymentMethod(row pgx.Row) (*models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID, &m.HotelID, &m.Name, &m.Kind, &m.CompanyID, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePaymentMethod inserts a payment method row.
func (r *PgxPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	m := mapping.ToModelPaymentMethod(method)
	query := `
		INSERT INTO payment_methods (` + paymentMethodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PaymentMethodID, m.HotelID, m.Name, m.Kind, m.CompanyID, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "payment method "+m.PaymentMethodID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert payment method "+m.PaymentMethodID, err)
	}
	return nil
}

// FindPaymentMethodByID fetches one payment method.
func (r *PgxPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error) {
	m, err := scanPaymentMethod(r.Pool.QueryRow(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE payment_method_id = $1;`, paymentMethodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment method " + paymentMethodID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find payment method "+paymentMethodID, err)
	}
	method := mapping.ToDomainPaymentMethod(*m)
	return &method, nil
}

// ListPaymentMethodsByHotel returns a hotel's payment methods by name.
func (r *PgxPaymentMethodRepository) ListPaymentMethodsByHotel(ctx context.Context, hotelID string) ([]domain.PaymentMethod, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+paymentMethodColumns+` FROM payment_methods WHERE hotel_id = $1 ORDER BY name ASC;`, hotelID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payment methods for hotel "+hotelID, err)
	}
	defer rows.Close()

	var methods []domain.PaymentMethod
	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment method row", err)
		}
		methods = append(methods, mapping.ToDomainPaymentMethod(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating payment method rows", err)
	}
	return methods, nil
}

type PgxReservationRepository struct {
	BaseRepository
}

// newPgxReservationRepository creates a new repository for the stay context.
func newPgxReservationRepository(pool *pgxpool.Pool) portsrepo.ReservationRepositoryFacade {
	return &PgxReservationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReservationRepositoryFacade = (*PgxReservationRepository)(nil)

const reservationColumns = `
	reservation_id, hotel_id, guest_id, room_id, room_type, check_in_date, check_out_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanReservation(row pgx.Row) (*models.Reservation, error) {
	var m models.Reservation
	err := row.Scan(
		&m.ReservationID, &m.HotelID, &m.GuestID, &m.RoomID, &m.RoomType, &m.CheckInDate, &m.CheckOutDate, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveReservation inserts a reservation row.
func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	m := mapping.ToModelReservation(reservation)
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReservationID, m.HotelID, m.GuestID, m.RoomID, m.RoomType, m.CheckInDate, m.CheckOutDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "reservation "+m.ReservationID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert reservation "+m.ReservationID, err)
	}
	return nil
}

// FindReservationByID fetches one reservation.
func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	m, err := scanReservation(r.Pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE reservation_id = $1;`, reservationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("reservation " + reservationID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find reservation "+reservationID, err)
	}
	reservation := mapping.ToDomainReservation(*m)
	return &reservation, nil
}

// MarkCheckedOut flips the reservation to CHECKED_OUT, only from IN_HOUSE.
func (r *PgxReservationRepository) MarkCheckedOut(ctx context.Context, reservationID string, actorID string, at time.Time) error {
	query := `
		UPDATE reservations
		SET status = 'CHECKED_OUT', last_updated_at = $2, last_updated_by = $3
		WHERE reservation_id = $1 AND status = 'IN_HOUSE';
	`
	tag, err := r.Pool.Exec(ctx, query, reservationID, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark reservation "+reservationID+" checked out", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "reservation "+reservationID+" is not in house", apperrors.ErrValidation)
	}
	return nil
}
