package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"hotelchain/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
func fmtDate(t time.Time) string { return t.Format(dateLayout) }

type Repo struct {
	db *sql.DB
	// reservationsHold makes active reservations count as occupancy in
	// availability checks (soft holds).
	reservationsHold bool
}

func New(db *sql.DB, reservationsHold bool) *Repo {
	return &Repo{db: db, reservationsHold: reservationsHold}
}

// ---- catalog write paths ----

func (r *Repo) UpsertChain(ctx context.Context, c domain.Chain) error {
	_, err := r.db.ExecContext(ctx, upsertChainSQL, c.ID, c.Name, valStr(c.HQAddress))
	return err
}

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.ChainID, valStr(h.Name), valStr(h.Address), valInt(h.Stars), valStr(h.Zone), valInt(h.RoomCount))
	return err
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.HotelID, rm.Number, rm.Price, rm.Capacity, string(rm.View), rm.Extensible, valF64(rm.Area), rm.Damaged)
	return err
}

func (r *Repo) UpsertClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx, upsertClientSQL, c.SSN, valStr(c.Name))
	return err
}

func (r *Repo) UpsertEmployee(ctx context.Context, e domain.Employee) error {
	_, err := r.db.ExecContext(ctx, upsertEmployeeSQL, e.SSN, valStr(e.Name), valStr(e.Role))
	return err
}

// ---- read paths ----

func (r *Repo) ListHotels(ctx context.Context) ([]domain.HotelView, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.HotelView
	for rows.Next() {
		var hv domain.HotelView
		var name, address, zone sql.NullString
		var stars, roomCount sql.NullInt64
		if err := rows.Scan(&hv.ID, &hv.ChainName, &name, &address, &stars, &zone, &roomCount); err != nil {
			return nil, err
		}
		if name.Valid {
			s := name.String
			hv.Name = &s
		}
		if address.Valid {
			s := address.String
			hv.Address = &s
		}
		if stars.Valid {
			n := int(stars.Int64)
			hv.Stars = &n
		}
		if zone.Valid {
			s := zone.String
			hv.Zone = &s
		}
		if roomCount.Valid {
			n := int(roomCount.Int64)
			hv.RoomCount = &n
		}
		out = append(out, hv)
	}
	return out, rows.Err()
}

// filterPredicates turns the optional filters into conjunctive predicates on
// the room/hotel/chain join.
func filterPredicates(q domain.SearchQuery) ([]string, []any) {
	var preds []string
	var args []any
	add := func(p string, v any) {
		preds = append(preds, p)
		args = append(args, v)
	}
	if q.Zone != nil {
		add("h.zone = ?", *q.Zone)
	}
	if q.MinCapacity != nil {
		add("r.capacity >= ?", *q.MinCapacity)
	}
	if q.View != nil {
		add("r.view_type = ?", string(*q.View))
	}
	if q.ChainName != nil {
		add("c.name = ?", *q.ChainName)
	}
	if q.Stars != nil {
		add("h.stars = ?", *q.Stars)
	}
	if q.MinArea != nil {
		add("r.area >= ?", *q.MinArea)
	}
	if q.MaxArea != nil {
		add("r.area <= ?", *q.MaxArea)
	}
	if q.MinPrice != nil {
		add("r.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add("r.price <= ?", *q.MaxPrice)
	}
	return preds, args
}

func (r *Repo) AvailableRooms(ctx context.Context, q domain.SearchQuery) ([]domain.RoomView, error) {
	sqlStr := availableRoomsBaseSQL
	args := []any{fmtDate(q.End), fmtDate(q.Start)}
	if r.reservationsHold {
		sqlStr += availableRoomsHoldSQL
		args = append(args, fmtDate(q.End), fmtDate(q.Start))
	}
	if preds, pargs := filterPredicates(q); len(preds) > 0 {
		sqlStr += "\nAND " + strings.Join(preds, "\nAND ")
		args = append(args, pargs...)
	}
	sqlStr += availableRoomsOrderSQL

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RoomView
	for rows.Next() {
		var rv domain.RoomView
		var view string
		var area sql.NullFloat64
		var hAddr, zone sql.NullString
		var hStars sql.NullInt64
		if err := rows.Scan(
			&rv.ID, &rv.HotelID, &rv.Number, &rv.Price, &rv.Capacity, &view,
			&rv.Extensible, &area, &rv.Damaged,
			&hAddr, &hStars, &zone,
			&rv.ChainName,
		); err != nil {
			return nil, err
		}
		rv.View = domain.ViewType(view)
		if area.Valid {
			f := area.Float64
			rv.Area = &f
		}
		if hAddr.Valid {
			s := hAddr.String
			rv.HotelAddress = &s
		}
		if hStars.Valid {
			n := int(hStars.Int64)
			rv.HotelStars = &n
		}
		if zone.Valid {
			s := zone.String
			rv.Zone = &s
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) ReservationsByClient(ctx context.Context, clientID string) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, listReservationsByClientSQL, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		var status string
		if err := rows.Scan(&res.ID, &res.ClientID, &res.RoomID, &res.Start, &res.End, &status); err != nil {
			return nil, err
		}
		res.Status = domain.ReservationStatus(status)
		out = append(out, res)
	}
	return out, rows.Err()
}

// ---- booking transactions ----

func (r *Repo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// lockRoom takes a row lock on the room, serializing concurrent bookings of
// the same room for the rest of the transaction.
func lockRoom(ctx context.Context, tx *sql.Tx, roomID int64) error {
	var id int64
	if err := tx.QueryRowContext(ctx, lockRoomSQL, roomID).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) hasConflict(ctx context.Context, tx *sql.Tx, roomID int64, start, end time.Time, includeHolds bool) (bool, error) {
	var exists bool
	if err := tx.QueryRowContext(ctx, rentalConflictSQL, roomID, fmtDate(end), fmtDate(start)).Scan(&exists); err != nil {
		return false, err
	}
	if exists {
		return true, nil
	}
	if includeHolds && r.reservationsHold {
		if err := tx.QueryRowContext(ctx, reservationConflictSQL, roomID, fmtDate(end), fmtDate(start)).Scan(&exists); err != nil {
			return false, err
		}
	}
	return exists, nil
}

func (r *Repo) CreateReservation(ctx context.Context, d domain.ReservationDraft) (domain.Reservation, error) {
	var out domain.Reservation
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockRoom(ctx, tx, d.RoomID); err != nil {
			return err
		}
		conflict, err := r.hasConflict(ctx, tx, d.RoomID, d.Start, d.End, true)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrRoomUnavailable
		}
		res, err := tx.ExecContext(ctx, insertReservationSQL, d.ClientID, d.RoomID, fmtDate(d.Start), fmtDate(d.End))
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		out = domain.Reservation{
			ID:       id,
			ClientID: d.ClientID,
			RoomID:   d.RoomID,
			Start:    d.Start,
			End:      d.End,
			Status:   domain.ReservationActive,
		}
		return nil
	})
	return out, err
}

func (r *Repo) CancelReservation(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, cancelReservationSQL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertPaymentAndRental writes the payment row, then the rental row
// referencing it. Ordering matters for the foreign key; running both inside
// the caller's transaction means a failed rental insert rolls the payment
// back instead of stranding it.
func insertPaymentAndRental(ctx context.Context, tx *sql.Tx, clientID, employeeID string, roomID int64, start, end time.Time, amount float64, issuedAt time.Time) (domain.Rental, error) {
	pres, err := tx.ExecContext(ctx, insertPaymentSQL, amount, issuedAt.Format(dateTimeLayout))
	if err != nil {
		return domain.Rental{}, err
	}
	paymentID, err := pres.LastInsertId()
	if err != nil {
		return domain.Rental{}, err
	}
	rres, err := tx.ExecContext(ctx, insertRentalSQL,
		clientID, employeeID, roomID, paymentID, fmtDate(start), fmtDate(end))
	if err != nil {
		return domain.Rental{}, err
	}
	rentalID, err := rres.LastInsertId()
	if err != nil {
		return domain.Rental{}, err
	}
	return domain.Rental{
		ID:         rentalID,
		ClientID:   clientID,
		EmployeeID: employeeID,
		RoomID:     roomID,
		Start:      start,
		End:        end,
		Payment:    domain.Payment{ID: paymentID, Amount: amount, IssuedAt: issuedAt},
	}, nil
}

func (r *Repo) CreateRental(ctx context.Context, d domain.RentalDraft) (domain.Rental, error) {
	var out domain.Rental
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		if err := lockRoom(ctx, tx, d.RoomID); err != nil {
			return err
		}
		conflict, err := r.hasConflict(ctx, tx, d.RoomID, d.Start, d.End, true)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrRoomUnavailable
		}
		out, err = insertPaymentAndRental(ctx, tx, d.ClientID, d.EmployeeID, d.RoomID, d.Start, d.End, d.Amount, d.IssuedAt)
		return err
	})
	return out, err
}

func (r *Repo) ConvertReservation(ctx context.Context, reservationID int64, employeeID string, amount float64, issuedAt time.Time) (domain.Rental, error) {
	var out domain.Rental
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var (
			id       int64
			clientID string
			roomID   int64
			start    time.Time
			end      time.Time
		)
		err := tx.QueryRowContext(ctx, activeReservationForUpdateSQL, reservationID).
			Scan(&id, &clientID, &roomID, &start, &end)
		if err != nil {
			if err == sql.ErrNoRows {
				return domain.ErrNotFound
			}
			return err
		}

		// The reservation itself holds the slot; only rentals can conflict.
		conflict, err := r.hasConflict(ctx, tx, roomID, start, end, false)
		if err != nil {
			return err
		}
		if conflict {
			return domain.ErrRoomUnavailable
		}

		out, err = insertPaymentAndRental(ctx, tx, clientID, employeeID, roomID, start, end, amount, issuedAt)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, markConvertedSQL, id)
		return err
	})
	return out, err
}
