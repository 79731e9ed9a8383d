package bookingrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"itemshare/model"
	"itemshare/util/database"
	"itemshare/util/page"
)

// Repo is the persistence contract of the booking lifecycle engine.
// Time-window queries take the query instant explicitly so the caller owns
// the clock. All listings order by start descending except NextForItem.
type Repo interface {
	Create(ctx context.Context, b *model.Booking) error
	ByID(ctx context.Context, id int64) (*model.Booking, error)

	// Decide locks the booking row, runs the guard against the loaded
	// booking inside the transaction, and applies the status when the
	// guard passes. Returns (nil, nil) if the booking does not exist.
	Decide(ctx context.Context, id int64, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error)

	AllByBooker(ctx context.Context, bookerID int64, p page.Page) ([]model.Booking, error)
	CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	PastByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	FutureByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	ByBookerAndStatus(ctx context.Context, bookerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error)

	AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Booking, error)
	CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	PastByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	FutureByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error)
	ByOwnerAndStatus(ctx context.Context, ownerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error)

	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const selectBooking = `
	SELECT b.id, b.start_ts, b.end_ts, b.status,
	       i.id, i.name, i.description, i.available, i.request_id,
	       o.id, o.name, o.email,
	       u.id, u.name, u.email
	FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users o ON o.id = i.owner_id
	JOIN users u ON u.id = b.booker_id`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	b := &model.Booking{}
	err := row.Scan(
		&b.ID, &b.Start, &b.End, &b.Status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.RequestID,
		&b.Item.Owner.ID, &b.Item.Owner.Name, &b.Item.Owner.Email,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Create(ctx context.Context, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_ts, end_ts, status, item_id, booker_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		b.Start, b.End, b.Status, b.Item.ID, b.Booker.ID,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = selectBooking + `
	WHERE b.id = $1`
	b, err := scanBooking(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Decide(ctx context.Context, id int64, status model.BookingStatus, guard func(*model.Booking) error) (*model.Booking, error) {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Row lock keeps two concurrent decisions from both reading WAITING.
	const q = selectBooking + `
	WHERE b.id = $1
	FOR UPDATE OF b`
	b, err := scanBooking(tx.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := guard(b); err != nil {
		return nil, err
	}

	const upd = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	if _, err := tx.Exec(ctx, upd, id, status); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

// ----- booker listings -----

func (r *repo) AllByBooker(ctx context.Context, bookerID int64, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE b.booker_id = $1
	ORDER BY b.start_ts DESC
	LIMIT $2 OFFSET $3`
	return r.queryBookings(ctx, q, bookerID, p.Limit(), p.Offset())
}

func (r *repo) CurrentByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE b.booker_id = $1 AND b.start_ts <= $2 AND b.end_ts > $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, bookerID, now, p.Limit(), p.Offset())
}

func (r *repo) PastByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE b.booker_id = $1 AND b.end_ts < $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, bookerID, now, p.Limit(), p.Offset())
}

func (r *repo) FutureByBooker(ctx context.Context, bookerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE b.booker_id = $1 AND b.start_ts > $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, bookerID, now, p.Limit(), p.Offset())
}

func (r *repo) ByBookerAndStatus(ctx context.Context, bookerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE b.booker_id = $1 AND b.status = $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, bookerID, status, p.Limit(), p.Offset())
}

// ----- owner listings -----

func (r *repo) AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE i.owner_id = $1
	ORDER BY b.start_ts DESC
	LIMIT $2 OFFSET $3`
	return r.queryBookings(ctx, q, ownerID, p.Limit(), p.Offset())
}

func (r *repo) CurrentByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE i.owner_id = $1 AND b.start_ts <= $2 AND b.end_ts > $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, ownerID, now, p.Limit(), p.Offset())
}

func (r *repo) PastByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE i.owner_id = $1 AND b.end_ts < $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, ownerID, now, p.Limit(), p.Offset())
}

func (r *repo) FutureByOwner(ctx context.Context, ownerID int64, now time.Time, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE i.owner_id = $1 AND b.start_ts > $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, ownerID, now, p.Limit(), p.Offset())
}

func (r *repo) ByOwnerAndStatus(ctx context.Context, ownerID int64, status model.BookingStatus, p page.Page) ([]model.Booking, error) {
	const q = selectBooking + `
	WHERE i.owner_id = $1 AND b.status = $2
	ORDER BY b.start_ts DESC
	LIMIT $3 OFFSET $4`
	return r.queryBookings(ctx, q, ownerID, status, p.Limit(), p.Offset())
}

// ----- item projections -----

func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = selectBooking + `
	WHERE b.item_id = $1 AND b.start_ts <= $2
	ORDER BY b.start_ts DESC
	LIMIT 1`
	return r.queryOne(ctx, q, itemID, now)
}

func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	const q = selectBooking + `
	WHERE b.item_id = $1 AND b.start_ts > $2
	ORDER BY b.start_ts ASC
	LIMIT 1`
	return r.queryOne(ctx, q, itemID, now)
}

func (r *repo) HasPastForItem(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1 AND item_id = $2 AND end_ts < $3
		)`
	var ok bool
	err := r.db.Pool.QueryRow(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}

func (r *repo) queryOne(ctx context.Context, q string, args ...any) (*model.Booking, error) {
	b, err := scanBooking(r.db.Pool.QueryRow(ctx, q, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}
