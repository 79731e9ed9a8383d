package requestrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"itemshare/model"
	"itemshare/util/database"
	"itemshare/util/page"
)

type Repo interface {
	Create(ctx context.Context, req *model.Request) error
	ByID(ctx context.Context, id int64) (*model.Request, error)
	AllByRequester(ctx context.Context, requesterID int64) ([]model.Request, error)
	// AllAlien lists requests raised by everyone except requesterID,
	// newest first.
	AllAlien(ctx context.Context, requesterID int64, p page.Page) ([]model.Request, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const selectRequest = `
	SELECT r.id, r.description, r.created,
	       u.id, u.name, u.email
	FROM requests r
	JOIN users u ON u.id = r.requester_id`

func scanRequest(row pgx.Row) (*model.Request, error) {
	req := &model.Request{}
	err := row.Scan(
		&req.ID, &req.Description, &req.Created,
		&req.Requester.ID, &req.Requester.Name, &req.Requester.Email,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) Create(ctx context.Context, req *model.Request) error {
	const q = `
		INSERT INTO requests (description, created, requester_id)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		req.Description, req.Created, req.Requester.ID,
	).Scan(&req.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Request, error) {
	const q = selectRequest + `
	WHERE r.id = $1`
	req, err := scanRequest(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) AllByRequester(ctx context.Context, requesterID int64) ([]model.Request, error) {
	const q = selectRequest + `
	WHERE r.requester_id = $1
	ORDER BY r.created DESC`
	return r.queryRequests(ctx, q, requesterID)
}

func (r *repo) AllAlien(ctx context.Context, requesterID int64, p page.Page) ([]model.Request, error) {
	const q = selectRequest + `
	WHERE r.requester_id <> $1
	ORDER BY r.created DESC
	LIMIT $2 OFFSET $3`
	return r.queryRequests(ctx, q, requesterID, p.Limit(), p.Offset())
}

func (r *repo) queryRequests(ctx context.Context, q string, args ...any) ([]model.Request, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}
