package itemrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"itemshare/model"
	"itemshare/util/database"
	"itemshare/util/page"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	ByID(ctx context.Context, id int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	Delete(ctx context.Context, id int64) error
	AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error)
	Search(ctx context.Context, template string, p page.Page) ([]model.Item, error)
	AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const selectItem = `
	SELECT i.id, i.name, i.description, i.available, i.request_id,
	       o.id, o.name, o.email
	FROM items i
	JOIN users o ON o.id = i.owner_id`

func scanItem(row pgx.Row) (*model.Item, error) {
	it := &model.Item{}
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Available, &it.RequestID,
		&it.Owner.ID, &it.Owner.Name, &it.Owner.Email,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		it.Name, it.Description, it.Available, it.Owner.ID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = selectItem + `
	WHERE i.id = $1`
	it, err := scanItem(r.db.Pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *repo) Update(ctx context.Context, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2, description = $3, available = $4
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `
		DELETE FROM items
		WHERE id = $1`
	_, err := r.db.Pool.Exec(ctx, q, id)
	return err
}

func (r *repo) AllByOwner(ctx context.Context, ownerID int64, p page.Page) ([]model.Item, error) {
	const q = selectItem + `
	WHERE i.owner_id = $1
	ORDER BY i.id
	LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, ownerID, p.Limit(), p.Offset())
}

// Search matches the template case-insensitively against the concatenation
// of description and name, available items only.
func (r *repo) Search(ctx context.Context, template string, p page.Page) ([]model.Item, error) {
	const q = selectItem + `
	WHERE i.available = true
	  AND lower(i.description || i.name) LIKE lower('%' || $1 || '%')
	ORDER BY i.id
	LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, template, p.Limit(), p.Offset())
}

func (r *repo) AllByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = selectItem + `
	WHERE i.request_id = $1
	ORDER BY i.id`
	return r.queryItems(ctx, q, requestID)
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}
