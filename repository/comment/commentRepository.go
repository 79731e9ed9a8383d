package commentrepo

import (
	"context"

	"itemshare/model"
	"itemshare/util/database"
)

type Repo interface {
	Create(ctx context.Context, c *model.Comment) error
	AllByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, c *model.Comment) error {
	const q = `
		INSERT INTO comments (text, item_id, author_id, created)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	return r.db.Pool.QueryRow(ctx, q,
		c.Text, c.ItemID, c.Author.ID, c.Created,
	).Scan(&c.ID)
}

func (r *repo) AllByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `
		SELECT c.id, c.text, c.item_id, c.created,
		       a.id, a.name, a.email
		FROM comments c
		JOIN users a ON a.id = c.author_id
		WHERE c.item_id = $1
		ORDER BY c.created DESC`
	rows, err := r.db.Pool.Query(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(
			&c.ID, &c.Text, &c.ItemID, &c.Created,
			&c.Author.ID, &c.Author.Name, &c.Author.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
