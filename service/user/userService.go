// Package usersvc manages accounts. Email uniqueness is owned by the
// users_email unique index; the violation is translated here rather than
// re-scanned in application code.
package usersvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"itemshare/model"
	"itemshare/util/apperr"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, patch model.UserPatch, id int64) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateEmail(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Newf(apperr.ErrNotFound, "no user with id = %d", id)
	}
	return u, nil
}

func (s *service) List(ctx context.Context) ([]model.User, error) {
	return s.r.All(ctx)
}

func (s *service) Update(ctx context.Context, patch model.UserPatch, id int64) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		u.Name = *patch.Name
	}
	if patch.Email != nil && strings.TrimSpace(*patch.Email) != "" {
		u.Email = *patch.Email
	}
	if err := s.r.Update(ctx, u); err != nil {
		if derr := mapDuplicateEmail(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.r.Delete(ctx, id)
}

func mapDuplicateEmail(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.New(apperr.ErrDuplicateEmail, "email is already in use")
	}
	return nil
}
