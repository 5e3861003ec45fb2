package student

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		QueryStudents(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		GetStudent(ctx context.Context, id int64, exec ...core.DBExecutor) (Student, error)
		CreateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		UpdateStudent(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		DeleteStudent(ctx context.Context, id int64, exec ...core.DBExecutor) error
	}

	Service interface {
		// All returns every student; a nil ordering means DefaultOrdering.
		All(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error)
		Get(ctx context.Context, id int64, exec ...core.DBExecutor) (Student, error)
		// Save inserts s if it is new, else updates it in place.
		Save(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error)
		Delete(ctx context.Context, id int64, exec ...core.DBExecutor) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(repo, "repo"),
	).CheckAndPanic()
	return &service{repo: repo}
}

func (svc *service) All(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Student, error) {
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}
	if err := core.CheckOrdering(ordering, OrderFields...); err != nil {
		return nil, err
	}
	return svc.repo.QueryStudents(ctx, ordering, exec...)
}

func (svc *service) Get(ctx context.Context, id int64, exec ...core.DBExecutor) (Student, error) {
	if id <= 0 {
		return Student{}, ErrNotFound
	}
	return svc.repo.GetStudent(ctx, id, exec...)
}

func (svc *service) Save(ctx context.Context, s Student, exec ...core.DBExecutor) (Student, error) {
	if s.IsNew() {
		return svc.repo.CreateStudent(ctx, s, exec...)
	}
	return svc.repo.UpdateStudent(ctx, s, exec...)
}

func (svc *service) Delete(ctx context.Context, id int64, exec ...core.DBExecutor) error {
	return svc.repo.DeleteStudent(ctx, id, exec...)
}
