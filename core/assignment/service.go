package assignment

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var ErrNotFound = errors.New("assignment not found")

type (
	Repository interface {
		QueryAssignments(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Assignment, error)
		GetAssignment(ctx context.Context, id int64, exec ...core.DBExecutor) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int64, exec ...core.DBExecutor) error
	}

	Service interface {
		// All returns every assignment; a nil ordering means DefaultOrdering.
		All(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Assignment, error)
		// Public returns the assignments visible on the public gradebook, in DefaultOrdering.
		Public(ctx context.Context, exec ...core.DBExecutor) ([]Assignment, error)
		Get(ctx context.Context, id int64, exec ...core.DBExecutor) (Assignment, error)
		// Save inserts a if it is new, else updates it in place.
		Save(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
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

func (svc *service) All(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]Assignment, error) {
	if len(ordering) == 0 {
		ordering = DefaultOrdering
	}
	if err := core.CheckOrdering(ordering, OrderFields...); err != nil {
		return nil, err
	}
	return svc.repo.QueryAssignments(ctx, ordering, exec...)
}

func (svc *service) Public(ctx context.Context, exec ...core.DBExecutor) ([]Assignment, error) {
	all, err := svc.All(ctx, nil, exec...)
	if err != nil {
		return nil, err
	}
	public := make([]Assignment, 0, len(all))
	for _, a := range all {
		if a.IsPublic {
			public = append(public, a)
		}
	}
	return public, nil
}

func (svc *service) Get(ctx context.Context, id int64, exec ...core.DBExecutor) (Assignment, error) {
	if id <= 0 {
		return Assignment{}, ErrNotFound
	}
	return svc.repo.GetAssignment(ctx, id, exec...)
}

func (svc *service) Save(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error) {
	if a.IsNew() {
		return svc.repo.CreateAssignment(ctx, a, exec...)
	}
	return svc.repo.UpdateAssignment(ctx, a, exec...)
}

func (svc *service) Delete(ctx context.Context, id int64, exec ...core.DBExecutor) error {
	return svc.repo.DeleteAssignment(ctx, id, exec...)
}
