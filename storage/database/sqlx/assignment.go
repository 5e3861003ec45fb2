package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
)

const assignmentTable = "assignment"

var assignmentColumns = []string{"id", "name", "description", "comment", "due_date", "points", "is_public"}

type assignmentRepository struct {
	repository
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(exec core.DBExecutor) *assignmentRepository {
	return &assignmentRepository{repository{exec: exec}}
}

func (repo assignmentRepository) QueryAssignments(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]assignment.Assignment, error) {
	query := psql.Select(assignmentColumns...).From(assignmentTable).OrderBy(orderBy(ordering)...)

	assignments := make([]assignment.Assignment, 0)
	if err := repo.selectAll(ctx, exec, &assignments, query); err != nil {
		return nil, errors.Wrap(err, "querying assignments")
	}
	return assignments, nil
}

func (repo assignmentRepository) GetAssignment(ctx context.Context, id int64, exec ...core.DBExecutor) (assignment.Assignment, error) {
	query := psql.Select(assignmentColumns...).From(assignmentTable).Where(sq.Eq{"id": id})

	var a assignment.Assignment
	if err := repo.get(ctx, exec, &a, query); err != nil {
		return assignment.Assignment{}, trapNoRowsErr(err, assignment.ErrNotFound, "finding assignment by ID")
	}
	return a, nil
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	query := psql.Insert(assignmentTable).
		Columns("name", "description", "comment", "due_date", "points", "is_public").
		Values(a.Name, a.Description, a.Comment, a.DueDate, a.Points, a.IsPublic).
		Suffix("RETURNING id")

	if err := repo.get(ctx, exec, &a.ID, query); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment, exec ...core.DBExecutor) (assignment.Assignment, error) {
	query := psql.Update(assignmentTable).
		SetMap(map[string]interface{}{
			"name":        a.Name,
			"description": a.Description,
			"comment":     a.Comment,
			"due_date":    a.DueDate,
			"points":      a.Points,
			"is_public":   a.IsPublic,
		}).
		Where(sq.Eq{"id": a.ID})

	if err := repo.execAffecting(ctx, exec, query, assignment.ErrNotFound); err != nil {
		if err == assignment.ErrNotFound {
			return assignment.Assignment{}, err
		}
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	return a, nil
}

// DeleteAssignment also deletes the assignment's grades (ON DELETE CASCADE).
func (repo assignmentRepository) DeleteAssignment(ctx context.Context, id int64, exec ...core.DBExecutor) error {
	query := psql.Delete(assignmentTable).Where(sq.Eq{"id": id})

	if err := repo.execAffecting(ctx, exec, query, assignment.ErrNotFound); err != nil {
		if err == assignment.ErrNotFound {
			return err
		}
		return errors.Wrap(err, "deleting assignment")
	}
	return nil
}
