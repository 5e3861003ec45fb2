package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/student"
)

const studentTable = "student"

var studentColumns = []string{"id", "first_name", "last_name", "alias", "grad_year", "email"}

type studentRepository struct {
	repository
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(exec core.DBExecutor) *studentRepository {
	return &studentRepository{repository{exec: exec}}
}

func (repo studentRepository) QueryStudents(ctx context.Context, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]student.Student, error) {
	query := psql.Select(studentColumns...).From(studentTable).OrderBy(orderBy(ordering)...)

	students := make([]student.Student, 0)
	if err := repo.selectAll(ctx, exec, &students, query); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, id int64, exec ...core.DBExecutor) (student.Student, error) {
	query := psql.Select(studentColumns...).From(studentTable).Where(sq.Eq{"id": id})

	var s student.Student
	if err := repo.get(ctx, exec, &s, query); err != nil {
		return student.Student{}, trapNoRowsErr(err, student.ErrNotFound, "finding student by ID")
	}
	return s, nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	query := psql.Insert(studentTable).
		Columns("first_name", "last_name", "alias", "grad_year", "email").
		Values(s.FirstName, s.LastName, s.Alias, s.GradYear, s.Email).
		Suffix("RETURNING id")

	if err := repo.get(ctx, exec, &s.ID, query); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return s, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student, exec ...core.DBExecutor) (student.Student, error) {
	query := psql.Update(studentTable).
		SetMap(map[string]interface{}{
			"first_name": s.FirstName,
			"last_name":  s.LastName,
			"alias":      s.Alias,
			"grad_year":  s.GradYear,
			"email":      s.Email,
		}).
		Where(sq.Eq{"id": s.ID})

	if err := repo.execAffecting(ctx, exec, query, student.ErrNotFound); err != nil {
		if err == student.ErrNotFound {
			return student.Student{}, err
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return s, nil
}

// DeleteStudent also deletes the student's grades (ON DELETE CASCADE).
func (repo studentRepository) DeleteStudent(ctx context.Context, id int64, exec ...core.DBExecutor) error {
	query := psql.Delete(studentTable).Where(sq.Eq{"id": id})

	if err := repo.execAffecting(ctx, exec, query, student.ErrNotFound); err != nil {
		if err == student.ErrNotFound {
			return err
		}
		return errors.Wrap(err, "deleting student")
	}
	return nil
}
