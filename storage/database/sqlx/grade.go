package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

const gradeTable = "grade"

var gradeColumns = []string{"id", "student_id", "assignment_id", "points", "comment"}

type gradeRepository struct {
	repository
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(exec core.DBExecutor) *gradeRepository {
	return &gradeRepository{repository{exec: exec}}
}

func (repo gradeRepository) QueryGrades(ctx context.Context, filter grade.Filter, exec ...core.DBExecutor) ([]grade.Grade, error) {
	query := psql.Select(gradeColumns...).From(gradeTable).OrderBy("id ASC")
	if filter.StudentID != 0 {
		query = query.Where(sq.Eq{"student_id": filter.StudentID})
	}
	if filter.AssignmentID != 0 {
		query = query.Where(sq.Eq{"assignment_id": filter.AssignmentID})
	}

	grades := make([]grade.Grade, 0)
	if err := repo.selectAll(ctx, exec, &grades, query); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	return grades, nil
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade, exec ...core.DBExecutor) (grade.Grade, error) {
	query := psql.Insert(gradeTable).
		Columns("student_id", "assignment_id", "points", "comment").
		Values(g.StudentID, g.AssignmentID, g.Points, g.Comment).
		Suffix("RETURNING id")

	if err := repo.get(ctx, exec, &g.ID, query); err != nil {
		switch {
		case isUniqueViolation(err):
			return grade.Grade{}, grade.ErrGradeExists
		case isForeignKeyViolation(err):
			return grade.Grade{}, errors.Wrap(err, "grade student or assignment does not exist")
		}
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade, exec ...core.DBExecutor) (grade.Grade, error) {
	query := psql.Update(gradeTable).
		Set("points", g.Points).
		Set("comment", g.Comment).
		Where(sq.Eq{"id": g.ID})

	if err := repo.execAffecting(ctx, exec, query, grade.ErrNotFound); err != nil {
		if err == grade.ErrNotFound {
			return grade.Grade{}, err
		}
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	return g, nil
}
