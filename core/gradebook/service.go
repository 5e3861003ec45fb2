package gradebook

import (
	"context"
	"time"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

var nowFunc = time.Now // mockable

type (
	// UpdateSummary counts what happened to each student of a bulk grade update.
	UpdateSummary struct {
		Created int
		Updated int
		Skipped int
	}

	Service interface {
		Gradebook(ctx context.Context, exec ...core.DBExecutor) (Gradebook, error)
		PublicGradebook(ctx context.Context, exec ...core.DBExecutor) (PublicGradebook, error)
		AssignmentGrades(ctx context.Context, assignmentID int64, exec ...core.DBExecutor) (AssignmentGrades, error)
		StudentGrades(ctx context.Context, studentID int64, exec ...core.DBExecutor) (StudentGrades, error)
		// UpdateGrades creates or updates the grade of each student of view found in entries.
		// Students are saved one by one: a failure leaves the previous students' grades saved.
		UpdateGrades(ctx context.Context, view AssignmentGrades, entries GradeEntries, exec ...core.DBExecutor) (UpdateSummary, error)
	}

	service struct {
		students    student.Service
		assignments assignment.Service
		grades      grade.Service
	}
)

var _ Service = (*service)(nil)

func NewService(students student.Service, assignments assignment.Service, grades grade.Service) Service {
	vala.BeginValidation().Validate(
		vala.IsNotNil(students, "students"),
		vala.IsNotNil(assignments, "assignments"),
		vala.IsNotNil(grades, "grades"),
	).CheckAndPanic()
	return &service{students: students, assignments: assignments, grades: grades}
}

func (svc *service) Gradebook(ctx context.Context, exec ...core.DBExecutor) (Gradebook, error) {
	students, err := svc.students.All(ctx, nil, exec...)
	if err != nil {
		return Gradebook{}, errors.Wrap(err, "querying students")
	}
	assignments, err := svc.assignments.All(ctx, nil, exec...)
	if err != nil {
		return Gradebook{}, errors.Wrap(err, "querying assignments")
	}
	grades, err := svc.grades.All(ctx, exec...)
	if err != nil {
		return Gradebook{}, errors.Wrap(err, "querying grades")
	}
	return BuildGradebook(students, assignments, grades), nil
}

func (svc *service) PublicGradebook(ctx context.Context, exec ...core.DBExecutor) (PublicGradebook, error) {
	students, err := svc.students.All(ctx, student.AliasOrdering, exec...)
	if err != nil {
		return PublicGradebook{}, errors.Wrap(err, "querying students")
	}
	assignments, err := svc.assignments.Public(ctx, exec...)
	if err != nil {
		return PublicGradebook{}, errors.Wrap(err, "querying public assignments")
	}
	grades, err := svc.grades.All(ctx, exec...)
	if err != nil {
		return PublicGradebook{}, errors.Wrap(err, "querying grades")
	}
	return BuildPublicGradebook(students, assignments, grades, nowFunc()), nil
}

func (svc *service) AssignmentGrades(ctx context.Context, assignmentID int64, exec ...core.DBExecutor) (AssignmentGrades, error) {
	a, err := svc.assignments.Get(ctx, assignmentID, exec...)
	if err != nil {
		return AssignmentGrades{}, err
	}
	students, err := svc.students.All(ctx, nil, exec...)
	if err != nil {
		return AssignmentGrades{}, errors.Wrap(err, "querying students")
	}
	grades, err := svc.grades.ForAssignment(ctx, a.ID, exec...)
	if err != nil {
		return AssignmentGrades{}, errors.Wrap(err, "querying assignment grades")
	}
	return BuildAssignmentGrades(a, students, grades), nil
}

func (svc *service) StudentGrades(ctx context.Context, studentID int64, exec ...core.DBExecutor) (StudentGrades, error) {
	s, err := svc.students.Get(ctx, studentID, exec...)
	if err != nil {
		return StudentGrades{}, err
	}
	assignments, err := svc.assignments.All(ctx, nil, exec...)
	if err != nil {
		return StudentGrades{}, errors.Wrap(err, "querying assignments")
	}
	grades, err := svc.grades.ForStudent(ctx, s.ID, exec...)
	if err != nil {
		return StudentGrades{}, errors.Wrap(err, "querying student grades")
	}
	return BuildStudentGrades(s, assignments, grades), nil
}

func (svc *service) UpdateGrades(ctx context.Context, view AssignmentGrades, entries GradeEntries, exec ...core.DBExecutor) (UpdateSummary, error) {
	var summary UpdateSummary
	for _, row := range view.Rows {
		entry, ok := entries[row.Student.ID]
		if !ok {
			summary.Skipped++
			continue
		}

		var g grade.Grade
		if row.Grade != nil {
			g = *row.Grade
		} else {
			g = grade.Grade{StudentID: row.Student.ID, AssignmentID: view.Assignment.ID}
		}
		g.Points = entry.Points
		g.Comment = entry.Comment

		created, err := svc.saveGrade(ctx, g, exec...)
		if err != nil {
			return summary, errors.Wrapf(err, "saving grade of student %d", row.Student.ID)
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}
	return summary, nil
}

// saveGrade saves g; a grade created concurrently for the same pair is overwritten instead.
func (svc *service) saveGrade(ctx context.Context, g grade.Grade, exec ...core.DBExecutor) (created bool, err error) {
	_, err = svc.grades.Save(ctx, g, exec...)
	if err == nil {
		return g.IsNew(), nil
	}
	if !g.IsNew() || errors.Cause(err) != grade.ErrGradeExists {
		return false, err
	}

	existing, err := svc.grades.Find(ctx, g.StudentID, g.AssignmentID, exec...)
	if err != nil {
		return false, errors.Wrap(err, "finding existing grade")
	}
	g.ID = existing.ID
	if _, err = svc.grades.Save(ctx, g, exec...); err != nil {
		return false, err
	}
	return false, nil
}
