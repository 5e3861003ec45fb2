package grade

import (
	"context"

	"github.com/kat-co/vala"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
)

var (
	ErrNotFound    = errors.New("grade not found")
	ErrGradeExists = errors.New("a grade already exists for this student and assignment")
)

type (
	// Filter selects grades; zero fields are ignored.
	Filter struct {
		StudentID    int64
		AssignmentID int64
	}

	Repository interface {
		QueryGrades(ctx context.Context, filter Filter, exec ...core.DBExecutor) ([]Grade, error)
		CreateGrade(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error)
	}

	Service interface {
		All(ctx context.Context, exec ...core.DBExecutor) ([]Grade, error)
		ForStudent(ctx context.Context, studentID int64, exec ...core.DBExecutor) ([]Grade, error)
		ForAssignment(ctx context.Context, assignmentID int64, exec ...core.DBExecutor) ([]Grade, error)
		// Find returns the grade of a student on an assignment, or ErrNotFound.
		Find(ctx context.Context, studentID, assignmentID int64, exec ...core.DBExecutor) (Grade, error)
		// Save inserts g if it is new, else updates it in place.
		Save(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error)
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

func (svc *service) All(ctx context.Context, exec ...core.DBExecutor) ([]Grade, error) {
	return svc.query(ctx, Filter{}, exec...)
}

func (svc *service) ForStudent(ctx context.Context, studentID int64, exec ...core.DBExecutor) ([]Grade, error) {
	return svc.query(ctx, Filter{StudentID: studentID}, exec...)
}

func (svc *service) ForAssignment(ctx context.Context, assignmentID int64, exec ...core.DBExecutor) ([]Grade, error) {
	return svc.query(ctx, Filter{AssignmentID: assignmentID}, exec...)
}

func (svc *service) Find(ctx context.Context, studentID, assignmentID int64, exec ...core.DBExecutor) (Grade, error) {
	grades, err := svc.query(ctx, Filter{StudentID: studentID, AssignmentID: assignmentID}, exec...)
	if err != nil {
		return Grade{}, err
	}
	if len(grades) == 0 {
		return Grade{}, ErrNotFound
	}
	return grades[0], nil
}

// query loads grades and fails with a core shutdown error when two of them share a student and an assignment.
func (svc *service) query(ctx context.Context, filter Filter, exec ...core.DBExecutor) ([]Grade, error) {
	grades, err := svc.repo.QueryGrades(ctx, filter, exec...)
	if err != nil {
		return nil, err
	}
	type pair struct{ studentID, assignmentID int64 }
	seen := make(map[pair]int64, len(grades))
	for _, g := range grades {
		p := pair{g.StudentID, g.AssignmentID}
		if id, ok := seen[p]; ok {
			return nil, core.NewShutdownError(
				"integrity issue: grades %d and %d both belong to student %d on assignment %d",
				id, g.ID, g.StudentID, g.AssignmentID,
			)
		}
		seen[p] = g.ID
	}
	return grades, nil
}

func (svc *service) Save(ctx context.Context, g Grade, exec ...core.DBExecutor) (Grade, error) {
	if g.StudentID == 0 || g.AssignmentID == 0 {
		return Grade{}, errors.New("grade must belong to a student and an assignment")
	}
	if g.IsNew() {
		return svc.repo.CreateGrade(ctx, g, exec...)
	}
	return svc.repo.UpdateGrade(ctx, g, exec...)
}
