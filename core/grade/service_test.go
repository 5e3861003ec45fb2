package grade_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
	inmemdb "github.com/trezcool/gradebook/storage/database/inmem"
	"github.com/trezcool/gradebook/testutil"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.NewDB()
	students := inmemdb.NewStudentRepository(db)
	assignments := inmemdb.NewAssignmentRepository(db)
	svc := grade.NewService(inmemdb.NewGradeRepository(db))

	ada := testutil.CreateStudent(t, students, "Ada", "Lovelace", "countess")
	alan := testutil.CreateStudent(t, students, "Alan", "Turing", "enigma")
	essay := testutil.CreateAssignment(t, assignments, "Essay", 10, true)
	quiz := testutil.CreateAssignment(t, assignments, "Quiz", 5, false)

	g, err := svc.Save(ctx, grade.Grade{StudentID: ada.ID, AssignmentID: essay.ID, Points: null.IntFrom(8)})
	require.NoError(t, err)
	_, err = svc.Save(ctx, grade.Grade{StudentID: ada.ID, AssignmentID: quiz.ID})
	require.NoError(t, err)
	_, err = svc.Save(ctx, grade.Grade{StudentID: alan.ID, AssignmentID: essay.ID, Comment: "late"})
	require.NoError(t, err)

	t.Run("one grade per pair", func(t *testing.T) {
		_, err := svc.Save(ctx, grade.Grade{StudentID: ada.ID, AssignmentID: essay.ID})
		assert.Equal(t, grade.ErrGradeExists, err)
	})

	t.Run("owners required", func(t *testing.T) {
		_, err := svc.Save(ctx, grade.Grade{StudentID: ada.ID})
		assert.Error(t, err)
	})

	t.Run("queries", func(t *testing.T) {
		all, err := svc.All(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		forAda, err := svc.ForStudent(ctx, ada.ID)
		require.NoError(t, err)
		assert.Len(t, forAda, 2)

		forEssay, err := svc.ForAssignment(ctx, essay.ID)
		require.NoError(t, err)
		assert.Len(t, forEssay, 2)

		found, err := svc.Find(ctx, ada.ID, essay.ID)
		require.NoError(t, err)
		assert.Equal(t, g, found)

		_, err = svc.Find(ctx, alan.ID, quiz.ID)
		assert.Equal(t, grade.ErrNotFound, err)
	})

	t.Run("update in place", func(t *testing.T) {
		g.Points = null.Int{}
		g.Comment = "redo"
		_, err := svc.Save(ctx, g)
		require.NoError(t, err)

		found, err := svc.Find(ctx, ada.ID, essay.ID)
		require.NoError(t, err)
		assert.Equal(t, g, found)
	})
}

func TestGrade_points(t *testing.T) {
	assert.Equal(t, 0, grade.Grade{}.PointsOrZero())
	assert.Equal(t, "", grade.Grade{}.PointsString())
	assert.Equal(t, 7, grade.Grade{Points: null.IntFrom(7)}.PointsOrZero())
	assert.Equal(t, "7", grade.Grade{Points: null.IntFrom(7)}.PointsString())
}

// duplicatingRepo returns every grade twice, as if the (student, assignment) unique constraint was lost.
type duplicatingRepo struct {
	grade.Repository
}

func (repo *duplicatingRepo) QueryGrades(ctx context.Context, filter grade.Filter, exec ...core.DBExecutor) ([]grade.Grade, error) {
	grades, err := repo.Repository.QueryGrades(ctx, filter, exec...)
	if err != nil || len(grades) == 0 {
		return grades, err
	}
	dup := grades[0]
	dup.ID += 100
	return append(grades, dup), nil
}

func TestService_brokenIntegrity(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.NewDB()
	students := inmemdb.NewStudentRepository(db)
	assignments := inmemdb.NewAssignmentRepository(db)
	repo := inmemdb.NewGradeRepository(db)
	svc := grade.NewService(&duplicatingRepo{Repository: repo})

	ada := testutil.CreateStudent(t, students, "Ada", "Lovelace", "countess")
	alan := testutil.CreateStudent(t, students, "Alan", "Turing", "enigma")
	essay := testutil.CreateAssignment(t, assignments, "Essay", 10, true)
	testutil.CreateGrade(t, repo, ada, essay, 8, "")

	queries := map[string]func() error{
		"all":            func() error { _, err := svc.All(ctx); return err },
		"for student":    func() error { _, err := svc.ForStudent(ctx, ada.ID); return err },
		"for assignment": func() error { _, err := svc.ForAssignment(ctx, essay.ID); return err },
		"find":           func() error { _, err := svc.Find(ctx, ada.ID, essay.ID); return err },
	}
	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			err := query()
			require.Error(t, err)
			assert.True(t, core.IsShutdown(err), "error = %v", err)
			assert.Contains(t, err.Error(), "both belong to student 1 on assignment 1")
		})
	}

	t.Run("no grades", func(t *testing.T) {
		grades, err := svc.ForStudent(ctx, alan.ID)
		assert.NoError(t, err)
		assert.Empty(t, grades)
	})
}
