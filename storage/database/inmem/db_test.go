package inmemdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewDB())

	for _, s := range []student.Student{
		{FirstName: "Ada", GradYear: null.IntFrom(2024)},
		{FirstName: "Alan"},
		{FirstName: "Grace", GradYear: null.IntFrom(2022)},
	} {
		_, err := repo.CreateStudent(ctx, s)
		require.NoError(t, err)
	}

	firstNames := func(ordering ...core.DBOrdering) []string {
		students, err := repo.QueryStudents(ctx, ordering)
		require.NoError(t, err)
		names := make([]string, 0, len(students))
		for _, s := range students {
			names = append(names, s.FirstName)
		}
		return names
	}

	assert.Equal(t, []string{"Grace", "Ada", "Alan"}, firstNames(core.Asc(student.FieldGradYear)))
	assert.Equal(t, []string{"Alan", "Ada", "Grace"}, firstNames(core.Desc(student.FieldGradYear)))
	assert.Equal(t, []string{"Grace", "Alan", "Ada"}, firstNames(core.Desc(student.FieldFirstName)))

	_, err := repo.UpdateStudent(ctx, student.Student{ID: 9})
	assert.Equal(t, student.ErrNotFound, err)
	_, err = repo.GetStudent(ctx, 9)
	assert.Equal(t, student.ErrNotFound, err)
}

func TestGradeRepository(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	students := NewStudentRepository(db)
	assignments := NewAssignmentRepository(db)
	grades := NewGradeRepository(db)

	s, err := students.CreateStudent(ctx, student.Student{FirstName: "Ada"})
	require.NoError(t, err)
	a, err := assignments.CreateAssignment(ctx, assignment.Assignment{Name: "Essay"})
	require.NoError(t, err)

	t.Run("owners must exist", func(t *testing.T) {
		_, err := grades.CreateGrade(ctx, grade.Grade{StudentID: 42, AssignmentID: a.ID})
		assert.Error(t, err)
		_, err = grades.CreateGrade(ctx, grade.Grade{StudentID: s.ID, AssignmentID: 42})
		assert.Error(t, err)
	})

	g, err := grades.CreateGrade(ctx, grade.Grade{StudentID: s.ID, AssignmentID: a.ID, Points: null.IntFrom(3)})
	require.NoError(t, err)

	t.Run("unique per pair", func(t *testing.T) {
		_, err := grades.CreateGrade(ctx, grade.Grade{StudentID: s.ID, AssignmentID: a.ID})
		assert.Equal(t, grade.ErrGradeExists, err)
	})

	t.Run("update keeps owners", func(t *testing.T) {
		updated, err := grades.UpdateGrade(ctx, grade.Grade{ID: g.ID, StudentID: 7, Comment: "ok"})
		require.NoError(t, err)
		assert.Equal(t, s.ID, updated.StudentID)
		assert.Equal(t, a.ID, updated.AssignmentID)
		assert.False(t, updated.Points.Valid)

		_, err = grades.UpdateGrade(ctx, grade.Grade{ID: 99})
		assert.Equal(t, grade.ErrNotFound, err)
	})

	t.Run("deleting an assignment cascades", func(t *testing.T) {
		require.NoError(t, assignments.DeleteAssignment(ctx, a.ID))
		remaining, err := grades.QueryGrades(ctx, grade.Filter{})
		require.NoError(t, err)
		assert.Empty(t, remaining)
		assert.Equal(t, assignment.ErrNotFound, assignments.DeleteAssignment(ctx, a.ID))
	})
}
