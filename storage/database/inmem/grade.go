package inmemdb

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryGrades(_ context.Context, filter grade.Filter, _ ...core.DBExecutor) ([]grade.Grade, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	grades := make([]grade.Grade, 0)
	for _, g := range repo.db.grades {
		if filter.StudentID != 0 && g.StudentID != filter.StudentID {
			continue
		}
		if filter.AssignmentID != 0 && g.AssignmentID != filter.AssignmentID {
			continue
		}
		grades = append(grades, *g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].ID < grades[j].ID })
	return grades, nil
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade, _ ...core.DBExecutor) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[g.StudentID]; !ok {
		return grade.Grade{}, errors.Errorf("student %d does not exist", g.StudentID)
	}
	if _, ok := repo.db.assignments[g.AssignmentID]; !ok {
		return grade.Grade{}, errors.Errorf("assignment %d does not exist", g.AssignmentID)
	}
	for _, other := range repo.db.grades {
		if other.StudentID == g.StudentID && other.AssignmentID == g.AssignmentID {
			return grade.Grade{}, grade.ErrGradeExists
		}
	}

	repo.db.gradeSeq++
	g.ID = repo.db.gradeSeq
	repo.db.grades[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, g grade.Grade, _ ...core.DBExecutor) (grade.Grade, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.grades[g.ID]
	if !ok {
		return grade.Grade{}, grade.ErrNotFound
	}
	// the owning student and assignment never change
	orig.Points = g.Points
	orig.Comment = g.Comment
	return *orig, nil
}
