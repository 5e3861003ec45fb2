package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
)

type assignmentRepository struct {
	db *DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func compareAssignments(a, b assignment.Assignment) comparator {
	return func(field string) int {
		switch field {
		case assignment.FieldName:
			return compareStrings(a.Name, b.Name)
		case assignment.FieldIsPublic:
			return compareBools(a.IsPublic, b.IsPublic)
		case assignment.FieldPoints:
			if c, ok := compareNulls(a.Points.Valid, b.Points.Valid); ok {
				return c
			}
			return compareInt64s(int64(a.Points.Int), int64(b.Points.Int))
		case assignment.FieldDueDate:
			if c, ok := compareNulls(a.DueDate.Valid, b.DueDate.Valid); ok {
				return c
			}
			switch {
			case a.DueDate.Time.Before(b.DueDate.Time):
				return -1
			case a.DueDate.Time.After(b.DueDate.Time):
				return 1
			}
			return 0
		}
		return compareInt64s(a.ID, b.ID)
	}
}

func (repo *assignmentRepository) QueryAssignments(_ context.Context, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	assignments := make([]assignment.Assignment, 0, len(repo.db.assignments))
	for _, a := range repo.db.assignments {
		assignments = append(assignments, *a)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		return compareOrdered(ordering, compareAssignments(assignments[i], assignments[j])) < 0
	})
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignment(_ context.Context, id int64, _ ...core.DBExecutor) (assignment.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assignments[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment, _ ...core.DBExecutor) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.assignmentSeq++
	a.ID = repo.db.assignmentSeq
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, a assignment.Assignment, _ ...core.DBExecutor) (assignment.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, id int64, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return assignment.ErrNotFound
	}
	delete(repo.db.assignments, id)
	repo.db.deleteGrades(func(g *grade.Grade) bool { return g.AssignmentID == id })
	return nil
}
