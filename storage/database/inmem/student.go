package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) *studentRepository {
	return &studentRepository{db: db}
}

func compareStudents(a, b student.Student) comparator {
	return func(field string) int {
		switch field {
		case student.FieldFirstName:
			return compareStrings(a.FirstName, b.FirstName)
		case student.FieldLastName:
			return compareStrings(a.LastName, b.LastName)
		case student.FieldAlias:
			return compareStrings(a.Alias, b.Alias)
		case student.FieldEmail:
			return compareStrings(a.Email, b.Email)
		case student.FieldGradYear:
			if c, ok := compareNulls(a.GradYear.Valid, b.GradYear.Valid); ok {
				return c
			}
			return compareInt64s(int64(a.GradYear.Int), int64(b.GradYear.Int))
		}
		return compareInt64s(a.ID, b.ID)
	}
}

func (repo *studentRepository) QueryStudents(_ context.Context, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for _, s := range repo.db.students {
		students = append(students, *s)
	}
	sort.SliceStable(students, func(i, j int) bool {
		return compareOrdered(ordering, compareStudents(students[i], students[j])) < 0
	})
	return students, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id int64, _ ...core.DBExecutor) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.students[id]; ok {
		return *s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student, _ ...core.DBExecutor) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.studentSeq++
	s.ID = repo.db.studentSeq
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student, _ ...core.DBExecutor) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[s.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.students[s.ID] = &s
	return s, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int64, _ ...core.DBExecutor) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[id]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.students, id)
	repo.db.deleteGrades(func(g *grade.Grade) bool { return g.StudentID == id })
	return nil
}
