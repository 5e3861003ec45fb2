package inmemdb

import (
	"strings"
	"sync"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

// DB is an in-memory stand-in for the gradebook database.
// Repositories sharing a DB see each other's writes; the exec arguments are ignored.
type DB struct {
	mutex sync.RWMutex

	students    map[int64]*student.Student
	assignments map[int64]*assignment.Assignment
	grades      map[int64]*grade.Grade

	studentSeq, assignmentSeq, gradeSeq int64
}

func NewDB() *DB {
	return &DB{
		students:    make(map[int64]*student.Student),
		assignments: make(map[int64]*assignment.Assignment),
		grades:      make(map[int64]*grade.Grade),
	}
}

// deleteGrades removes the grades matching match; caller must hold the write lock.
func (db *DB) deleteGrades(match func(g *grade.Grade) bool) {
	for id, g := range db.grades {
		if match(g) {
			delete(db.grades, id)
		}
	}
}

// comparator compares two rows on one field.
type comparator func(field string) int

// compareOrdered walks ordering until a field differs. NULLs sort as the greatest value, like postgres.
func compareOrdered(ordering []core.DBOrdering, cmp comparator) int {
	for _, ord := range ordering {
		c := cmp(ord.Field)
		if c == 0 {
			continue
		}
		if !ord.Ascending {
			c = -c
		}
		return c
	}
	return 0
}

func compareStrings(a, b string) int { return strings.Compare(a, b) }

func compareInt64s(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareBools(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// compareNulls handles the cases where at least one side is NULL; ok is false when neither is.
func compareNulls(aValid, bValid bool) (c int, ok bool) {
	switch {
	case aValid && bValid:
		return 0, false
	case !aValid && !bValid:
		return 0, true
	case !aValid:
		return 1, true
	}
	return -1, true
}
