package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/storage/database"
)

const testDBURLEnv = "TEST_DATABASE_URL"

// PrepareDB opens the postgres database at TEST_DATABASE_URL, migrates it and empties its tables.
// The test is skipped when the variable is not set.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	url := os.Getenv(testDBURLEnv)
	if url == "" {
		t.Skipf("%s not set", testDBURLEnv)
	}
	db, err := database.OpenURL(url)
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db.DB); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	if _, err = db.Exec("TRUNCATE grade, assignment, student RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateStudent(t *testing.T, repo student.Repository, first, last, alias string) student.Student {
	t.Helper()
	s, err := repo.CreateStudent(context.Background(), student.Student{
		FirstName: first,
		LastName:  last,
		Alias:     alias,
		Email:     alias + "@school.test",
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateAssignment(t *testing.T, repo assignment.Repository, name string, points int, isPublic bool) assignment.Assignment {
	t.Helper()
	a, err := repo.CreateAssignment(context.Background(), assignment.Assignment{
		Name:     name,
		Points:   null.IntFrom(points),
		IsPublic: isPublic,
	})
	if err != nil {
		t.Fatalf("CreateAssignment() failed: %v", err)
	}
	return a
}

func CreateGrade(t *testing.T, repo grade.Repository, s student.Student, a assignment.Assignment, points int, comment string) grade.Grade {
	t.Helper()
	g, err := repo.CreateGrade(context.Background(), grade.Grade{
		StudentID:    s.ID,
		AssignmentID: a.ID,
		Points:       null.IntFrom(points),
		Comment:      comment,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}
