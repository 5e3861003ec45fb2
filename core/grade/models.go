package grade

import (
	"strconv"

	"github.com/volatiletech/null/v8"
)

// Grade is the score of one student on one assignment.
// There is at most one Grade per (StudentID, AssignmentID).
type Grade struct {
	ID           int64    `db:"id" json:"id"`
	StudentID    int64    `db:"student_id" json:"student_id"`
	AssignmentID int64    `db:"assignment_id" json:"assignment_id"`
	Points       null.Int `db:"points" json:"points"` // null means ungraded
	Comment      string   `db:"comment" json:"comment"`
}

func (g Grade) IsNew() bool { return g.ID == 0 }

// PointsOrZero returns the points, counting an ungraded grade as 0.
func (g Grade) PointsOrZero() int {
	if g.Points.Valid {
		return g.Points.Int
	}
	return 0
}

// PointsString returns the points, or "" when ungraded.
func (g Grade) PointsString() string {
	if !g.Points.Valid {
		return ""
	}
	return strconv.Itoa(g.Points.Int)
}

func ByAssignment(grades []Grade) map[int64]Grade {
	m := make(map[int64]Grade, len(grades))
	for _, g := range grades {
		m[g.AssignmentID] = g
	}
	return m
}

func ByStudent(grades []Grade) map[int64]Grade {
	m := make(map[int64]Grade, len(grades))
	for _, g := range grades {
		m[g.StudentID] = g
	}
	return m
}
