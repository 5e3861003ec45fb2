package gradebook

import (
	"time"

	"github.com/trezcool/gradebook/core/assignment"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

type (
	// Gradebook is the full grade matrix: one row per student, one column per assignment.
	Gradebook struct {
		Assignments []assignment.Assignment
		Rows        []GradebookRow
	}

	GradebookRow struct {
		Student student.Student
		// Grades is aligned with Gradebook.Assignments; nil where the student has no grade.
		Grades []*grade.Grade
	}

	// PublicGradebook only shows public assignments, with students ordered by alias.
	PublicGradebook struct {
		Assignments []assignment.Assignment
		Rows        []PublicGradebookRow
		MaxTotal    int
		Now         time.Time
	}

	PublicGradebookRow struct {
		Student student.Student
		// Points is aligned with PublicGradebook.Assignments; ungraded counts as 0.
		Points               []int
		PointsByAssignmentID map[int64]int
		Total                int
		// Grades holds all the student's grades, public or not.
		Grades []grade.Grade
		// HasComments is true if any of Grades has a comment.
		HasComments bool
		// Comments only holds the comments left on public assignments.
		Comments []PublicComment
	}

	PublicComment struct {
		Assignment assignment.Assignment
		Comment    string
	}

	// AssignmentGrades pairs every student with their grade (if any) on one assignment.
	AssignmentGrades struct {
		Assignment assignment.Assignment
		Rows       []StudentGrade
	}

	StudentGrade struct {
		Student      student.Student
		Grade        *grade.Grade
		PointsField  string
		CommentField string
	}

	// StudentGrades pairs every assignment with the student's grade (if any).
	StudentGrades struct {
		Student student.Student
		Rows    []AssignmentGrade
	}

	AssignmentGrade struct {
		Assignment assignment.Assignment
		Grade      *grade.Grade
	}
)

// Students returns the roster the view was built from.
func (ag AssignmentGrades) Students() []student.Student {
	students := make([]student.Student, 0, len(ag.Rows))
	for _, row := range ag.Rows {
		students = append(students, row.Student)
	}
	return students
}

func groupByStudent(grades []grade.Grade) map[int64][]grade.Grade {
	m := make(map[int64][]grade.Grade)
	for _, g := range grades {
		m[g.StudentID] = append(m[g.StudentID], g)
	}
	return m
}

// BuildGradebook aligns each student's grades with the order of assignments.
func BuildGradebook(students []student.Student, assignments []assignment.Assignment, grades []grade.Grade) Gradebook {
	gradesByStudent := groupByStudent(grades)

	rows := make([]GradebookRow, 0, len(students))
	for _, s := range students {
		byAssignment := grade.ByAssignment(gradesByStudent[s.ID])
		row := GradebookRow{Student: s, Grades: make([]*grade.Grade, len(assignments))}
		for i, a := range assignments {
			if g, ok := byAssignment[a.ID]; ok {
				g := g
				row.Grades[i] = &g
			}
		}
		rows = append(rows, row)
	}
	return Gradebook{Assignments: assignments, Rows: rows}
}

// HasComments reports whether any student has a comment, ie. whether the comments column is shown.
func (pg PublicGradebook) HasComments() bool {
	for _, row := range pg.Rows {
		if row.HasComments {
			return true
		}
	}
	return false
}

// BuildPublicGradebook keeps the public assignments only; students keep their given order.
func BuildPublicGradebook(students []student.Student, assignments []assignment.Assignment, grades []grade.Grade, now time.Time) PublicGradebook {
	public := make([]assignment.Assignment, 0, len(assignments))
	var maxTotal int
	for _, a := range assignments {
		if a.IsPublic {
			public = append(public, a)
			if a.Points.Valid {
				maxTotal += a.Points.Int
			}
		}
	}

	gradesByStudent := groupByStudent(grades)

	rows := make([]PublicGradebookRow, 0, len(students))
	for _, s := range students {
		own := gradesByStudent[s.ID]
		byAssignment := grade.ByAssignment(own)
		row := PublicGradebookRow{
			Student:              s,
			Points:               make([]int, len(public)),
			PointsByAssignmentID: make(map[int64]int, len(public)),
			Grades:               own,
		}
		for i, a := range public {
			var pts int
			if g, ok := byAssignment[a.ID]; ok {
				pts = g.PointsOrZero()
				if g.Comment != "" {
					row.Comments = append(row.Comments, PublicComment{Assignment: a, Comment: g.Comment})
				}
			}
			row.Points[i] = pts
			row.PointsByAssignmentID[a.ID] = pts
			row.Total += pts
		}
		for _, g := range own {
			if g.Comment != "" {
				row.HasComments = true
				break
			}
		}
		rows = append(rows, row)
	}
	return PublicGradebook{Assignments: public, Rows: rows, MaxTotal: maxTotal, Now: now}
}

// BuildAssignmentGrades matches the assignment's grades to students by student id.
func BuildAssignmentGrades(a assignment.Assignment, students []student.Student, grades []grade.Grade) AssignmentGrades {
	byStudent := grade.ByStudent(grades)

	rows := make([]StudentGrade, 0, len(students))
	for _, s := range students {
		pointsField, commentField := FieldNames(s.ID)
		row := StudentGrade{Student: s, PointsField: pointsField, CommentField: commentField}
		if g, ok := byStudent[s.ID]; ok {
			g := g
			row.Grade = &g
		}
		rows = append(rows, row)
	}
	return AssignmentGrades{Assignment: a, Rows: rows}
}

func BuildStudentGrades(s student.Student, assignments []assignment.Assignment, grades []grade.Grade) StudentGrades {
	byAssignment := grade.ByAssignment(grades)

	rows := make([]AssignmentGrade, 0, len(assignments))
	for _, a := range assignments {
		row := AssignmentGrade{Assignment: a}
		if g, ok := byAssignment[a.ID]; ok {
			g := g
			row.Grade = &g
		}
		rows = append(rows, row)
	}
	return StudentGrades{Student: s, Rows: rows}
}
