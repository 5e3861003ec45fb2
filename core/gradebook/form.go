package gradebook

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/student"
)

type (
	// GradeEntry is what was submitted for one student on the bulk grade form.
	GradeEntry struct {
		Points  null.Int // null when blank or not an integer
		Comment string
	}

	// GradeEntries maps student ids to their submitted entry.
	GradeEntries map[int64]GradeEntry
)

// FieldNames returns the names of the form fields holding a student's points and comment.
func FieldNames(studentID int64) (points, comment string) {
	prefix := "student_" + strconv.FormatInt(studentID, 10)
	return prefix + "_points", prefix + "_comment"
}

// ParseGradeForm reads the entries of the roster's students from a submitted form.
// Students missing either field (eg. added after the form was rendered) are left out.
func ParseGradeForm(roster []student.Student, form url.Values) GradeEntries {
	entries := make(GradeEntries, len(roster))
	for _, s := range roster {
		pointsField, commentField := FieldNames(s.ID)
		points, ok := formValue(form, pointsField)
		if !ok {
			continue
		}
		comment, ok := formValue(form, commentField)
		if !ok {
			continue
		}
		entries[s.ID] = GradeEntry{
			Points:  parsePoints(points),
			Comment: strings.TrimSpace(comment),
		}
	}
	return entries
}

func formValue(form url.Values, key string) (string, bool) {
	vs, ok := form[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func parsePoints(s string) null.Int {
	pts, err := core.ParseInt32(s)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(pts)
}
