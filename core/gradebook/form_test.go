package gradebook

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core/student"
)

func TestParseGradeForm(t *testing.T) {
	grace := student.Student{ID: 3, FirstName: "Grace"}
	roster := []student.Student{ada, alan, grace}

	form := url.Values{
		"student_1_points":  {"7 "},
		"student_1_comment": {" great job "},
		"student_2_points":  {"abc"},
		"student_2_comment": {""},
		"student_3_points":  {"4"}, // no comment field
		"student_4_points":  {"9"},
		"student_4_comment": {"not on the roster"},
	}

	assert.Equal(t, GradeEntries{
		1: {Points: null.IntFrom(7), Comment: "great job"},
		2: {Points: null.Int{}, Comment: ""},
	}, ParseGradeForm(roster, form))
}

func TestParseGradeForm_points(t *testing.T) {
	tests := []struct {
		value string
		want  null.Int
	}{
		{"", null.Int{}},
		{"  ", null.Int{}},
		{"12", null.IntFrom(12)},
		{" -3 ", null.IntFrom(-3)},
		{"7.5", null.Int{}},
		{"ten", null.Int{}},
		{"2147483647", null.IntFrom(2147483647)},
		{"3000000000", null.Int{}},
		{"-3000000000", null.Int{}},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			pointsField, commentField := FieldNames(ada.ID)
			entries := ParseGradeForm([]student.Student{ada}, url.Values{pointsField: {tt.value}, commentField: {""}})
			assert.Equal(t, tt.want, entries[ada.ID].Points)
		})
	}
}
