package student

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

// ordering fields
const (
	FieldID        = "id"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldAlias     = "alias"
	FieldGradYear  = "grad_year"
	FieldEmail     = "email"
)

var (
	OrderFields = []string{FieldID, FieldFirstName, FieldLastName, FieldAlias, FieldGradYear, FieldEmail}

	DefaultOrdering = []core.DBOrdering{core.Asc(FieldLastName), core.Asc(FieldFirstName), core.Asc(FieldID)}
	AliasOrdering   = []core.DBOrdering{core.Asc(FieldAlias), core.Asc(FieldID)}
)

type Student struct {
	ID        int64    `db:"id" json:"id"`
	FirstName string   `db:"first_name" json:"first_name"`
	LastName  string   `db:"last_name" json:"last_name"`
	Alias     string   `db:"alias" json:"alias"` // shown on the public gradebook
	GradYear  null.Int `db:"grad_year" json:"grad_year"`
	Email     string   `db:"email" json:"email"`
}

func (s Student) IsNew() bool { return s.ID == 0 }

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// DisplayName is the alias, or the full name when no alias is set.
func (s Student) DisplayName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.FullName()
}

// Form contains the information submitted to create or update a Student.
type Form struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Alias     string `form:"alias"`
	GradYear  string `form:"grad_year" validate:"omitempty,number,int32"`
	Email     string `form:"email"`
}

func NewForm(s Student) Form {
	f := Form{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Alias:     s.Alias,
		Email:     s.Email,
	}
	if s.GradYear.Valid {
		f.GradYear = strconv.Itoa(s.GradYear.Int)
	}
	return f
}

func (f *Form) Validate(validate *validator.Validate) error {
	f.FirstName = core.CleanString(f.FirstName)
	f.LastName = core.CleanString(f.LastName)
	f.Alias = core.CleanString(f.Alias)
	f.GradYear = core.CleanString(f.GradYear)
	f.Email = core.CleanString(f.Email)
	return validate.Struct(f)
}

// Apply copies the form values into s; f must have been validated.
func (f Form) Apply(s *Student) {
	s.FirstName = f.FirstName
	s.LastName = f.LastName
	s.Alias = f.Alias
	s.Email = f.Email
	s.GradYear = null.Int{}
	if year, err := core.ParseInt32(f.GradYear); err == nil {
		s.GradYear = null.IntFrom(year)
	}
}
