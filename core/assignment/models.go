package assignment

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gradebook/core"
)

const DateLayout = "2006-01-02"

// ordering fields
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldDueDate  = "due_date"
	FieldPoints   = "points"
	FieldIsPublic = "is_public"
)

var (
	OrderFields = []string{FieldID, FieldName, FieldDueDate, FieldPoints, FieldIsPublic}

	// DefaultOrdering sorts by due date (undated last), then creation.
	DefaultOrdering = []core.DBOrdering{core.Asc(FieldDueDate), core.Asc(FieldID)}
)

type Assignment struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Comment     string    `db:"comment" json:"comment"`
	DueDate     null.Time `db:"due_date" json:"due_date"`
	Points      null.Int  `db:"points" json:"points"` // max score
	IsPublic    bool      `db:"is_public" json:"is_public"`
}

func (a Assignment) IsNew() bool { return a.ID == 0 }

// DueDateString returns the due date as YYYY-MM-DD, or "" if unset.
func (a Assignment) DueDateString() string {
	if !a.DueDate.Valid {
		return ""
	}
	return a.DueDate.Time.Format(DateLayout)
}

// Form contains the information submitted to create or update an Assignment.
// IsPublic follows checkbox semantics: present and truthy means true.
type Form struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	Comment     string `form:"comment"`
	DueDate     string `form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Points      string `form:"points" validate:"omitempty,number,int32"`
	IsPublic    string `form:"is_public"`
}

func NewForm(a Assignment) Form {
	f := Form{
		Name:        a.Name,
		Description: a.Description,
		Comment:     a.Comment,
		DueDate:     a.DueDateString(),
	}
	if a.Points.Valid {
		f.Points = strconv.Itoa(a.Points.Int)
	}
	if a.IsPublic {
		f.IsPublic = "on"
	}
	return f
}

func (f *Form) Validate(validate *validator.Validate) error {
	f.Name = core.CleanString(f.Name)
	f.Description = core.CleanString(f.Description)
	f.Comment = core.CleanString(f.Comment)
	f.DueDate = core.CleanString(f.DueDate)
	f.Points = core.CleanString(f.Points)
	f.IsPublic = core.CleanString(f.IsPublic, true /* lower */)
	return validate.Struct(f)
}

// Public reports whether the is_public checkbox was ticked.
func (f Form) Public() bool {
	switch f.IsPublic {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// Apply copies the form values into a; f must have been validated.
func (f Form) Apply(a *Assignment) {
	a.Name = f.Name
	a.Description = f.Description
	a.Comment = f.Comment
	a.IsPublic = f.Public()
	a.DueDate = null.Time{}
	if due, err := time.Parse(DateLayout, f.DueDate); err == nil {
		a.DueDate = null.TimeFrom(due)
	}
	a.Points = null.Int{}
	if pts, err := core.ParseInt32(f.Points); err == nil {
		a.Points = null.IntFrom(pts)
	}
}
