package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type (
	// DBExecutor is satisfied by *sqlx.DB, *sqlx.Conn and *sqlx.Tx.
	DBExecutor interface {
		sqlx.QueryerContext
		sqlx.ExecerContext
	}

	// ConnPool hands out dedicated connections, eg. one per HTTP request.
	ConnPool interface {
		Connx(ctx context.Context) (*sqlx.Conn, error)
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) Direction() string {
	if ord.Ascending {
		return "ASC"
	}
	return "DESC"
}

func (ord DBOrdering) String() string {
	return ord.Field + " " + ord.Direction()
}

// Asc and Desc are shorthands for building orderings.
func Asc(field string) DBOrdering  { return DBOrdering{Field: field, Ascending: true} }
func Desc(field string) DBOrdering { return DBOrdering{Field: field} }

// ParseOrdering parses a comma separated list of fields; a leading "-" means descending.
func ParseOrdering(s string) []DBOrdering {
	var orderings []DBOrdering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		orderings = append(orderings, DBOrdering{Field: field, Ascending: !descending})
	}
	return orderings
}

// CheckOrdering returns an error if any ordering field is not in allowed.
func CheckOrdering(ordering []DBOrdering, allowed ...string) error {
	for _, ord := range ordering {
		var ok bool
		for _, field := range allowed {
			if ord.Field == field {
				ok = true
				break
			}
		}
		if !ok {
			return NewValidationError(
				fmt.Errorf("unknown ordering field %q", ord.Field),
				FieldError{Field: "ordering", Error: fmt.Sprintf("cannot order by %q", ord.Field)},
			)
		}
	}
	return nil
}
