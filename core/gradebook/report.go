package gradebook

import (
	"net/mail"
	"strconv"
	"time"

	"github.com/trezcool/gradebook/core"
)

const reportTemplate = "grade_report"

type (
	ReportData struct {
		Name     string
		Lines    []ReportLine
		Comments []PublicComment
		Total    int
		MaxTotal int
		AsOf     time.Time
	}

	ReportLine struct {
		Assignment string
		Points     int
		MaxPoints  string
	}
)

// ReportMessages builds one grade report per student of pg who has an email address.
func ReportMessages(pg PublicGradebook) []*core.EmailMessage {
	messages := make([]*core.EmailMessage, 0, len(pg.Rows))
	for _, row := range pg.Rows {
		if row.Student.Email == "" {
			continue
		}
		data := ReportData{
			Name:     row.Student.FullName(),
			Lines:    make([]ReportLine, 0, len(pg.Assignments)),
			Comments: row.Comments,
			Total:    row.Total,
			MaxTotal: pg.MaxTotal,
			AsOf:     pg.Now,
		}
		for i, a := range pg.Assignments {
			line := ReportLine{Assignment: a.Name, Points: row.Points[i]}
			if a.Points.Valid {
				line.MaxPoints = strconv.Itoa(a.Points.Int)
			}
			data.Lines = append(data.Lines, line)
		}
		messages = append(messages, &core.EmailMessage{
			To:           []mail.Address{{Name: row.Student.FullName(), Address: row.Student.Email}},
			Subject:      "Your grades",
			TemplateName: reportTemplate,
			TemplateData: data,
		})
	}
	return messages
}
