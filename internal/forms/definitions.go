package forms

import (
	"time"

	"github.com/meur/harborline/internal/models"
)

// Field kinds are rendering hints only; they are never enforced.
const (
	KindText     = "text"
	KindEmail    = "email"
	KindTextarea = "textarea"
	KindSelect   = "select"
	KindURL      = "url"
)

// Field describes one input of a form.
type Field struct {
	Name     string   `json:"name"`
	Required bool     `json:"required"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
}

// Values holds the current field values of a form keyed by field name.
type Values map[string]string

// Definition describes a submission form and how its values become a record.
type Definition[T models.Record] struct {
	Name       string
	Collection string
	Fields     []Field
	Build      func(id string, values Values, at time.Time) T
}

// Form names.
const (
	BugReportFormName = "bugreport"
	ContactFormName   = "contact"
)

// BugReportForm returns the bug and violation report form.
func BugReportForm() Definition[models.BugReport] {
	return Definition[models.BugReport]{
		Name:       BugReportFormName,
		Collection: models.CollectionBugReports,
		Fields: []Field{
			{Name: "reporterName", Required: true, Kind: KindText},
			{Name: "reporterContact", Required: true, Kind: KindText},
			{Name: "reportType", Required: true, Kind: KindSelect, Options: models.ReportTypes},
			{Name: "title", Required: true, Kind: KindText},
			{Name: "description", Required: true, Kind: KindTextarea},
			{Name: "screenshot", Kind: KindURL},
		},
		Build: func(id string, v Values, at time.Time) models.BugReport {
			return models.BugReport{
				ID:              id,
				ReporterName:    v["reporterName"],
				ReporterContact: v["reporterContact"],
				ReportType:      v["reportType"],
				Title:           v["title"],
				Description:     v["description"],
				Screenshot:      v["screenshot"],
				SubmissionDate:  at,
			}
		},
	}
}

// ContactForm returns the general contact form.
func ContactForm() Definition[models.ContactSubmission] {
	return Definition[models.ContactSubmission]{
		Name:       ContactFormName,
		Collection: models.CollectionContactSubmissions,
		Fields: []Field{
			{Name: "senderName", Required: true, Kind: KindText},
			{Name: "senderEmail", Required: true, Kind: KindEmail},
			{Name: "subject", Required: true, Kind: KindText},
			{Name: "message", Required: true, Kind: KindTextarea},
		},
		Build: func(id string, v Values, at time.Time) models.ContactSubmission {
			return models.ContactSubmission{
				ID:             id,
				SenderName:     v["senderName"],
				SenderEmail:    v["senderEmail"],
				Subject:        v["subject"],
				Message:        v["message"],
				SubmissionDate: at,
			}
		},
	}
}
