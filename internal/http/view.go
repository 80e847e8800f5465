package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/example/stempeluhr/internal/application"
	"github.com/example/stempeluhr/internal/persistence"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// FormPage carries everything the punch form template needs. FormCheck is the
// rendered event count; the browser echoes it back on submit so the guarded
// append can detect punches recorded in between.
type FormPage struct {
	Login     string
	Clock     string
	FormCheck int
	Rows      []PunchRow
}

// PunchRow is one rendered ledger line.
type PunchRow struct {
	UTC   string
	Kind  string
	Clock string
	Note  string
}

// NewFormPage builds the template data for an owner's ledger view. The rows
// are expected newest first.
func NewFormPage(login, clock string, events []application.PunchEvent) FormPage {
	rows := make([]PunchRow, 0, len(events))
	for _, event := range events {
		note := ""
		if event.Note != nil {
			note = *event.Note
		}
		rows = append(rows, PunchRow{
			UTC:   event.RecordedAt.Format(persistence.TimestampLayout),
			Kind:  event.Kind,
			Clock: event.ClockID,
			Note:  note,
		})
	}
	return FormPage{
		Login:     login,
		Clock:     clock,
		FormCheck: len(events),
		Rows:      rows,
	}
}

// RenderForm writes the punch form page.
func RenderForm(w io.Writer, page FormPage) error {
	if err := formTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("failed to render form: %w", err)
	}
	return nil
}
