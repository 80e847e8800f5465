package http

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/stempeluhr/internal/application"
	"github.com/example/stempeluhr/internal/persistence"
)

// exportHeader is the fixed column row shared by both export formats. The
// column order is (recorded_at, note, kind, clock_id).
var exportHeader = []string{"UTC", "Bemerkung", "Stempel", "Stempeluhr"}

// ExportHandler serves the owner's ledger as CSV or TSV, newest first.
type ExportHandler struct {
	ledger    ledgerService
	responder responder
	logger    *slog.Logger
}

// NewExportHandler constructs an ExportHandler.
func NewExportHandler(ledger ledgerService, logger *slog.Logger) *ExportHandler {
	base := defaultLogger(logger)
	return &ExportHandler{ledger: ledger, responder: newResponder(base), logger: base}
}

// ExportCSV writes the ledger as comma-separated values with CRLF line
// endings.
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	events, ok := h.listForRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")

	writer := csv.NewWriter(w)
	writer.UseCRLF = true

	records := [][]string{exportHeader}
	for _, event := range events {
		records = append(records, exportColumns(event))
	}

	if err := writer.WriteAll(records); err != nil {
		h.log(r.Context(), "ExportCSV").ErrorContext(r.Context(), "failed to write csv", "error", err)
	}
}

// ExportTSV writes the ledger as tab-separated values. Embedded tabs in any
// field are replaced by four spaces so the column structure survives; lines
// end with CRLF.
func (h *ExportHandler) ExportTSV(w http.ResponseWriter, r *http.Request) {
	events, ok := h.listForRequest(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values; charset=utf-8")

	lines := []string{strings.Join(exportHeader, "\t")}
	for _, event := range events {
		columns := exportColumns(event)
		for i, column := range columns {
			columns[i] = strings.ReplaceAll(column, "\t", "    ")
		}
		lines = append(lines, strings.Join(columns, "\t"))
	}

	if _, err := w.Write([]byte(strings.Join(lines, "\r\n"))); err != nil {
		h.log(r.Context(), "ExportTSV").ErrorContext(r.Context(), "failed to write tsv", "error", err)
	}
}

func (h *ExportHandler) listForRequest(w http.ResponseWriter, r *http.Request) ([]application.PunchEvent, bool) {
	login, ok := LoginFromContext(r.Context())
	if !ok {
		h.responder.writeChallenge(r.Context(), w)
		return nil, false
	}

	events, err := h.ledger.List(r.Context(), login, application.OrderDescending)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return nil, false
	}

	return events, true
}

func (h *ExportHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "ExportHandler", operation, attrs...)
}

func exportColumns(event application.PunchEvent) []string {
	note := ""
	if event.Note != nil {
		note = *event.Note
	}
	return []string{
		event.RecordedAt.Format(persistence.TimestampLayout),
		note,
		event.Kind,
		event.ClockID,
	}
}
