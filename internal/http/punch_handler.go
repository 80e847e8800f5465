package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/example/stempeluhr/internal/application"
)

type ledgerService interface {
	List(ctx context.Context, ownerLogin string, order application.Order) ([]application.PunchEvent, error)
	AppendGuarded(ctx context.Context, ownerLogin string, input application.PunchInput, expectedCount int) (application.PunchEvent, error)
}

// PunchHandler serves the rendered punch form and accepts punch submissions.
type PunchHandler struct {
	ledger       ledgerService
	defaultClock string
	responder    responder
	logger       *slog.Logger
}

// NewPunchHandler constructs a PunchHandler.
func NewPunchHandler(ledger ledgerService, defaultClock string, logger *slog.Logger) *PunchHandler {
	base := defaultLogger(logger)
	if defaultClock == "" {
		defaultClock = "Standard"
	}
	return &PunchHandler{
		ledger:       ledger,
		defaultClock: defaultClock,
		responder:    newResponder(base),
		logger:       base,
	}
}

func (h *PunchHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return handlerLogger(ctx, h.logger, "PunchHandler", operation, attrs...)
}

// Index redirects to the default clock's form.
func (h *PunchHandler) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/form/"+h.defaultClock+"/", http.StatusFound)
}

// ShowForm renders the owner's ledger, newest first, together with the punch
// form carrying the current count.
func (h *PunchHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	login, ok := LoginFromContext(r.Context())
	if !ok {
		h.responder.writeChallenge(r.Context(), w)
		return
	}
	clock := mux.Vars(r)["clock"]

	events, err := h.ledger.List(r.Context(), login, application.OrderDescending)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.renderPage(w, r, login, clock, events)
}

// SubmitPunch records a new punch guarded by the form_check count the client
// last saw. A stale count yields 409 without writing; the client must re-read
// and decide.
func (h *PunchHandler) SubmitPunch(w http.ResponseWriter, r *http.Request) {
	login, ok := LoginFromContext(r.Context())
	if !ok {
		h.responder.writeChallenge(r.Context(), w)
		return
	}
	clock := mux.Vars(r)["clock"]

	if err := r.ParseForm(); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	// Missing or malformed form_check parses as 0, like the original client.
	expectedCount, _ := strconv.Atoi(r.PostFormValue("form_check"))

	input := application.PunchInput{
		ClockID: clock,
		Kind:    r.PostFormValue("stempel"),
	}
	if note := strings.TrimSpace(r.PostFormValue("bemerkung")); note != "" {
		input.Note = &note
	}

	logger := h.log(r.Context(), "SubmitPunch", "login", login, "clock", clock)

	if _, err := h.ledger.AppendGuarded(r.Context(), login, input, expectedCount); err != nil {
		logger.WarnContext(r.Context(), "punch rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	events, err := h.ledger.List(r.Context(), login, application.OrderDescending)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.renderPage(w, r, login, clock, events)
}

func (h *PunchHandler) renderPage(w http.ResponseWriter, r *http.Request, login, clock string, events []application.PunchEvent) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderForm(w, NewFormPage(login, clock, events)); err != nil {
		h.log(r.Context(), "renderPage").ErrorContext(r.Context(), "failed to render form", "error", err)
	}
}
