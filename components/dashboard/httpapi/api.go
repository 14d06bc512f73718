package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/goliatone/go-insights-dashboard/components/dashboard"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-insights-dashboard/components/dashboard/queries"
)

// Handlers exposes HTTP endpoints backed by an Executor. Path parameters are
// passed in by the host router. Mutations answer with the re-rendered page.
type Handlers struct {
	API Executor
}

func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request, sessionID string) {
	page, err := h.API.Page(r.Context(), queries.PageInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *Handlers) HandleSetTimeRange(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SetTimeRangeInput
	if !decode(w, r, &payload) {
		return
	}
	payload.SessionID = sessionID
	if err := h.API.SetTimeRange(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.HandlePage(w, r, sessionID)
}

func (h *Handlers) HandleSetActiveTab(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SetActiveTabInput
	if !decode(w, r, &payload) {
		return
	}
	payload.SessionID = sessionID
	if err := h.API.SetActiveTab(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.HandlePage(w, r, sessionID)
}

func (h *Handlers) HandleTriggerRefresh(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.API.TriggerRefresh(r.Context(), commands.TriggerRefreshInput{SessionID: sessionID}); err != nil {
		writeError(w, err)
		return
	}
	page, err := h.API.Page(r.Context(), queries.PageInput{SessionID: sessionID})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, page)
}

func (h *Handlers) HandleToggleDarkMode(w http.ResponseWriter, r *http.Request, sessionID string) {
	if err := h.API.ToggleDarkMode(r.Context(), commands.ToggleDarkModeInput{SessionID: sessionID}); err != nil {
		writeError(w, err)
		return
	}
	h.HandlePage(w, r, sessionID)
}

func (h *Handlers) HandleSelectNav(w http.ResponseWriter, r *http.Request, sessionID string) {
	var payload commands.SelectNavInput
	if !decode(w, r, &payload) {
		return
	}
	payload.SessionID = sessionID
	if err := h.API.SelectNav(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.HandlePage(w, r, sessionID)
}

// HandleCardAction forwards the raw JSON body as the card action payload.
func (h *Handlers) HandleCardAction(w http.ResponseWriter, r *http.Request, sessionID, cardID string) {
	var payload map[string]any
	if !decode(w, r, &payload) {
		return
	}
	input := commands.CardActionInput{SessionID: sessionID, CardID: dashboard.CardID(cardID), Payload: payload}
	if err := h.API.CardAction(r.Context(), input); err != nil {
		writeError(w, err)
		return
	}
	h.HandleCard(w, r, sessionID, cardID)
}

func (h *Handlers) HandleCard(w http.ResponseWriter, r *http.Request, sessionID, cardID string) {
	frame, err := h.API.Card(r.Context(), queries.CardInput{SessionID: sessionID, CardID: dashboard.CardID(cardID)})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, frame)
}

// HandleTooltip reads the hovered label from the "label" query parameter.
func (h *Handlers) HandleTooltip(w http.ResponseWriter, r *http.Request, sessionID, cardID string) {
	label := r.URL.Query().Get("label")
	if label == "" {
		http.Error(w, "label is required", http.StatusBadRequest)
		return
	}
	lines, err := h.API.Tooltip(r.Context(), queries.TooltipInput{
		SessionID: sessionID,
		CardID:    dashboard.CardID(cardID),
		Label:     label,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"card": cardID, "label": label, "lines": lines})
}

// HandleSearch reads the query text from the "q" query parameter.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request, sessionID string) {
	result, err := h.API.Search(r.Context(), queries.SearchInput{SessionID: sessionID, Query: r.URL.Query().Get("q")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	report, err := h.API.Metrics(r.Context(), queries.MetricsInput{Locale: r.URL.Query().Get("locale")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
