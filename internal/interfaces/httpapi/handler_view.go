package httpapi

import (
	"fmt"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/sport-search/internal/usecase"
)

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetView")
	defer span.End()

	sessionID := h.sessionID(w, r)
	state, err := h.viewService.GetView(ctx, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "get view failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, viewStateToDTO(state))
}

func (h *Handler) SelectSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectSport")
	defer span.End()

	sessionID := h.sessionID(w, r)

	var req selectSportRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.viewService.SelectSport(ctx, sessionID, req.SportID)
	if err != nil {
		h.logger.WarnContext(ctx, "select sport failed", "session_id", sessionID, "sport_id", req.SportID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, viewStateToDTO(state))
}

func (h *Handler) SetQuery(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetQuery")
	defer span.End()

	sessionID := h.sessionID(w, r)

	var req setQueryRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.viewService.SetQuery(ctx, sessionID, req.SearchType, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "set query failed", "session_id", sessionID, "search_type", req.SearchType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, viewStateToDTO(state))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Search")
	defer span.End()

	sessionID := h.sessionID(w, r)

	var req searchRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.viewService.Search(ctx, sessionID, req.SearchType)
	if err != nil {
		h.logger.WarnContext(ctx, "search failed", "session_id", sessionID, "search_type", req.SearchType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, viewStateToDTO(state))
}

func (h *Handler) SearchAll(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchAll")
	defer span.End()

	sessionID := h.sessionID(w, r)

	combined, err := h.viewService.SearchAll(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "search all failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := combinedSearchDTO{
		SportID:  combined.SportID,
		Results:  make(map[string]searchResultDTO, len(combined.Results)),
		Failures: make(map[string]string, len(combined.Failures)),
	}
	for searchType, result := range combined.Results {
		out.Results[string(searchType)] = searchResultToDTO(result)
	}
	for searchType, failure := range combined.Failures {
		out.Failures[string(searchType)] = failure
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
