package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sport-search/internal/domain/view"
	"github.com/riskibarqy/sport-search/internal/platform/id"
	"github.com/riskibarqy/sport-search/internal/usecase"
)

const sessionHeader = "X-Session-ID"

type Handler struct {
	sportService *usecase.SportService
	viewService  *usecase.ViewService
	idGenerator  id.Generator
	logger       *slog.Logger
	validator    *validator.Validate
}

func NewHandler(
	sportService *usecase.SportService,
	viewService *usecase.ViewService,
	idGenerator id.Generator,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if idGenerator == nil {
		idGenerator = id.NewUUIDGenerator()
	}

	return &Handler{
		sportService: sportService,
		viewService:  viewService,
		idGenerator:  idGenerator,
		logger:       logger,
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionID resolves the caller's session from the X-Session-ID header,
// minting a fresh one when absent. The resolved id is always echoed back so
// the page can persist it.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	sessionID := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sessionID == "" {
		sessionID = h.idGenerator.NewID()
	}
	w.Header().Set(sessionHeader, sessionID)
	return sessionID
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type sportDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type scheduleRowDTO struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

type statRowDTO struct {
	Name     string `json:"name"`
	Team     string `json:"team,omitempty"`
	Statline string `json:"statline"`
}

type viewStateDTO struct {
	SessionID   string           `json:"session_id"`
	SportID     string           `json:"sport_id"`
	TeamQuery   string           `json:"team_query"`
	PlayerQuery string           `json:"player_query"`
	LeagueQuery string           `json:"league_query"`
	Loading     bool             `json:"loading"`
	Message     string           `json:"message"`
	Schedule    []scheduleRowDTO `json:"schedule"`
	Stats       []statRowDTO     `json:"stats"`
}

type searchResultDTO struct {
	OK       bool             `json:"ok"`
	Schedule []scheduleRowDTO `json:"schedule"`
	Stats    []statRowDTO     `json:"stats"`
}

type combinedSearchDTO struct {
	SportID  string                     `json:"sport_id"`
	Results  map[string]searchResultDTO `json:"results"`
	Failures map[string]string          `json:"failures,omitempty"`
}

type selectSportRequest struct {
	SportID string `json:"sport_id" validate:"required,max=50"`
}

type setQueryRequest struct {
	SearchType string `json:"search_type" validate:"required,oneof=team player league"`
	Query      string `json:"query" validate:"max=200"`
}

type searchRequest struct {
	SearchType string `json:"search_type" validate:"required,oneof=team player league"`
}

func viewStateToDTO(state view.State) viewStateDTO {
	return viewStateDTO{
		SessionID:   state.SessionID,
		SportID:     state.SportID,
		TeamQuery:   state.TeamQuery,
		PlayerQuery: state.PlayerQuery,
		LeagueQuery: state.LeagueQuery,
		Loading:     state.Loading,
		Message:     state.Message,
		Schedule:    scheduleRowsToDTO(state.Schedule),
		Stats:       statRowsToDTO(state.Stats),
	}
}

func scheduleRowsToDTO(rows []view.ScheduleRow) []scheduleRowDTO {
	out := make([]scheduleRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduleRowDTO{Title: row.Title, Detail: row.Detail})
	}
	return out
}

func statRowsToDTO(rows []view.StatRow) []statRowDTO {
	out := make([]statRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, statRowDTO{Name: row.Name, Team: row.Team, Statline: row.Statline})
	}
	return out
}

func searchResultToDTO(result view.Result) searchResultDTO {
	return searchResultDTO{
		OK:       result.OK,
		Schedule: scheduleRowsToDTO(result.Schedule),
		Stats:    statRowsToDTO(result.Stats),
	}
}
