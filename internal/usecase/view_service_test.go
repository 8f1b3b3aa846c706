package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/sport-search/internal/domain/view"
	"github.com/riskibarqy/sport-search/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/sport-search/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type searcherMock struct {
	mock.Mock
}

func (m *searcherMock) Search(ctx context.Context, sportID string, searchType view.SearchType, query string) (view.Result, error) {
	args := m.Called(ctx, sportID, searchType, query)
	return args.Get(0).(view.Result), args.Error(1)
}

func newViewServiceForTest(t *testing.T, searcher Searcher) *ViewService {
	t.Helper()
	return NewViewService(
		memory.NewViewRepository(),
		memory.NewSportRepository(memory.SeedSports()),
		searcher,
		logging.NewNop(),
		0,
	)
}

func TestViewService_GetView_CreatesDefaultSession(t *testing.T) {
	t.Parallel()

	service := newViewServiceForTest(t, &searcherMock{})

	state, err := service.GetView(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("get view: %v", err)
	}

	if state.SportID != memory.SportIDNHL {
		t.Fatalf("expected first catalog sport, got %s", state.SportID)
	}
	if state.Loading {
		t.Fatalf("expected idle view")
	}
	if state.Message != view.MessagePrompt {
		t.Fatalf("unexpected message: %q", state.Message)
	}
}

func TestViewService_SelectSport_UnknownSportFails(t *testing.T) {
	t.Parallel()

	service := newViewServiceForTest(t, &searcherMock{})

	_, err := service.SelectSport(context.Background(), "session-1", "cricket")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestViewService_SelectSport_ClearsResultsKeepsQueries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	searcher := &searcherMock{}
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchTeam, "Bruins").
		Return(view.Result{OK: true, Schedule: []view.ScheduleRow{{Title: "Game 1"}}}, nil).
		Once()
	service := newViewServiceForTest(t, searcher)

	if _, err := service.SetQuery(ctx, "session-1", "team", "Bruins"); err != nil {
		t.Fatalf("set query: %v", err)
	}
	state, err := service.Search(ctx, "session-1", "team")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(state.Schedule) != 1 {
		t.Fatalf("expected schedule rows before sport switch")
	}

	state, err = service.SelectSport(ctx, "session-1", memory.SportIDNBA)
	if err != nil {
		t.Fatalf("select sport: %v", err)
	}

	if state.SportID != memory.SportIDNBA {
		t.Fatalf("unexpected sport: %s", state.SportID)
	}
	if len(state.Schedule) != 0 || len(state.Stats) != 0 {
		t.Fatalf("expected results cleared on sport switch")
	}
	if state.TeamQuery != "Bruins" {
		t.Fatalf("expected team query to survive sport switch, got %q", state.TeamQuery)
	}
	if state.Message != view.MessagePrompt {
		t.Fatalf("unexpected message: %q", state.Message)
	}
}

func TestViewService_Search_UnknownTypeFails(t *testing.T) {
	t.Parallel()

	service := newViewServiceForTest(t, &searcherMock{})

	_, err := service.Search(context.Background(), "session-1", "referee")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestViewService_Search_FetchFailureKeepsPriorResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	searcher := &searcherMock{}
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchTeam, "Bruins").
		Return(view.Result{OK: true, Schedule: []view.ScheduleRow{{Title: "Game 1"}}}, nil).
		Once()
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchTeam, "Canadiens").
		Return(view.Result{}, errors.New("connection refused")).
		Once()
	service := newViewServiceForTest(t, searcher)

	if _, err := service.SetQuery(ctx, "session-1", "team", "Bruins"); err != nil {
		t.Fatalf("set query: %v", err)
	}
	if _, err := service.Search(ctx, "session-1", "team"); err != nil {
		t.Fatalf("search: %v", err)
	}

	if _, err := service.SetQuery(ctx, "session-1", "team", "Canadiens"); err != nil {
		t.Fatalf("set query: %v", err)
	}
	state, err := service.Search(ctx, "session-1", "team")
	if err != nil {
		t.Fatalf("search with failing fetch should not error the view: %v", err)
	}

	if state.Loading {
		t.Fatalf("expected loading cleared after failure")
	}
	if !strings.Contains(state.Message, "Search failed") || !strings.Contains(state.Message, "connection refused") {
		t.Fatalf("unexpected failure message: %q", state.Message)
	}
	if len(state.Schedule) != 1 || state.Schedule[0].Title != "Game 1" {
		t.Fatalf("expected prior results to survive the failure, got %+v", state.Schedule)
	}
}

func TestViewService_Search_EmptyLeagueQueryFallsBackToSport(t *testing.T) {
	t.Parallel()

	searcher := &searcherMock{}
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchLeague, memory.SportIDNHL).
		Return(view.Result{OK: false}, nil).
		Once()
	service := newViewServiceForTest(t, searcher)

	state, err := service.Search(context.Background(), "session-1", "league")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if state.Message != view.MessageNoResults {
		t.Fatalf("unexpected message: %q", state.Message)
	}
	searcher.AssertExpectations(t)
}

func TestViewService_Search_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	teamStarted := make(chan struct{})
	teamRelease := make(chan struct{})

	searcher := &searcherMock{}
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchTeam, "Bruins").
		Run(func(mock.Arguments) {
			close(teamStarted)
			<-teamRelease
		}).
		Return(view.Result{OK: true, Schedule: []view.ScheduleRow{{Title: "slow answer"}}}, nil).
		Once()
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchPlayer, "Orr").
		Return(view.Result{OK: true, Stats: []view.StatRow{{Name: "Bobby Orr"}}}, nil).
		Once()
	service := newViewServiceForTest(t, searcher)

	if _, err := service.SetQuery(ctx, "session-1", "team", "Bruins"); err != nil {
		t.Fatalf("set query: %v", err)
	}
	if _, err := service.SetQuery(ctx, "session-1", "player", "Orr"); err != nil {
		t.Fatalf("set query: %v", err)
	}

	teamDone := make(chan view.State, 1)
	go func() {
		state, err := service.Search(ctx, "session-1", "team")
		if err != nil {
			t.Errorf("team search: %v", err)
		}
		teamDone <- state
	}()

	<-teamStarted
	state, err := service.Search(ctx, "session-1", "player")
	if err != nil {
		t.Fatalf("player search: %v", err)
	}
	if state.Message != view.MessageResultsLoaded {
		t.Fatalf("unexpected message: %q", state.Message)
	}

	close(teamRelease)
	<-teamDone

	final, err := service.GetView(ctx, "session-1")
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	if final.Loading {
		t.Fatalf("expected settled view")
	}
	if len(final.Stats) != 1 || final.Stats[0].Name != "Bobby Orr" {
		t.Fatalf("expected the newer search to own the view, got %+v", final.Stats)
	}
	if len(final.Schedule) != 0 {
		t.Fatalf("expected stale schedule to be discarded, got %+v", final.Schedule)
	}
}

func TestViewService_SearchAll_CombinesAllTypes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	searcher := &searcherMock{}
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchTeam, "Bruins").
		Return(view.Result{OK: true, Schedule: []view.ScheduleRow{{Title: "Game 1"}}}, nil).
		Once()
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchPlayer, "Orr").
		Return(view.Result{}, errors.New("timeout")).
		Once()
	searcher.
		On("Search", mock.Anything, memory.SportIDNHL, view.SearchLeague, memory.SportIDNHL).
		Return(view.Result{OK: true, Stats: []view.StatRow{{Name: "Standings"}}}, nil).
		Once()
	service := newViewServiceForTest(t, searcher)

	if _, err := service.SetQuery(ctx, "session-1", "team", "Bruins"); err != nil {
		t.Fatalf("set query: %v", err)
	}
	if _, err := service.SetQuery(ctx, "session-1", "player", "Orr"); err != nil {
		t.Fatalf("set query: %v", err)
	}

	combined, err := service.SearchAll(ctx, "session-1")
	if err != nil {
		t.Fatalf("search all: %v", err)
	}

	if combined.SportID != memory.SportIDNHL {
		t.Fatalf("unexpected sport: %s", combined.SportID)
	}
	if len(combined.Results[view.SearchTeam].Schedule) != 1 {
		t.Fatalf("expected team schedule in combined result")
	}
	if len(combined.Results[view.SearchLeague].Stats) != 1 {
		t.Fatalf("expected league stats in combined result")
	}
	if _, ok := combined.Results[view.SearchPlayer]; ok {
		t.Fatalf("failed type should not carry a result")
	}
	if combined.Failures[view.SearchPlayer] != "timeout" {
		t.Fatalf("unexpected failure map: %+v", combined.Failures)
	}

	state, err := service.GetView(ctx, "session-1")
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	if state.Loading || len(state.Schedule) != 0 {
		t.Fatalf("combined search must not mutate the session view")
	}
	searcher.AssertExpectations(t)
}
