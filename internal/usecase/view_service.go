package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	ants "github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/sport-search/internal/domain/sport"
	"github.com/riskibarqy/sport-search/internal/domain/view"
	"github.com/riskibarqy/sport-search/internal/platform/logging"
)

const defaultSearchWorkers = 3

// Searcher fetches projected search results from the scoreboard proxy.
type Searcher interface {
	Search(ctx context.Context, sportID string, searchType view.SearchType, query string) (view.Result, error)
}

// CombinedSearchResult is the outcome of fanning one query set out over all
// three search types at once. It does not touch the per-session view state.
type CombinedSearchResult struct {
	SportID  string
	Results  map[view.SearchType]view.Result
	Failures map[view.SearchType]string
}

type ViewService struct {
	viewRepo      view.Repository
	sportRepo     sport.Repository
	searcher      Searcher
	logger        *logging.Logger
	searchWorkers int

	sessionLocks sync.Map
}

func NewViewService(viewRepo view.Repository, sportRepo sport.Repository, searcher Searcher, logger *logging.Logger, searchWorkers int) *ViewService {
	if logger == nil {
		logger = logging.Default()
	}
	if searchWorkers <= 0 {
		searchWorkers = defaultSearchWorkers
	}

	return &ViewService{
		viewRepo:      viewRepo,
		sportRepo:     sportRepo,
		searcher:      searcher,
		logger:        logger,
		searchWorkers: searchWorkers,
	}
}

// GetView returns the session's view state, creating the default one on first
// contact: the first catalog sport selected, empty queries, the prompt shown.
func (s *ViewService) GetView(ctx context.Context, sessionID string) (view.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ViewService.GetView")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return view.State{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	mu := s.sessionMutex(sessionID)
	mu.Lock()
	defer mu.Unlock()

	return s.loadOrCreate(ctx, sessionID)
}

// SelectSport activates a catalog sport for the session. Results and the
// status message reset, the typed queries survive the switch.
func (s *ViewService) SelectSport(ctx context.Context, sessionID, sportID string) (view.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ViewService.SelectSport")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return view.State{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return view.State{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	_, exists, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		return view.State{}, fmt.Errorf("get sport: %w", err)
	}
	if !exists {
		return view.State{}, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	mu := s.sessionMutex(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return view.State{}, err
	}

	state.SelectSport(sportID)
	if err := s.viewRepo.Save(ctx, state); err != nil {
		return view.State{}, fmt.Errorf("save view state: %w", err)
	}

	return state, nil
}

// SetQuery stores one search bar's text without triggering a fetch.
func (s *ViewService) SetQuery(ctx context.Context, sessionID, searchType, query string) (view.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ViewService.SetQuery")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return view.State{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	parsed, err := view.ParseSearchType(searchType)
	if err != nil {
		return view.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	mu := s.sessionMutex(sessionID)
	mu.Lock()
	defer mu.Unlock()

	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return view.State{}, err
	}

	if err := state.SetQuery(parsed, query); err != nil {
		return view.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.viewRepo.Save(ctx, state); err != nil {
		return view.State{}, fmt.Errorf("save view state: %w", err)
	}

	return state, nil
}

// Search runs one search bar's fetch against the scoreboard proxy and settles
// the outcome into the session state. The state carries a monotonic token per
// search so a slow response for an earlier search never clobbers a later one;
// a stale settle is dropped and the already-saved state returned instead.
func (s *ViewService) Search(ctx context.Context, sessionID, searchType string) (view.State, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ViewService.Search")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return view.State{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	parsed, err := view.ParseSearchType(searchType)
	if err != nil {
		return view.State{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	mu := s.sessionMutex(sessionID)

	mu.Lock()
	state, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		mu.Unlock()
		return view.State{}, err
	}

	sportID := state.SportID
	query := s.effectiveQuery(state, parsed)
	token := state.BeginSearch(parsed)
	if err := s.viewRepo.Save(ctx, state); err != nil {
		mu.Unlock()
		return view.State{}, fmt.Errorf("save view state: %w", err)
	}
	mu.Unlock()

	result, fetchErr := s.searcher.Search(ctx, sportID, parsed, query)

	mu.Lock()
	defer mu.Unlock()

	state, found, err := s.loadState(ctx, sessionID)
	if err != nil {
		return view.State{}, err
	}
	if !found {
		return view.State{}, fmt.Errorf("%w: session=%s", ErrNotFound, sessionID)
	}

	var applied bool
	if fetchErr != nil {
		applied = state.SettleFailure(token, fetchErr)
		s.logger.WarnContext(ctx, "search fetch failed",
			"session_id", sessionID,
			"sport_id", sportID,
			"search_type", string(parsed),
			"applied", applied,
			"error", fetchErr,
		)
	} else {
		applied = state.SettleSuccess(token, result)
	}

	if applied {
		if err := s.viewRepo.Save(ctx, state); err != nil {
			return view.State{}, fmt.Errorf("save view state: %w", err)
		}
	}

	return state, nil
}

// SearchAll fans the session's current queries out over all three search
// types on a worker pool and returns the combined projections. The session
// state is read but never written, so in-flight single searches keep their
// token ordering.
func (s *ViewService) SearchAll(ctx context.Context, sessionID string) (CombinedSearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ViewService.SearchAll")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return CombinedSearchResult{}, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	mu := s.sessionMutex(sessionID)
	mu.Lock()
	state, err := s.loadOrCreate(ctx, sessionID)
	mu.Unlock()
	if err != nil {
		return CombinedSearchResult{}, err
	}

	pool, err := ants.NewPool(s.searchWorkers)
	if err != nil {
		return CombinedSearchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := CombinedSearchResult{
		SportID:  state.SportID,
		Results:  make(map[view.SearchType]view.Result, 3),
		Failures: make(map[view.SearchType]string, 3),
	}

	var outMu sync.Mutex
	var workers sync.WaitGroup
	for _, searchType := range []view.SearchType{view.SearchTeam, view.SearchPlayer, view.SearchLeague} {
		searchType := searchType
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			result, fetchErr := s.searcher.Search(ctx, state.SportID, searchType, s.effectiveQuery(state, searchType))

			outMu.Lock()
			defer outMu.Unlock()
			if fetchErr != nil {
				out.Failures[searchType] = fetchErr.Error()
				return
			}
			out.Results[searchType] = result
		}); err != nil {
			workers.Done()
			return CombinedSearchResult{}, fmt.Errorf("submit search to worker pool: %w", err)
		}
	}
	workers.Wait()

	return out, nil
}

// effectiveQuery substitutes the sport id for an empty league query, so the
// league bar still returns the sport's league table when nothing was typed.
func (s *ViewService) effectiveQuery(state view.State, searchType view.SearchType) string {
	query := strings.TrimSpace(state.Query(searchType))
	if query == "" && searchType == view.SearchLeague {
		return state.SportID
	}
	return query
}

func (s *ViewService) loadOrCreate(ctx context.Context, sessionID string) (view.State, error) {
	state, found, err := s.loadState(ctx, sessionID)
	if err != nil {
		return view.State{}, err
	}
	if found {
		return state, nil
	}

	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		return view.State{}, fmt.Errorf("list sports: %w", err)
	}
	if len(sports) == 0 {
		return view.State{}, fmt.Errorf("%w: sport catalog is empty", ErrNotFound)
	}

	state = view.NewState(sessionID, sports[0].ID)
	if err := s.viewRepo.Save(ctx, state); err != nil {
		return view.State{}, fmt.Errorf("save view state: %w", err)
	}

	return state, nil
}

func (s *ViewService) loadState(ctx context.Context, sessionID string) (view.State, bool, error) {
	state, found, err := s.viewRepo.Get(ctx, sessionID)
	if err != nil {
		return view.State{}, false, fmt.Errorf("get view state: %w", err)
	}
	return state, found, nil
}

func (s *ViewService) sessionMutex(sessionID string) *sync.Mutex {
	actual, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}
