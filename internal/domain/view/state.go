package view

import "fmt"

// State is the whole search view for one session: the selected sport, the
// three query strings, the loading flag, the status message and both result
// lists. Every mutation goes through one of the transition methods below so
// the machine stays testable without any transport attached.
//
// Searches carry a token from a per-state monotonic counter. A settle with a
// token older than the newest issued one is discarded, so a slow response can
// never overwrite the results of a search issued after it.
type State struct {
	SessionID string

	SportID     string
	TeamQuery   string
	PlayerQuery string
	LeagueQuery string

	Loading  bool
	Message  string
	Schedule []ScheduleRow
	Stats    []StatRow

	IssuedToken  uint64
	SettledToken uint64
}

func NewState(sessionID, sportID string) State {
	return State{
		SessionID: sessionID,
		SportID:   sportID,
		Message:   MessagePrompt,
	}
}

// SelectSport activates a sport and clears previous results and the status
// message. The query strings are deliberately untouched.
func (s *State) SelectSport(sportID string) {
	s.SportID = sportID
	s.Schedule = nil
	s.Stats = nil
	s.Message = MessagePrompt
}

func (s *State) SetQuery(searchType SearchType, query string) error {
	switch searchType {
	case SearchTeam:
		s.TeamQuery = query
	case SearchPlayer:
		s.PlayerQuery = query
	case SearchLeague:
		s.LeagueQuery = query
	default:
		return fmt.Errorf("unknown search type %q", searchType)
	}

	return nil
}

func (s *State) Query(searchType SearchType) string {
	switch searchType {
	case SearchTeam:
		return s.TeamQuery
	case SearchPlayer:
		return s.PlayerQuery
	case SearchLeague:
		return s.LeagueQuery
	default:
		return ""
	}
}

// BeginSearch marks the view loading and returns the token the eventual
// settle must present.
func (s *State) BeginSearch(searchType SearchType) uint64 {
	s.IssuedToken++
	s.Loading = true
	s.Message = progressMessage(searchType)

	return s.IssuedToken
}

// SettleSuccess applies a search result. It reports false, leaving the state
// untouched, when the token is stale: a newer search was issued after this
// one and its outcome owns the view now.
func (s *State) SettleSuccess(token uint64, result Result) bool {
	if !s.settle(token) {
		return false
	}

	s.Schedule = result.Schedule
	s.Stats = result.Stats
	if result.OK {
		s.Message = MessageResultsLoaded
	} else {
		s.Message = MessageNoResults
	}

	return true
}

// SettleFailure surfaces a transport or decode failure as a status message.
// Previously displayed results stay on screen.
func (s *State) SettleFailure(token uint64, err error) bool {
	if !s.settle(token) {
		return false
	}

	s.Message = fmt.Sprintf("Search failed: %v", err)

	return true
}

func (s *State) settle(token uint64) bool {
	if token < s.IssuedToken || token <= s.SettledToken {
		return false
	}

	s.SettledToken = token
	s.Loading = false

	return true
}
