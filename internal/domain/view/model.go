package view

import (
	"fmt"
	"strings"
)

// SearchType selects which search bar triggered a fetch. Its value doubles as
// the `type` query parameter sent to the scoreboard proxy.
type SearchType string

const (
	SearchTeam   SearchType = "team"
	SearchPlayer SearchType = "player"
	SearchLeague SearchType = "league"
)

func ParseSearchType(v string) (SearchType, error) {
	switch SearchType(strings.ToLower(strings.TrimSpace(v))) {
	case SearchTeam:
		return SearchTeam, nil
	case SearchPlayer:
		return SearchPlayer, nil
	case SearchLeague:
		return SearchLeague, nil
	default:
		return "", fmt.Errorf("unknown search type %q", v)
	}
}

// ScheduleRow is the display projection of one untyped schedule item.
type ScheduleRow struct {
	Title  string
	Detail string
}

// StatRow is the display projection of one untyped stat item.
type StatRow struct {
	Name     string
	Team     string
	Statline string
}

// Result is what a settled search carries back into the view: the proxy's ok
// flag plus both projected lists. The proxy decides which lists it returns,
// so both are always applied.
type Result struct {
	OK       bool
	Schedule []ScheduleRow
	Stats    []StatRow
}

const (
	MessagePrompt        = "Select a sport and search for a team, player, or league."
	MessageResultsLoaded = "Results loaded"
	MessageNoResults     = "No results"
)

func progressMessage(searchType SearchType) string {
	switch searchType {
	case SearchTeam:
		return "Searching team schedule..."
	case SearchPlayer:
		return "Searching player stats..."
	case SearchLeague:
		return "Searching league results..."
	default:
		return "Searching..."
	}
}
