package memory

import "github.com/riskibarqy/sport-search/internal/domain/sport"

const (
	SportIDNHL = "nhl"
	SportIDNBA = "nba"
	SportIDMLB = "mlb"
	SportIDNFL = "nfl"
)

func SeedSports() []sport.Sport {
	return []sport.Sport{
		{ID: SportIDNHL, Label: "NHL - Hockey"},
		{ID: SportIDNBA, Label: "NBA - Basketball"},
		{ID: SportIDMLB, Label: "MLB - Baseball"},
		{ID: SportIDNFL, Label: "NFL - Football"},
	}
}
