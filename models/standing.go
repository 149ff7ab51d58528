package models

// StandingRow is one club's line in a series+division table. Rows have
// no lifecycle of their own: the table is re-derived from the match
// records on every request.
type StandingRow struct {
	ClubID         int     `json:"club_id"`
	ClubName       string  `json:"club_name"`
	CrestURL       *string `json:"crest_url,omitempty"`
	Points         int     `json:"points"`
	Played         int     `json:"played"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
}
