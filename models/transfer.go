package models

import "time"

// Transfer records a player moving between clubs. FromClubID is nil for
// a player's first registration.
type Transfer struct {
	ID         int       `json:"id" db:"id"`
	PlayerID   int       `json:"player_id" db:"player_id"`
	FromClubID *int      `json:"from_club_id,omitempty" db:"from_club_id"`
	ToClubID   int       `json:"to_club_id" db:"to_club_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
