package models

import "time"

// Club is a registered association club. The three series flags say
// which series the club fields a squad in; a pairing between two clubs
// only produces a match for the series both of them field.
type Club struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Division    Division  `json:"division" db:"division"`
	Primera     bool      `json:"primera" db:"primera"`
	Segunda     bool      `json:"segunda" db:"segunda"`
	SuperSenior bool      `json:"super_senior" db:"super_senior"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}

// FieldsSeries reports whether the club fields a squad in the series.
func (c *Club) FieldsSeries(s Series) bool {
	switch s {
	case SeriesPrimera:
		return c.Primera
	case SeriesSegunda:
		return c.Segunda
	case SeriesSuperSenior:
		return c.SuperSenior
	}
	return false
}
