package model

import "time"

// Movie is a catalog entry. Unlike User it carries JSON tags because the
// record is returned to clients as-is; the field names follow the original
// web client's camelCase contract. Genre is stored as a JSON array column.
//
// Title, ReleaseYear and a non-empty Genre set are required at creation;
// everything else is optional with zero-value defaults (rating 0, featured
// false, empty references).
type Movie struct {
	ID          string    `json:"id"`                    // movies.id (UUID, assigned on insert)
	Title       string    `json:"title"`                 // movies.title
	ReleaseYear int       `json:"releaseYear"`           // movies.release_year
	Genre       []string  `json:"genre"`                 // movies.genre (JSON array)
	Rating      float64   `json:"rating"`                // movies.rating, 0..10
	Featured    bool      `json:"featured"`              // movies.featured
	Description string    `json:"description,omitempty"` // movies.description
	Poster      string    `json:"poster,omitempty"`      // movies.poster
	Trailer     string    `json:"trailer,omitempty"`     // movies.trailer
	Video       string    `json:"video,omitempty"`       // movies.video
	CreatedAt   time.Time `json:"-"`                     // movies.created_at
	UpdatedAt   time.Time `json:"-"`                     // movies.updated_at
}

// MoviePatch carries a partial update. Nil pointers mean "leave the field
// unchanged"; only non-nil fields are merged into the stored record.
type MoviePatch struct {
	Title       *string   `json:"title"`
	ReleaseYear *int      `json:"releaseYear"`
	Genre       *[]string `json:"genre"`
	Rating      *float64  `json:"rating"`
	Featured    *bool     `json:"featured"`
	Description *string   `json:"description"`
	Poster      *string   `json:"poster"`
	Trailer     *string   `json:"trailer"`
	Video       *string   `json:"video"`
}
