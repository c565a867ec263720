// Package catalog implements the read-only query layer over a fetched movie
// list. All functions are pure and stateless: they take the full slice and
// return a filtered slice preserving the original order. They are shared by
// the search endpoint and usable by any client holding the catalog in
// memory.
package catalog

import (
	"strings"

	"github.com/reelhouse/movie-catalog/internal/model"
)

// Query is the combined filter used by the search page. Zero values are
// no-ops: an empty Text matches everything, an empty Genres set skips the
// genre filter, YearFrom/YearTo of 0 leave that bound open, MinRating 0
// admits all ratings. Filters are AND-combined; genre membership is OR
// across the selected genres.
type Query struct {
	Text      string
	Genres    []string
	YearFrom  int
	YearTo    int
	MinRating float64
}

// Search returns movies whose title, description or any genre tag contains
// the query as a case-insensitive substring.
func Search(movies []model.Movie, query string) []model.Movie {
	q := strings.ToLower(query)
	return filter(movies, func(m model.Movie) bool { return matchesText(m, q) })
}

// FilterByGenre returns movies carrying the given genre tag. Matching is a
// case-insensitive exact comparison against each element of the genre set.
func FilterByGenre(movies []model.Movie, genre string) []model.Movie {
	return filter(movies, func(m model.Movie) bool { return hasGenre(m, genre) })
}

// Featured returns the movies flagged for the front-page carousel.
func Featured(movies []model.Movie) []model.Movie {
	return filter(movies, func(m model.Movie) bool { return m.Featured })
}

// Filter applies the combined query. Result order follows the input order;
// there is no relevance ranking.
func (q Query) Filter(movies []model.Movie) []model.Movie {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	return filter(movies, func(m model.Movie) bool {
		if text != "" && !matchesText(m, text) {
			return false
		}
		if len(q.Genres) > 0 && !hasAnyGenre(m, q.Genres) {
			return false
		}
		if q.YearFrom != 0 && m.ReleaseYear < q.YearFrom {
			return false
		}
		if q.YearTo != 0 && m.ReleaseYear > q.YearTo {
			return false
		}
		if q.MinRating > 0 && m.Rating < q.MinRating {
			return false
		}
		return true
	})
}

// matchesText expects q already lower-cased.
func matchesText(m model.Movie, q string) bool {
	if strings.Contains(strings.ToLower(m.Title), q) ||
		strings.Contains(strings.ToLower(m.Description), q) {
		return true
	}
	for _, g := range m.Genre {
		if strings.Contains(strings.ToLower(g), q) {
			return true
		}
	}
	return false
}

func hasGenre(m model.Movie, genre string) bool {
	for _, g := range m.Genre {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

func hasAnyGenre(m model.Movie, genres []string) bool {
	for _, g := range genres {
		if hasGenre(m, g) {
			return true
		}
	}
	return false
}

func filter(movies []model.Movie, keep func(model.Movie) bool) []model.Movie {
	out := make([]model.Movie, 0, len(movies))
	for _, m := range movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
