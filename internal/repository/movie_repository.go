package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/reelhouse/movie-catalog/internal/model"
)

const (
	selectMoviesSQL = "SELECT id,title,release_year,genre,rating,featured," +
		"COALESCE(description,''),COALESCE(poster,''),COALESCE(trailer,''),COALESCE(video,'')," +
		"created_at,updated_at FROM movies ORDER BY created_at, id"
	selectMovieSQL = "SELECT id,title,release_year,genre,rating,featured," +
		"COALESCE(description,''),COALESCE(poster,''),COALESCE(trailer,''),COALESCE(video,'')," +
		"created_at,updated_at FROM movies WHERE id=? LIMIT 1"
	insertMovieSQL = "INSERT INTO movies (id,title,release_year,genre,rating,featured,description,poster,trailer,video) " +
		"VALUES (?,?,?,?,?,?,?,?,?,?)"
	updateMovieSQL = "UPDATE movies SET title=?,release_year=?,genre=?,rating=?,featured=?,description=?,poster=?,trailer=?,video=? WHERE id=?"
	deleteMovieSQL = "DELETE FROM movies WHERE id=?"
)

type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// List returns every movie in creation order. There is no pagination: the
// catalog is fetched whole and filtered client-side.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx, selectMoviesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single movie, mapping an absent row to ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (model.Movie, error) {
	row := r.DB.QueryRowContext(ctx, selectMovieSQL, id)
	m, err := scanMovie(row)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create persists a new movie under a freshly assigned UUID and returns the
// stored record. Field validation happens at the handler boundary; the
// repository only assigns the identity.
func (r *MovieRepo) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	m.ID = uuid.NewString()
	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return model.Movie{}, err
	}
	_, err = r.DB.ExecContext(ctx, insertMovieSQL,
		m.ID, m.Title, m.ReleaseYear, genreJSON, m.Rating, m.Featured,
		m.Description, m.Poster, m.Trailer, m.Video)
	if err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// Update merges only the fields present in the patch into the stored record
// and persists the result. Unspecified fields keep their prior values.
// Concurrent updates to the same movie race; last write wins.
func (r *MovieRepo) Update(ctx context.Context, id string, p model.MoviePatch) (model.Movie, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Featured != nil {
		m.Featured = *p.Featured
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Poster != nil {
		m.Poster = *p.Poster
	}
	if p.Trailer != nil {
		m.Trailer = *p.Trailer
	}
	if p.Video != nil {
		m.Video = *p.Video
	}

	genreJSON, err := json.Marshal(m.Genre)
	if err != nil {
		return model.Movie{}, err
	}
	if _, err := r.DB.ExecContext(ctx, updateMovieSQL,
		m.Title, m.ReleaseYear, genreJSON, m.Rating, m.Featured,
		m.Description, m.Poster, m.Trailer, m.Video, m.ID); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// Delete removes a movie and returns the deleted record, mirroring the API
// contract of returning the removed value.
func (r *MovieRepo) Delete(ctx context.Context, id string) (model.Movie, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	if _, err := r.DB.ExecContext(ctx, deleteMovieSQL, id); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dest ...any) error }

func scanMovie(s scanner) (model.Movie, error) {
	var m model.Movie
	var genreJSON []byte
	err := s.Scan(&m.ID, &m.Title, &m.ReleaseYear, &genreJSON, &m.Rating, &m.Featured,
		&m.Description, &m.Poster, &m.Trailer, &m.Video, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Movie{}, err
	}
	if len(genreJSON) > 0 {
		if err := json.Unmarshal(genreJSON, &m.Genre); err != nil {
			return model.Movie{}, err
		}
	}
	return m, nil
}
