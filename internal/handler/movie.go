package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reelhouse/movie-catalog/internal/catalog"
	"github.com/reelhouse/movie-catalog/internal/middleware"
	"github.com/reelhouse/movie-catalog/internal/model"
	"github.com/reelhouse/movie-catalog/internal/queue"
	"github.com/reelhouse/movie-catalog/internal/repository"
	queue_publisher "github.com/reelhouse/movie-catalog/internal/service"
)

// MovieHandler bundles dependencies for catalog endpoints. Reads are public;
// mutations sit behind JWTAuth + RequireAdmin in the router.
type MovieHandler struct {
	Movies *repository.MovieRepo
}

func NewMovieHandler(m *repository.MovieRepo) *MovieHandler {
	return &MovieHandler{Movies: m}
}

// List handles GET /v1/movies and returns every movie, unpaginated, in
// creation order. No auth required.
func (h *MovieHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Featured handles GET /v1/movies/featured, the front-page carousel source.
func (h *MovieHandler) Featured(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movies"})
	}
	return c.JSON(http.StatusOK, catalog.Featured(movies))
}

// Get handles GET /v1/movies/:id, the detail-page lookup.
func (h *MovieHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movie"})
	}
	return c.JSON(http.StatusOK, m)
}

// Search handles GET /v1/search/movies. Filtering happens in memory over
// the full list, mirroring the web client's behavior: q is a
// case-insensitive substring over title/description/genre, genre params are
// OR-combined, year_from/year_to are inclusive bounds and min_rating is a
// threshold. All filters AND together; result order follows the list.
func (h *MovieHandler) Search(c echo.Context) error {
	q := catalog.Query{
		Text:   strings.TrimSpace(c.QueryParam("q")),
		Genres: c.QueryParams()["genre"],
	}
	q.YearFrom, _ = strconv.Atoi(c.QueryParam("year_from"))
	q.YearTo, _ = strconv.Atoi(c.QueryParam("year_to"))
	q.MinRating, _ = strconv.ParseFloat(c.QueryParam("min_rating"), 64)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	movies, err := h.Movies.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch movies"})
	}
	items := q.Filter(movies)
	return c.JSON(http.StatusOK, echo.Map{"items": items, "total": len(items)})
}

// Create handles POST /v1/movies. Title, releaseYear and a non-empty genre
// set are required; rating defaults to 0 and featured to false. Validation
// happens before the store is touched.
func (h *MovieHandler) Create(c echo.Context) error {
	var m model.Movie
	if err := c.Bind(&m); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" || m.ReleaseYear == 0 || len(m.Genre) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, releaseYear, and genre are required"})
	}
	if m.Rating < 0 || m.Rating > 10 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	created, err := h.Movies.Create(ctx, m)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add movie"})
	}
	h.publishChange(c, queue.ActionCreated, created)
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/movies/:id. Only fields present in the body are
// merged; everything else keeps its prior value. A patch may not blank a
// required field: an explicit empty title, zero releaseYear or empty genre
// set is rejected before the store is touched, the same rule Create applies.
func (h *MovieHandler) Update(c echo.Context) error {
	var p model.MoviePatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if p.Title != nil {
		t := strings.TrimSpace(*p.Title)
		if t == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title cannot be empty"})
		}
		*p.Title = t
	}
	if p.ReleaseYear != nil && *p.ReleaseYear == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "releaseYear cannot be empty"})
	}
	if p.Genre != nil && len(*p.Genre) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "genre cannot be empty"})
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 10) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 0 and 10"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Movies.Update(ctx, c.Param("id"), p)
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update movie"})
	}
	h.publishChange(c, queue.ActionUpdated, updated)
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/movies/:id and returns the deleted record.
func (h *MovieHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	deleted, err := h.Movies.Delete(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrMovieNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete movie"})
	}
	h.publishChange(c, queue.ActionDeleted, deleted)
	return c.JSON(http.StatusOK, deleted)
}

// publishChange emits a catalog.changed event in the background. A publish
// failure is logged by the publisher and never affects the response.
func (h *MovieHandler) publishChange(c echo.Context, action string, m model.Movie) {
	actorID, _ := c.Get(middleware.CtxUserID).(uint64)
	ev := queue.CatalogChangedEvent{
		Action:     action,
		MovieID:    m.ID,
		Title:      m.Title,
		ActorID:    actorID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishCatalogChanged(ctx, ev)
	}()
}
