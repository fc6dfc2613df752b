package testutils

import (
	"net/http"
	"time"

	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type handler struct {
	db *bun.DB
}

// createGameRequest is one game to seed into the catalog.
type createGameRequest struct {
	Title       string  `json:"title" validate:"required"`
	Genre       string  `json:"genre" validate:"required"`
	Platform    string  `json:"platform" validate:"required"`
	ReleaseDate string  `json:"release_date" validate:"required,date"`
	Description *string `json:"description"`
}

type createGamesRequest struct {
	Games []createGameRequest `json:"games" validate:"required,min=1,dive"`
}

type createGamesResponse struct {
	Created int `json:"created"`
}

// createGames bulk-inserts catalog fixtures so end-to-end tests can set up
// known data in one request.
// POST /test/games.
func (h *handler) createGames(c echo.Context) error {
	ctx := c.Request().Context()

	var req createGamesRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(err)
	}

	now := time.Now()
	games := make([]*models.Game, len(req.Games))
	for i, g := range req.Games {
		releaseDate, err := time.Parse("2006-01-02", g.ReleaseDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid release_date")
		}

		games[i] = &models.Game{
			CreatedAt:   now,
			UpdatedAt:   now,
			Title:       g.Title,
			Genre:       g.Genre,
			Platform:    g.Platform,
			ReleaseDate: releaseDate,
			Description: g.Description,
		}
	}

	_, err := h.db.NewInsert().Model(&games).Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to create games")
	}

	return c.JSON(http.StatusCreated, createGamesResponse{
		Created: len(games),
	})
}

// deleteAllGamesResponse is the response body for deleting all games.
type deleteAllGamesResponse struct {
	Deleted int `json:"deleted"`
}

// deleteAllGames wipes the catalog between test runs.
// DELETE /test/games.
func (h *handler) deleteAllGames(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.db.NewDelete().
		Model((*models.Game)(nil)).
		Where("1=1").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to delete games")
	}

	deleted, _ := result.RowsAffected()

	return c.JSON(http.StatusOK, deleteAllGamesResponse{
		Deleted: int(deleted),
	})
}
