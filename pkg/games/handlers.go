package games

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gamedexapp/gamedex/pkg/errcodes"
	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/gamedexapp/gamedex/pkg/pagination"
	"github.com/gamedexapp/gamedex/pkg/query"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const releaseDateFormat = "2006-01-02"

type handler struct {
	gameService *Service
}

// list serves GET /games. The raw query params go through the query compiler
// rather than typed binding, so malformed paging input degrades to defaults
// instead of erroring. An empty result is a normal 200 with an empty items
// array.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	spec := query.Compile(c.QueryParams())

	games, total, err := h.gameService.ListGamesWithTotal(ctx, spec)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, pagination.NewEnvelope(spec, total, games)))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Game")
	}

	game, err := h.gameService.RetrieveGame(ctx, RetrieveGameOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, game))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := CreateGamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	releaseDate, err := time.Parse(releaseDateFormat, params.ReleaseDate)
	if err != nil {
		return errcodes.ValidationError(`"release_date" should be in the format of YYYY-MM-DD`)
	}

	game := &models.Game{
		Title:       params.Title,
		Genre:       params.Genre,
		Platform:    params.Platform,
		ReleaseDate: releaseDate,
		Description: params.Description,
	}

	if err := h.gameService.CreateGame(ctx, game); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, game))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Game")
	}

	// Bind params.
	params := UpdateGamePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Fetch the game.
	game, err := h.gameService.RetrieveGame(ctx, RetrieveGameOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateGameOptions{Columns: []string{}}

	if params.Title != nil && *params.Title != game.Title {
		game.Title = *params.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if params.Genre != nil && *params.Genre != game.Genre {
		game.Genre = *params.Genre
		opts.Columns = append(opts.Columns, "genre")
	}
	if params.Platform != nil && *params.Platform != game.Platform {
		game.Platform = *params.Platform
		opts.Columns = append(opts.Columns, "platform")
	}
	if params.ReleaseDate != nil {
		releaseDate, err := time.Parse(releaseDateFormat, *params.ReleaseDate)
		if err != nil {
			return errcodes.ValidationError(`"release_date" should be in the format of YYYY-MM-DD`)
		}
		if !releaseDate.Equal(game.ReleaseDate) {
			game.ReleaseDate = releaseDate
			opts.Columns = append(opts.Columns, "release_date")
		}
	}
	if params.Description != nil {
		game.Description = params.Description
		opts.Columns = append(opts.Columns, "description")
	}

	// Update the model.
	err = h.gameService.UpdateGame(ctx, game, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	// Reload the model.
	game, err = h.gameService.RetrieveGame(ctx, RetrieveGameOptions{
		ID: &id,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, game))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Game")
	}

	if err := h.gameService.DeleteGame(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) facets(c echo.Context) error {
	ctx := c.Request().Context()

	facets, err := h.gameService.ListFacets(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, facets))
}
