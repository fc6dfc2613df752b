package games

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/gamedexapp/gamedex/pkg/errcodes"
	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/gamedexapp/gamedex/pkg/query"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveGameOptions struct {
	ID    *int
	Title *string
}

type UpdateGameOptions struct {
	Columns []string
}

// Facets are the distinct filterable values currently in the catalog, used
// to populate filter dropdowns.
type Facets struct {
	Genres    []string `json:"genres"`
	Platforms []string `json:"platforms"`
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateGame(ctx context.Context, game *models.Game) error {
	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = game.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(game).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveGame(ctx context.Context, opts RetrieveGameOptions) (*models.Game, error) {
	game := &models.Game{}

	q := svc.db.
		NewSelect().
		Model(game)

	if opts.ID != nil {
		q = q.Where("g.id = ?", *opts.ID)
	}
	if opts.Title != nil {
		q = q.Where("LOWER(g.title) = LOWER(?)", *opts.Title)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Game")
		}
		return nil, errors.WithStack(err)
	}

	return game, nil
}

// ListGamesWithTotal evaluates a normalized spec against the catalog and
// returns the page of matching games plus the total match count ignoring
// pagination. The count and the page are two separate reads; they are not
// transactionally consistent and a mismatch under concurrent writes is
// tolerated.
func (svc *Service) ListGamesWithTotal(ctx context.Context, spec query.Spec) ([]*models.Game, int, error) {
	games := []*models.Game{}

	q := svc.db.
		NewSelect().
		Model(&games)

	// Every present filter must hold; within a filter any listed value
	// matches.
	for key, values := range spec.Filters {
		switch key {
		case "genre":
			q = q.Where("g.genre IN (?)", bun.In(values))
		case "platform":
			q = q.Where("g.platform IN (?)", bun.In(values))
		}
	}

	if spec.Search != "" {
		q = q.Where("LOWER(g.title) LIKE ?", "%"+strings.ToLower(spec.Search)+"%")
	}

	if spec.Sort == query.SortAscending {
		q = q.Order("g.release_date ASC", "g.id ASC")
	} else {
		q = q.Order("g.release_date DESC", "g.id DESC")
	}

	q = q.Limit(spec.Limit).Offset(spec.Offset())

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return games, total, nil
}

func (svc *Service) UpdateGame(ctx context.Context, game *models.Game, opts UpdateGameOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	// Update updated_at.
	now := time.Now()
	game.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(game).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errcodes.NotFound("Game")
		}
		return errors.WithStack(err)
	}

	return nil
}

func (svc *Service) DeleteGame(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Game)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.WithStack(err)
	}
	if affected == 0 {
		return errcodes.NotFound("Game")
	}

	return nil
}

// ListFacets returns the distinct genres and platforms in the catalog.
func (svc *Service) ListFacets(ctx context.Context) (*Facets, error) {
	facets := &Facets{
		Genres:    []string{},
		Platforms: []string{},
	}

	err := svc.db.
		NewSelect().
		Model((*models.Game)(nil)).
		ColumnExpr("DISTINCT g.genre").
		OrderExpr("g.genre ASC").
		Scan(ctx, &facets.Genres)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	err = svc.db.
		NewSelect().
		Model((*models.Game)(nil)).
		ColumnExpr("DISTINCT g.platform").
		OrderExpr("g.platform ASC").
		Scan(ctx, &facets.Platforms)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return facets, nil
}
