package games

import (
	"context"
	"database/sql"
	"net/url"
	"testing"
	"time"

	"github.com/gamedexapp/gamedex/pkg/migrations"
	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/gamedexapp/gamedex/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestGame(t *testing.T, svc *Service, title, genre, platform string, released time.Time) *models.Game {
	t.Helper()

	game := &models.Game{
		Title:       title,
		Genre:       genre,
		Platform:    platform,
		ReleaseDate: released,
	}
	require.NoError(t, svc.CreateGame(context.Background(), game))
	return game
}

func seedCatalog(t *testing.T, svc *Service) {
	t.Helper()

	createTestGame(t, svc, "Star Drifter", "rpg", "pc", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC))
	createTestGame(t, svc, "Pixel Quest", "arcade", "switch", time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC))
	createTestGame(t, svc, "Neon Circuit", "racing", "pc", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	createTestGame(t, svc, "Dungeon Depths", "rpg", "switch", time.Date(2018, 9, 1, 0, 0, 0, 0, time.UTC))
	createTestGame(t, svc, "Starfall Tactics", "rpg", "pc", time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC))
}

func titles(games []*models.Game) []string {
	out := make([]string, len(games))
	for i, game := range games {
		out[i] = game.Title
	}
	return out
}

func TestListGamesFilterConjunction(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	spec := query.Compile(url.Values{"genre": {"rpg"}, "platform": {"pc"}})
	games, total, err := svc.ListGamesWithTotal(ctx, spec)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Star Drifter", "Starfall Tactics"}, titles(games))
}

func TestListGamesFilterInSet(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	spec := query.Compile(url.Values{"genre": {"arcade", "racing"}})
	games, total, err := svc.ListGamesWithTotal(ctx, spec)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Pixel Quest", "Neon Circuit"}, titles(games))
}

func TestListGamesSearchCaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	spec := query.Compile(url.Values{"q": {"STAR"}})
	games, total, err := svc.ListGamesWithTotal(ctx, spec)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Star Drifter", "Starfall Tactics"}, titles(games))
}

func TestListGamesSearchCombinesWithFilters(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	spec := query.Compile(url.Values{"q": {"star"}, "genre": {"rpg"}, "platform": {"pc"}})
	games, total, err := svc.ListGamesWithTotal(ctx, spec)
	require.NoError(t, err)

	assert.Equal(t, 2, total)
	assert.ElementsMatch(t, []string{"Star Drifter", "Starfall Tactics"}, titles(games))
}

func TestListGamesSortDirection(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	asc, _, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"sort": {"asc"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Dungeon Depths", "Pixel Quest", "Star Drifter", "Starfall Tactics", "Neon Circuit"}, titles(asc))

	desc, _, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"sort": {"desc"}}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Neon Circuit", "Starfall Tactics", "Star Drifter", "Pixel Quest", "Dungeon Depths"}, titles(desc))
}

func TestListGamesPagination(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	pageOne, total, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"limit": {"2"}, "sort": {"asc"}}))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"Dungeon Depths", "Pixel Quest"}, titles(pageOne))

	pageThree, total, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"limit": {"2"}, "page": {"3"}, "sort": {"asc"}}))
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Equal(t, []string{"Neon Circuit"}, titles(pageThree))
}

func TestListGamesPagePastEndIsEmptyNotError(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	games, total, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"limit": {"2"}, "page": {"99"}}))
	require.NoError(t, err)

	assert.Equal(t, 5, total)
	assert.Empty(t, games)
}

func TestListGamesNoMatches(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	games, total, err := svc.ListGamesWithTotal(ctx, query.Compile(url.Values{"q": {"no such game"}}))
	require.NoError(t, err)

	assert.Zero(t, total)
	assert.Empty(t, games)
}

func TestRetrieveGameNotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	id := 12345
	_, err := svc.RetrieveGame(ctx, RetrieveGameOptions{ID: &id})
	assert.EqualError(t, err, "Game not found.")
}

func TestUpdateGameColumns(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	game := createTestGame(t, svc, "Star Drifter", "rpg", "pc", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC))

	game.Title = "Star Drifter II"
	game.Genre = "strategy"
	err := svc.UpdateGame(ctx, game, UpdateGameOptions{Columns: []string{"title"}})
	require.NoError(t, err)

	reloaded, err := svc.RetrieveGame(ctx, RetrieveGameOptions{ID: &game.ID})
	require.NoError(t, err)
	assert.Equal(t, "Star Drifter II", reloaded.Title)
	// Genre wasn't in Columns, so it shouldn't have been written.
	assert.Equal(t, "rpg", reloaded.Genre)
}

func TestDeleteGame(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	ctx := context.Background()

	game := createTestGame(t, svc, "Star Drifter", "rpg", "pc", time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, svc.DeleteGame(ctx, game.ID))

	_, err := svc.RetrieveGame(ctx, RetrieveGameOptions{ID: &game.ID})
	assert.EqualError(t, err, "Game not found.")

	err = svc.DeleteGame(ctx, game.ID)
	assert.EqualError(t, err, "Game not found.")
}

func TestListFacets(t *testing.T) {
	t.Parallel()

	svc := NewService(newTestDB(t))
	seedCatalog(t, svc)
	ctx := context.Background()

	facets, err := svc.ListFacets(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"arcade", "racing", "rpg"}, facets.Genres)
	assert.Equal(t, []string{"pc", "switch"}, facets.Platforms)
}
