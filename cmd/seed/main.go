package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gamedexapp/gamedex/pkg/config"
	"github.com/gamedexapp/gamedex/pkg/database"
	"github.com/gamedexapp/gamedex/pkg/games"
	"github.com/gamedexapp/gamedex/pkg/migrations"
	"github.com/gamedexapp/gamedex/pkg/models"
	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"
)

var (
	titles = []string{
		"Star Drifter", "Pixel Quest", "Neon Circuit", "Dungeon Depths",
		"Sky Harvest", "Iron Vanguard", "Crystal Keepers", "Rogue Signal",
		"Ember Tactics", "Lost Cartographer", "Turbo Alley", "Moss & Stone",
	}
	genres    = []string{"rpg", "arcade", "strategy", "puzzle", "racing"}
	platforms = []string{"pc", "switch", "ps5", "xbox"}
)

func main() {
	log := logger.New()

	app := &cli.App{
		Name:  "seed",
		Usage: "populate the catalog with sample games",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "count",
				Usage: "number of games to create",
				Value: 50,
			},
		},
		Action: seed,
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}

func seed(c *cli.Context) error {
	ctx := c.Context
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := migrations.BringUpToDate(ctx, db); err != nil {
		return err
	}

	svc := games.NewService(db)
	count := c.Int("count")

	for i := 0; i < count; i++ {
		game := sampleGame(i)
		if err := svc.CreateGame(ctx, game); err != nil {
			return err
		}
	}

	log.Info("seeded catalog", logger.Data{"count": count})
	return nil
}

func sampleGame(i int) *models.Game {
	title := fmt.Sprintf("%s %d", titles[i%len(titles)], i/len(titles)+1)
	description := fmt.Sprintf("Sample catalog entry for %s.", title)

	return &models.Game{
		Title:       title,
		Genre:       genres[rand.Intn(len(genres))],
		Platform:    platforms[rand.Intn(len(platforms))],
		ReleaseDate: time.Date(2015+rand.Intn(10), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC),
		Description: &description,
	}
}
