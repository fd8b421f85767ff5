package main

import (
	"fmt"
	"strconv"

	"github.com/amaumene/tvmaze-scraper/internal/cache"
	"github.com/amaumene/tvmaze-scraper/internal/controllers"
	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/models"
	"github.com/amaumene/tvmaze-scraper/internal/services/imdb"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runScraper handles one host call
func runScraper(cmd *cobra.Command, args []string) error {
	handle, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid handle %q: %w", args[0], err)
	}
	paramstring := args[2]

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := tvmaze.ParseEpisodeOrder(a.cfg.EpisodeOrder)
	if err != nil {
		return fmt.Errorf("invalid EPISODE_ORDER: %w", err)
	}

	logger := a.logger
	logger.WithFields(logrus.Fields{
		"handle": handle,
		"params": paramstring,
	}).Debug("Host call received")

	db, err := models.NewDatabase(a.cfg.IDMapFile, logger, a.metrics)
	if err != nil {
		logger.WithError(err).Warn("Id map unavailable, continuing without it")
		db = nil
	}
	defer db.Close()

	client := tvmaze.NewClient(a.cfg, nil, logger, a.metrics)
	var ratings *imdb.Client
	if a.cfg.IMDBRatings {
		ratings = imdb.NewClient(a.cfg, nil, logger, a.metrics)
	}
	store := cache.New(a.cfg.CacheDir, logger, a.metrics)
	shows := controllers.NewShowController(client, ratings, store, db, logger)
	emitter := host.NewEmitter(cmd.OutOrStdout(), handle, logger)
	defaults := controllers.Settings{EpisodeOrder: order, DefaultRating: a.cfg.DefaultRating}
	dispatcher := controllers.NewDispatcher(shows, client, emitter, defaults, logger, a.metrics)

	if err := dispatcher.Dispatch(cmd.Context(), paramstring); err != nil {
		logger.WithError(err).Error("Host call failed")
		return err
	}
	return nil
}
