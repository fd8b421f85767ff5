package controllers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/amaumene/tvmaze-scraper/internal/mapper"
	"github.com/sirupsen/logrus"
)

// find lists the shows matching a title, optionally narrowed by premiere year
func (d *Dispatcher) find(ctx context.Context, params url.Values) error {
	title, err := requireParam(params, "title")
	if err != nil {
		return err
	}
	year := params.Get("year")

	shows, err := searchShows(ctx, d.client, title, year)
	if err != nil {
		return err
	}

	d.logger.WithFields(logrus.Fields{
		"title": title,
		"year":  year,
		"count": len(shows),
	}).Info("Show search completed")

	for _, show := range shows {
		if err := d.dir.AddDirectoryItem(strconv.Itoa(show.ID), mapper.SearchResultItem(show), true); err != nil {
			return err
		}
	}
	return nil
}
