package mapper

import (
	"strconv"

	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
)

// EpisodeInfo maps an episode document to a list item.
// Episode lists use full=false; plot, runtime, image and ids are added for details.
func EpisodeInfo(ep *tvmaze.Episode, full bool) host.ListItem {
	season := ep.Season
	info := host.VideoInfo{
		MediaType: host.MediaTypeEpisode,
		Title:     ep.Name,
		Season:    &season,
	}
	if ep.Number != nil {
		number := *ep.Number
		info.Episode = &number
	}
	if ep.Airdate != nil {
		info.Aired = *ep.Airdate
	}

	item := host.ListItem{Label: ep.Name, Info: info}
	if !full {
		return item
	}

	if ep.Summary != nil {
		item.Info.Plot = CleanPlot(*ep.Summary)
		item.Info.PlotOutline = item.Info.Plot
	}
	if ep.Runtime != nil {
		item.Info.Duration = *ep.Runtime * 60
	}
	if url := originalFirst(ep.Image); url != "" {
		item.Artwork = []host.Artwork{{Type: host.ArtThumb, URL: url}}
	}
	item.UniqueIDs = &host.UniqueIDs{
		IDs:     map[string]string{IDTVmaze: strconv.Itoa(ep.ID)},
		Default: IDTVmaze,
	}
	return item
}
