package mapper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/amaumene/tvmaze-scraper/internal/host"
	"github.com/amaumene/tvmaze-scraper/internal/services/tvmaze"
)

// Unique id keys as the host names them
const (
	IDTVmaze = "tvmaze"
	IDTVDB   = "tvdb"
	IDIMDB   = "imdb"
)

// ShowLabel is "Name (YYYY)", or just the name without a premiere date
func ShowLabel(show *tvmaze.Show) string {
	if year := show.PremieredYear(); year != "" {
		return show.Name + " (" + year + ")"
	}
	return show.Name
}

// SearchResultItem builds the list item for one find result
func SearchResultItem(show *tvmaze.Show) host.ListItem {
	item := ShowInfo(show, false)
	item.Label = ShowLabel(show)
	return item
}

// ShowInfo maps a show document to a list item.
// full adds credits, cast, seasons and the complete artwork set.
func ShowInfo(show *tvmaze.Show, full bool) host.ListItem {
	plot := ""
	if show.Summary != nil {
		plot = CleanPlot(*show.Summary)
	}
	ids := UniqueIDs(show)

	info := host.VideoInfo{
		MediaType:    host.MediaTypeTVShow,
		Title:        show.Name,
		TVShowTitle:  show.Name,
		Plot:         plot,
		PlotOutline:  plot,
		Genre:        show.Genres,
		Status:       show.Status,
		EpisodeGuide: EpisodeGuide(ids),
	}

	studio := show.Network
	if studio == nil {
		studio = show.WebChannel
	}
	if studio != nil {
		info.Studio = []string{studio.Name}
		if studio.Country != nil {
			info.Country = []string{studio.Country.Name}
		}
	}

	if show.Premiered != nil {
		info.Premiered = *show.Premiered
		if year, err := strconv.Atoi(show.PremieredYear()); err == nil {
			info.Year = year
		}
	}

	item := host.ListItem{
		Label:     show.Name,
		Info:      info,
		UniqueIDs: &ids,
		Ratings:   Ratings(show, RatingTVmaze),
	}

	if full {
		item.Info.Credits = Credits(show)
		item.Cast = Cast(show)
		item.Seasons = Seasons(show)
		item.Artwork = append(Artwork(show), SeasonArtwork(show)...)
	} else if url := originalFirst(show.Image); url != "" {
		item.Artwork = []host.Artwork{{Type: host.ArtPoster, URL: url}}
	}

	return item
}

// UniqueIDs returns the tvmaze id plus the supported externals.
// The default prefers tvdb, then imdb, then tvmaze.
func UniqueIDs(show *tvmaze.Show) host.UniqueIDs {
	ids := map[string]string{IDTVmaze: strconv.Itoa(show.ID)}
	if ext := show.Externals; ext != nil {
		if ext.TheTVDB != nil {
			ids[IDTVDB] = strconv.Itoa(*ext.TheTVDB)
		}
		if ext.IMDB != nil && *ext.IMDB != "" {
			ids[IDIMDB] = *ext.IMDB
		}
	}

	def := IDTVmaze
	if _, ok := ids[IDTVDB]; ok {
		def = IDTVDB
	} else if _, ok := ids[IDIMDB]; ok {
		def = IDIMDB
	}
	return host.UniqueIDs{IDs: ids, Default: def}
}

// EpisodeGuide encodes unique ids as the JSON episodeguide string
func EpisodeGuide(ids host.UniqueIDs) string {
	data, err := json.Marshal(ids.IDs)
	if err != nil {
		return ids.IDs[IDTVmaze]
	}
	return string(data)
}

// Credits lists the show creators
func Credits(show *tvmaze.Show) []string {
	if show.Embedded == nil {
		return nil
	}
	var credits []string
	for _, member := range show.Embedded.Crew {
		if strings.EqualFold(member.Type, "creator") {
			credits = append(credits, member.Person.Name)
		}
	}
	return credits
}

// Cast maps the embedded cast in billing order
func Cast(show *tvmaze.Show) []host.Actor {
	if show.Embedded == nil {
		return nil
	}
	cast := make([]host.Actor, 0, len(show.Embedded.Cast))
	for i, member := range show.Embedded.Cast {
		thumb := mediumFirst(member.Character.Image)
		if thumb == "" {
			thumb = mediumFirst(member.Person.Image)
		}
		cast = append(cast, host.Actor{
			Name:      member.Person.Name,
			Role:      member.Character.Name,
			Thumbnail: thumb,
			Order:     i + 1,
		})
	}
	return cast
}

// Seasons passes through season numbers and names
func Seasons(show *tvmaze.Show) []host.Season {
	if show.Embedded == nil {
		return nil
	}
	seasons := make([]host.Season, 0, len(show.Embedded.Seasons))
	for _, s := range show.Embedded.Seasons {
		seasons = append(seasons, host.Season{Number: s.Number, Name: s.Name})
	}
	return seasons
}

// SeasonArtwork returns a poster for every season that has an image
func SeasonArtwork(show *tvmaze.Show) []host.Artwork {
	if show.Embedded == nil {
		return nil
	}
	var art []host.Artwork
	for _, s := range show.Embedded.Seasons {
		if url := originalFirst(s.Image); url != "" {
			number := s.Number
			art = append(art, host.Artwork{Type: host.ArtPoster, URL: url, Season: &number})
		}
	}
	return art
}

// Artwork maps the show image: medium as thumb, original as poster
func Artwork(show *tvmaze.Show) []host.Artwork {
	if show.Image == nil {
		return nil
	}
	var art []host.Artwork
	if show.Image.Medium != "" {
		art = append(art, host.Artwork{Type: host.ArtThumb, URL: show.Image.Medium})
	}
	if show.Image.Original != "" {
		art = append(art, host.Artwork{Type: host.ArtPoster, URL: show.Image.Original})
	}
	return art
}

// Rating sources
const (
	RatingTVmaze = "tvmaze"
	RatingIMDB   = "imdb"
)

// Ratings returns the TVmaze and IMDb ratings the show has.
// The IMDb rating is the default only when preferred and present.
func Ratings(show *tvmaze.Show, defaultSource string) []host.Rating {
	imdbDefault := defaultSource == RatingIMDB && show.IMDBRating != nil

	var ratings []host.Rating
	if show.Rating != nil && show.Rating.Average != nil {
		ratings = append(ratings, host.Rating{Source: RatingTVmaze, Value: *show.Rating.Average, Default: !imdbDefault})
	}
	if show.IMDBRating != nil {
		ratings = append(ratings, host.Rating{
			Source:  RatingIMDB,
			Value:   show.IMDBRating.Value,
			Votes:   show.IMDBRating.Votes,
			Default: imdbDefault,
		})
	}
	return ratings
}

func mediumFirst(img *tvmaze.Image) string {
	if img == nil {
		return ""
	}
	if img.Medium != "" {
		return img.Medium
	}
	return img.Original
}

func originalFirst(img *tvmaze.Image) string {
	if img == nil {
		return ""
	}
	if img.Original != "" {
		return img.Original
	}
	return img.Medium
}
