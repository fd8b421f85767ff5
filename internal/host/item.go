package host

// MediaType values understood by the host
const (
	MediaTypeTVShow  = "tvshow"
	MediaTypeEpisode = "episode"
)

// Artwork types
const (
	ArtThumb  = "thumb"
	ArtPoster = "poster"
)

// ListItem is the host's list-item attribute bag
type ListItem struct {
	Label     string     `json:"label"`
	Info      VideoInfo  `json:"info"`
	Cast      []Actor    `json:"cast,omitempty"`
	UniqueIDs *UniqueIDs `json:"uniqueids,omitempty"`
	Ratings   []Rating   `json:"ratings,omitempty"`
	Seasons   []Season   `json:"seasons,omitempty"`
	Artwork   []Artwork  `json:"artwork,omitempty"`
}

// VideoInfo holds the "video" info labels
type VideoInfo struct {
	MediaType    string   `json:"mediatype,omitempty"`
	Title        string   `json:"title,omitempty"`
	TVShowTitle  string   `json:"tvshowtitle,omitempty"`
	Plot         string   `json:"plot,omitempty"`
	PlotOutline  string   `json:"plotoutline,omitempty"`
	Genre        []string `json:"genre,omitempty"`
	Premiered    string   `json:"premiered,omitempty"`
	Year         int      `json:"year,omitempty"`
	Status       string   `json:"status,omitempty"`
	Studio       []string `json:"studio,omitempty"`
	Country      []string `json:"country,omitempty"`
	Credits      []string `json:"credits,omitempty"`
	Season       *int     `json:"season,omitempty"`
	Episode      *int     `json:"episode,omitempty"`
	Aired        string   `json:"aired,omitempty"`
	Duration     int      `json:"duration,omitempty"` // seconds
	EpisodeGuide string   `json:"episodeguide,omitempty"`
}

// Actor is one cast entry; Order starts at 1
type Actor struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Order     int    `json:"order"`
}

// UniqueIDs maps provider name to id, with the host's preferred default
type UniqueIDs struct {
	IDs     map[string]string `json:"ids"`
	Default string            `json:"default"`
}

// Rating is one rating source
type Rating struct {
	Source  string  `json:"source"`
	Value   float64 `json:"value"`
	Votes   int     `json:"votes,omitempty"`
	Default bool    `json:"default"`
}

// Season is a season number with an optional name
type Season struct {
	Number int    `json:"number"`
	Name   string `json:"name,omitempty"`
}

// Artwork is one image; Season is set for season artwork
type Artwork struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Season *int   `json:"season,omitempty"`
}
