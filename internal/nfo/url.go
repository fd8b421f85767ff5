package nfo

import "regexp"

// Providers found in NFO URLs
const (
	ProviderTVmaze  = "tvmaze"
	ProviderTheTVDB = "thetvdb"
	ProviderIMDB    = "imdb"
)

// Tried in order; the first match wins.
var showURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(tvmaze)\.com/shows/(\d+)/[\w\-]`),
	regexp.MustCompile(`(?i)(thetvdb)\.com/.*?series/(\d+)`),
	regexp.MustCompile(`(?i)(thetvdb)\.com[\w=&\?/]+id=(\d+)`),
	regexp.MustCompile(`(?i)(imdb)\.com/[\w/\-]+/(tt\d+)`),
}

// URLMatch is a show id found in a URL
type URLMatch struct {
	Provider string
	ID       string
}

// ParseURL looks for a TVmaze, TheTVDB or IMDb show URL in s
func ParseURL(s string) (URLMatch, bool) {
	for _, re := range showURLPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return URLMatch{Provider: normalizeProvider(m[1]), ID: m[2]}, true
		}
	}
	return URLMatch{}, false
}
