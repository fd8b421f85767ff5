package tvmaze

import "encoding/json"

// Show is a TVmaze show document. Nullable upstream fields are pointers.
type Show struct {
	ID         int             `json:"id"`
	URL        string          `json:"url,omitempty"`
	Name       string          `json:"name"`
	Type       string          `json:"type,omitempty"`
	Language   *string         `json:"language,omitempty"`
	Genres     []string        `json:"genres"`
	Status     string          `json:"status,omitempty"`
	Premiered  *string         `json:"premiered"`
	Rating     *Rating         `json:"rating"`
	Network    *Network        `json:"network"`
	WebChannel *Network        `json:"webChannel"`
	Externals  *Externals      `json:"externals"`
	Image      *Image          `json:"image"`
	Summary    *string         `json:"summary"`
	Embedded   *Embedded       `json:"_embedded,omitempty"`
	Episodes   *EpisodeMap     `json:"episodes,omitempty"` // filled from Embedded.Episodes
	IMDBRating *ExternalRating `json:"imdb_rating,omitempty"`
}

// ExternalRating is a rating taken from another site, stored with the show
type ExternalRating struct {
	Value float64 `json:"rating"`
	Votes int     `json:"votes"`
}

// Embedded holds the embed[] resources of a show request
type Embedded struct {
	Cast     []CastMember `json:"cast"`
	Seasons  []Season     `json:"seasons"`
	Crew     []CrewMember `json:"crew"`
	Episodes []Episode    `json:"episodes,omitempty"`
}

// Rating is the TVmaze user rating
type Rating struct {
	Average *float64 `json:"average"`
}

// Network is either a broadcast network or a web channel
type Network struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Country *Country `json:"country"`
}

// Country of a network
type Country struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone,omitempty"`
}

// Externals are show IDs in other databases
type Externals struct {
	TVRage  *int    `json:"tvrage"`
	TheTVDB *int    `json:"thetvdb"`
	IMDB    *string `json:"imdb"`
}

// Image holds the two sizes TVmaze serves
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// Person is a cast or crew person
type Person struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image *Image `json:"image"`
}

// Character is the role played by a cast member
type Character struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image *Image `json:"image"`
}

// CastMember is one entry of the embedded cast
type CastMember struct {
	Person    Person    `json:"person"`
	Character Character `json:"character"`
}

// CrewMember is one entry of the embedded crew
type CrewMember struct {
	Type   string `json:"type"`
	Person Person `json:"person"`
}

// Season is one entry of the embedded season list
type Season struct {
	ID     int    `json:"id"`
	Number int    `json:"number"`
	Name   string `json:"name"`
	Image  *Image `json:"image"`
}

// Episode is a TVmaze episode document
type Episode struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Season  int     `json:"season"`
	Number  *int    `json:"number"` // null for specials
	Type    string  `json:"type,omitempty"`
	Airdate *string `json:"airdate"`
	Runtime *int    `json:"runtime"`
	Summary *string `json:"summary"`
	Image   *Image  `json:"image"`
}

// SearchResult is one element of /search/shows
type SearchResult struct {
	Score float64 `json:"score"`
	Show  Show    `json:"show"`
}

// EpisodeMap indexes episodes by ID while keeping broadcast order.
type EpisodeMap struct {
	items []Episode
	index map[int]int
}

// NewEpisodeMap builds an EpisodeMap from an embedded episode list.
// A repeated ID replaces the earlier value in place.
func NewEpisodeMap(episodes []Episode) *EpisodeMap {
	m := &EpisodeMap{
		items: make([]Episode, 0, len(episodes)),
		index: make(map[int]int, len(episodes)),
	}
	for _, ep := range episodes {
		if pos, ok := m.index[ep.ID]; ok {
			m.items[pos] = ep
			continue
		}
		m.index[ep.ID] = len(m.items)
		m.items = append(m.items, ep)
	}
	return m
}

// Get returns the episode with the given ID
func (m *EpisodeMap) Get(id int) (*Episode, bool) {
	if m == nil {
		return nil, false
	}
	pos, ok := m.index[id]
	if !ok {
		return nil, false
	}
	return &m.items[pos], true
}

// Values returns episodes in original order
func (m *EpisodeMap) Values() []Episode {
	if m == nil {
		return nil
	}
	return m.items
}

// Len returns the number of episodes
func (m *EpisodeMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.items)
}

// MarshalJSON encodes the map as the original ordered array
func (m *EpisodeMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Values())
}

// UnmarshalJSON rebuilds the index from an ordered array
func (m *EpisodeMap) UnmarshalJSON(data []byte) error {
	var episodes []Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return err
	}
	*m = *NewEpisodeMap(episodes)
	return nil
}

// ProcessEpisodes moves the embedded episode list into Episodes.
func (s *Show) ProcessEpisodes() {
	if s.Embedded == nil {
		return
	}
	s.Episodes = NewEpisodeMap(s.Embedded.Episodes)
	s.Embedded.Episodes = nil
}

// PremieredYear returns the first four characters of the premiere date, or ""
func (s *Show) PremieredYear() string {
	if s.Premiered == nil || len(*s.Premiered) < 4 {
		return ""
	}
	return (*s.Premiered)[:4]
}
