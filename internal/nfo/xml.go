package nfo

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Kind is the root element of an XML NFO
type Kind string

const (
	KindTVShow  Kind = "tvshow"
	KindEpisode Kind = "episodedetails"
)

// Document holds the fields of an XML NFO used to identify a show or episode
type Document struct {
	Kind      Kind
	Title     string
	Year      string
	UniqueIDs map[string]string // provider -> id, "tvdb" normalized to "thetvdb"
}

type xmlUniqueID struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlDocument struct {
	XMLName   xml.Name
	Title     string        `xml:"title"`
	Year      string        `xml:"year"`
	Premiered string        `xml:"premiered"`
	UniqueIDs []xmlUniqueID `xml:"uniqueid"`
}

// IsXML reports whether nfo contains a tvshow or episodedetails element
func IsXML(nfo string) bool {
	return strings.Contains(nfo, "<"+string(KindTVShow)) || strings.Contains(nfo, "<"+string(KindEpisode))
}

// ParseXML decodes the first element of an NFO file.
// Anything after the element (such as a trailing URL) is ignored.
func ParseXML(nfo string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(nfo))
	dec.Strict = false

	var raw xmlDocument
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse NFO: %w", err)
	}

	kind := Kind(raw.XMLName.Local)
	if kind != KindTVShow && kind != KindEpisode {
		return nil, fmt.Errorf("unsupported NFO root element <%s>", raw.XMLName.Local)
	}

	doc := &Document{
		Kind:      kind,
		Title:     strings.TrimSpace(raw.Title),
		Year:      strings.TrimSpace(raw.Year),
		UniqueIDs: make(map[string]string),
	}
	if doc.Year == "" {
		if premiered := strings.TrimSpace(raw.Premiered); len(premiered) >= 4 {
			doc.Year = premiered[:4]
		}
	}
	for _, id := range raw.UniqueIDs {
		value := strings.TrimSpace(id.Value)
		if id.Type == "" || value == "" {
			continue
		}
		doc.UniqueIDs[normalizeProvider(id.Type)] = value
	}
	return doc, nil
}

func normalizeProvider(p string) string {
	p = strings.ToLower(p)
	if p == "tvdb" {
		return ProviderTheTVDB
	}
	return p
}
