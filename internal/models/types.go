package models

import (
	"fmt"
	"strings"
)

// Provider is an external metadata database TVmaze can look shows up by
type Provider string

const (
	ProviderIMDB    Provider = "imdb"
	ProviderTheTVDB Provider = "thetvdb"
)

// ParseProvider accepts the TVmaze key names plus the short "tvdb" alias
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(s) {
	case "imdb":
		return ProviderIMDB, nil
	case "thetvdb", "tvdb":
		return ProviderTheTVDB, nil
	default:
		return "", fmt.Errorf("unsupported id provider %q", s)
	}
}

// ExternalID identifies a show in another database
type ExternalID struct {
	Provider Provider
	Value    string
}

// Key is the id-map store key for this id
func (e ExternalID) Key() string {
	return string(e.Provider) + ":" + e.Value
}

func (e ExternalID) String() string {
	return e.Key()
}
