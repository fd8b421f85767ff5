package controllers

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
)

// EpisodeRef identifies an episode in an episode list url
type EpisodeRef struct {
	ShowID    int
	EpisodeID int
	Season    int
	Number    *int
}

// Encode returns the escaped query string used as the directory item url
func (r EpisodeRef) Encode() string {
	v := url.Values{}
	v.Set("show_id", strconv.Itoa(r.ShowID))
	v.Set("episode_id", strconv.Itoa(r.EpisodeID))
	v.Set("season", strconv.Itoa(r.Season))
	if r.Number != nil {
		v.Set("episode", strconv.Itoa(*r.Number))
	} else {
		v.Set("episode", "")
	}
	return url.QueryEscape(v.Encode())
}

// DecodeEpisodeRef accepts the escaped query form and the older base64 form
func DecodeEpisodeRef(s string) (EpisodeRef, error) {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		if ref, err := parseEpisodeRef(unescaped); err == nil {
			return ref, nil
		}
	}
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.URLEncoding} {
		data, err := enc.DecodeString(s)
		if err != nil {
			continue
		}
		if ref, err := parseEpisodeRef(string(data)); err == nil {
			return ref, nil
		}
	}
	return EpisodeRef{}, fmt.Errorf("%w: undecodable episode id %q", ErrInvalidParam, s)
}

func parseEpisodeRef(query string) (EpisodeRef, error) {
	v, err := url.ParseQuery(query)
	if err != nil {
		return EpisodeRef{}, err
	}

	var ref EpisodeRef
	if ref.ShowID, err = strconv.Atoi(v.Get("show_id")); err != nil {
		return EpisodeRef{}, fmt.Errorf("bad show_id: %w", err)
	}
	if ref.EpisodeID, err = strconv.Atoi(v.Get("episode_id")); err != nil {
		return EpisodeRef{}, fmt.Errorf("bad episode_id: %w", err)
	}
	if s := v.Get("season"); s != "" {
		if ref.Season, err = strconv.Atoi(s); err != nil {
			return EpisodeRef{}, fmt.Errorf("bad season: %w", err)
		}
	}
	if s := v.Get("episode"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return EpisodeRef{}, fmt.Errorf("bad episode: %w", err)
		}
		ref.Number = &n
	}
	return ref, nil
}
