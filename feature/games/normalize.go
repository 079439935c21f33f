package games

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	thumbSize   = "t_thumb"
	coverSize   = "t_cover_big"
	artworkSize = "t_1080p"
)

// Normalize projects a raw IGDB record onto Game: cover and artwork URLs are rewritten to
// larger variants, platforms are sorted by name and developers are taken from the involved
// companies flagged as developer.
func Normalize(raw json.RawMessage) (Game, error) {
	var r rawGame
	if err := json.Unmarshal(raw, &r); err != nil {
		return Game{}, err
	}
	return normalize(r), nil
}

func normalize(r rawGame) Game {
	g := Game{
		ID:               r.ID,
		Slug:             r.Slug,
		Name:             r.Name,
		Summary:          r.Summary,
		FirstReleaseDate: r.FirstReleaseDate,
		Artworks:         make([]Image, 0, len(r.Artworks)),
		Platforms:        make([]Platform, len(r.Platforms)),
		Genres:           make([]Genre, len(r.Genres)),
		Developers:       []string{},
	}

	if r.Cover != nil && r.Cover.URL != "" {
		cover := *r.Cover
		cover.URL = strings.Replace(cover.URL, thumbSize, coverSize, 1)
		g.Cover = &cover
	}

	for _, a := range r.Artworks {
		a.URL = strings.Replace(a.URL, thumbSize, artworkSize, 1)
		g.Artworks = append(g.Artworks, a)
	}

	copy(g.Platforms, r.Platforms)
	sortPlatforms(g.Platforms)

	copy(g.Genres, r.Genres)

	for _, ic := range r.InvolvedCompanies {
		if ic.Developer && ic.Company.Name != "" {
			g.Developers = append(g.Developers, ic.Company.Name)
		}
	}

	return g
}

// sortPlatforms orders platforms by name the way a reader expects ("PlayStation 2" before
// "PlayStation 10", case ignored), keeping the upstream order for ties.
func sortPlatforms(platforms []Platform) {
	c := collate.New(language.English, collate.IgnoreCase, collate.Numeric)
	sort.SliceStable(platforms, func(i, j int) bool {
		return c.CompareString(platforms[i].Name, platforms[j].Name) < 0
	})
}
