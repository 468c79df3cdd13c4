// Package content serves the read-only site sections: biography, tour dates,
// news, discography and videos. Fixtures are compiled into the binary; the
// tour calendar can alternatively come from Postgres.
package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"storefront-service/internal/models"
)

//go:embed fixtures/tours.json
var toursJSON []byte

//go:embed fixtures/news.json
var newsJSON []byte

//go:embed fixtures/music.json
var musicJSON []byte

//go:embed fixtures/videos.json
var videosJSON []byte

//go:embed fixtures/biography.json
var biographyJSON []byte

// ErrArticleNotFound is returned when a news slug does not exist.
var ErrArticleNotFound = errors.New("article not found")

// Library holds all static content, loaded once at startup.
type Library struct {
	biography models.Biography
	tours     []models.TourEvent
	news      []models.NewsArticle
	albums    []models.Album
	songs     []models.Song
	videos    []models.MusicVideo
}

type musicFixture struct {
	Albums []models.Album `json:"albums"`
	Songs  []models.Song  `json:"songs"`
}

// LoadEmbedded builds the library from the embedded fixtures.
func LoadEmbedded() (*Library, error) {
	lib := &Library{}

	if err := json.Unmarshal(biographyJSON, &lib.biography); err != nil {
		return nil, fmt.Errorf("failed to parse biography fixture: %w", err)
	}
	if err := json.Unmarshal(toursJSON, &lib.tours); err != nil {
		return nil, fmt.Errorf("failed to parse tour fixtures: %w", err)
	}
	if err := json.Unmarshal(newsJSON, &lib.news); err != nil {
		return nil, fmt.Errorf("failed to parse news fixtures: %w", err)
	}
	var music musicFixture
	if err := json.Unmarshal(musicJSON, &music); err != nil {
		return nil, fmt.Errorf("failed to parse music fixtures: %w", err)
	}
	lib.albums = music.Albums
	lib.songs = music.Songs
	if err := json.Unmarshal(videosJSON, &lib.videos); err != nil {
		return nil, fmt.Errorf("failed to parse video fixtures: %w", err)
	}

	return lib, nil
}

// SetTours replaces the tour calendar, used when tours load from Postgres.
func (l *Library) SetTours(tours []models.TourEvent) {
	l.tours = tours
}

// Biography returns the artist bio.
func (l *Library) Biography() models.Biography {
	return l.biography
}

// NewsArticles returns all articles, newest first.
func (l *Library) NewsArticles() []models.NewsArticle {
	out := make([]models.NewsArticle, len(l.news))
	copy(out, l.news)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// NewsBySlug retrieves one article.
func (l *Library) NewsBySlug(slug string) (models.NewsArticle, error) {
	for _, a := range l.news {
		if a.Slug == slug {
			return a, nil
		}
	}
	return models.NewsArticle{}, fmt.Errorf("%w: %s", ErrArticleNotFound, slug)
}

// Albums returns the discography, newest first.
func (l *Library) Albums() []models.Album {
	out := make([]models.Album, len(l.albums))
	copy(out, l.albums)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out
}

// Songs returns all tracks.
func (l *Library) Songs() []models.Song {
	out := make([]models.Song, len(l.songs))
	copy(out, l.songs)
	return out
}

// Videos returns the video gallery.
func (l *Library) Videos() []models.MusicVideo {
	out := make([]models.MusicVideo, len(l.videos))
	copy(out, l.videos)
	return out
}

// FeaturedVideos returns only featured gallery entries.
func (l *Library) FeaturedVideos() []models.MusicVideo {
	var out []models.MusicVideo
	for _, v := range l.videos {
		if v.Featured {
			out = append(out, v)
		}
	}
	return out
}

// TourStates returns the distinct states on the calendar, sorted.
func (l *Library) TourStates() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range l.tours {
		if !seen[t.State] {
			seen[t.State] = true
			out = append(out, t.State)
		}
	}
	sort.Strings(out)
	return out
}

// Tour sort keys.
const (
	TourSortDateAsc  = "date-asc"
	TourSortDateDesc = "date-desc"
	TourSortLocation = "location"
)

// TourFilter narrows and orders the tour calendar: status, free-text location
// search, state multi-select, then sort. Empty Status means all statuses.
type TourFilter struct {
	Status string
	Query  string
	States []string
	Sort   string
}

// Tours returns the filtered, sorted calendar.
func (l *Library) Tours(f TourFilter) []models.TourEvent {
	out := make([]models.TourEvent, 0, len(l.tours))
	for _, t := range l.tours {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" && !matchesTour(t, q) {
			continue
		}
		if len(f.States) > 0 && !containsString(f.States, t.State) {
			continue
		}
		out = append(out, t)
	}

	// ISO dates sort correctly as strings.
	switch f.Sort {
	case TourSortDateDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	case TourSortLocation:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Location < out[j].Location })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	}
	return out
}

func matchesTour(t models.TourEvent, q string) bool {
	for _, field := range []string{t.City, t.State, t.Venue, t.Location} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
