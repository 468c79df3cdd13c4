package content

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := LoadEmbedded()
	require.NoError(t, err)
	return lib
}

func TestLoadEmbeddedFixtures(t *testing.T) {
	lib := testLibrary(t)

	assert.NotEmpty(t, lib.Biography().Name)
	assert.NotEmpty(t, lib.Tours(TourFilter{}))
	assert.NotEmpty(t, lib.NewsArticles())
	assert.NotEmpty(t, lib.Albums())
	assert.NotEmpty(t, lib.Songs())
	assert.NotEmpty(t, lib.Videos())
}

func TestToursFilterByStatus(t *testing.T) {
	lib := testLibrary(t)

	for _, tour := range lib.Tours(TourFilter{Status: models.TourStatusUpcoming}) {
		assert.Equal(t, models.TourStatusUpcoming, tour.Status)
	}

	all := lib.Tours(TourFilter{})
	upcoming := lib.Tours(TourFilter{Status: models.TourStatusUpcoming})
	assert.Greater(t, len(all), len(upcoming))
}

func TestToursLocationSearch(t *testing.T) {
	lib := &Library{tours: []models.TourEvent{
		{ID: "1", City: "Nashville", State: "TN", Venue: "Opry", Location: "Nashville, TN", Date: "2026-09-12"},
		{ID: "2", City: "Tulsa", State: "OK", Venue: "Ballroom", Location: "Tulsa, OK", Date: "2026-10-03"},
	}}

	got := lib.Tours(TourFilter{Query: "nash"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// Venue matches too.
	got = lib.Tours(TourFilter{Query: "ballroom"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestToursStateMultiSelect(t *testing.T) {
	lib := testLibrary(t)

	got := lib.Tours(TourFilter{States: []string{"TX"}})
	require.NotEmpty(t, got)
	for _, tour := range got {
		assert.Equal(t, "TX", tour.State)
	}
}

func TestToursSortOrder(t *testing.T) {
	lib := testLibrary(t)

	asc := lib.Tours(TourFilter{Sort: TourSortDateAsc})
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Date, asc[i].Date)
	}

	desc := lib.Tours(TourFilter{Sort: TourSortDateDesc})
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Date, desc[i].Date)
	}

	byLocation := lib.Tours(TourFilter{Sort: TourSortLocation})
	for i := 1; i < len(byLocation); i++ {
		assert.LessOrEqual(t, byLocation[i-1].Location, byLocation[i].Location)
	}
}

func TestTourStatesAreDistinctAndSorted(t *testing.T) {
	lib := testLibrary(t)

	states := lib.TourStates()
	seen := make(map[string]bool)
	for i, s := range states {
		assert.False(t, seen[s], "duplicate state %s", s)
		seen[s] = true
		if i > 0 {
			assert.Less(t, states[i-1], s)
		}
	}
}

func TestNewsBySlug(t *testing.T) {
	lib := testLibrary(t)

	articles := lib.NewsArticles()
	require.NotEmpty(t, articles)

	got, err := lib.NewsBySlug(articles[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, articles[0].ID, got.ID)

	_, err = lib.NewsBySlug("no-such-article")
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestNewsArticlesNewestFirst(t *testing.T) {
	lib := testLibrary(t)

	articles := lib.NewsArticles()
	for i := 1; i < len(articles); i++ {
		assert.GreaterOrEqual(t, articles[i-1].Date, articles[i].Date)
	}
}

func TestFeaturedVideos(t *testing.T) {
	lib := testLibrary(t)

	featured := lib.FeaturedVideos()
	require.NotEmpty(t, featured)
	for _, v := range featured {
		assert.True(t, v.Featured)
	}
	assert.Less(t, len(featured), len(lib.Videos()))
}
