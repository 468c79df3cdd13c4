package models

// TourEvent is a single show on the tour calendar.
type TourEvent struct {
	ID         string `json:"id" db:"id"`
	Date       string `json:"date" db:"date"`
	City       string `json:"city" db:"city"`
	State      string `json:"state" db:"state"`
	Venue      string `json:"venue" db:"venue"`
	Location   string `json:"location" db:"location"`
	TicketLink string `json:"ticket_link" db:"ticket_link"`
	VIPLink    string `json:"vip_link,omitempty" db:"vip_link"`
	Status     string `json:"status" db:"status"`
	Featured   bool   `json:"featured" db:"featured"`
	HasVIP     bool   `json:"has_vip" db:"has_vip"`
}

// Tour statuses
const (
	TourStatusUpcoming  = "upcoming"
	TourStatusPast      = "past"
	TourStatusCancelled = "cancelled"
)

// NewsArticle is a dated story shown in the news section.
type NewsArticle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// Album is a discography entry.
type Album struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Year        int    `json:"year"`
	CoverImage  string `json:"cover_image"`
	Genre       string `json:"genre"`
	Tracks      int    `json:"tracks"`
	Duration    string `json:"duration"`
	SpotifyURL  string `json:"spotify_url"`
	Description string `json:"description"`
}

// Song is a single track, possibly released outside an album.
type Song struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Album    string `json:"album"`
	Year     int    `json:"year"`
	Duration string `json:"duration"`
	IsSingle bool   `json:"is_single,omitempty"`
	Featured bool   `json:"featured,omitempty"`
}

// MusicVideo is a gallery entry.
type MusicVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	YouTubeID   string `json:"youtube_id"`
	Duration    string `json:"duration"`
	ReleaseDate string `json:"release_date"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
}

// Biography is the artist bio shown on the about page.
type Biography struct {
	Name       string   `json:"name"`
	Headline   string   `json:"headline"`
	Paragraphs []string `json:"paragraphs"`
	Milestones []string `json:"milestones"`
}
