// Package store is the optional Postgres catalog source. When DATABASE_URL is
// configured, products and tour dates load from here instead of the embedded
// fixtures; the rest of the service is unaware of the difference.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Store struct {
	db *sqlx.DB
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

type productRow struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	FullDescription sql.NullString `db:"full_description"`
	Price           int64          `db:"price"`
	OriginalPrice   sql.NullInt64  `db:"original_price"`
	Categories      pq.StringArray `db:"categories"`
	Images          pq.StringArray `db:"images"`
	FeaturedImage   string         `db:"featured_image"`
	Quantity        int            `db:"quantity"`
	InStock         bool           `db:"in_stock"`
	SKU             string         `db:"sku"`
	Tags            pq.StringArray `db:"tags"`
	Weight          float64        `db:"weight"`
}

func (r productRow) toModel() models.Product {
	return models.Product{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		FullDescription: r.FullDescription.String,
		Price:           r.Price,
		OriginalPrice:   r.OriginalPrice.Int64,
		Categories:      r.Categories,
		Images:          r.Images,
		FeaturedImage:   r.FeaturedImage,
		Quantity:        r.Quantity,
		InStock:         r.InStock,
		SKU:             r.SKU,
		Tags:            r.Tags,
		Weight:          r.Weight,
	}
}

// GetProducts retrieves the full catalog
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var rows []productRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, r.toModel())
	}
	return products, nil
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	p := row.toModel()
	return &p, nil
}

// GetCategories retrieves the store category tabs
func (s *Store) GetCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT id, name, slug, description FROM categories ORDER BY id")
	return categories, err
}

// GetTourEvents retrieves the tour calendar, soonest first
func (s *Store) GetTourEvents(ctx context.Context) ([]models.TourEvent, error) {
	var tours []models.TourEvent
	err := s.db.SelectContext(ctx, &tours,
		"SELECT id, date, city, state, venue, location, ticket_link, COALESCE(vip_link, '') AS vip_link, status, featured, has_vip FROM tour_events ORDER BY date")
	return tours, err
}
