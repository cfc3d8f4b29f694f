package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hearthline/estate-assistant/internal/model"
)

// PostgresStore serves listing queries from a Postgres mirror of the
// listings collection.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to the listings database.
func NewPostgresStore(dsn string, maxConns, maxIdleConns int) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect listings database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type listingRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       string         `db:"price"`
	ImageURLs   pq.StringArray `db:"image_urls"`
	Latitude    float64        `db:"latitude"`
	Longitude   float64        `db:"longitude"`
}

const listingColumns = `id, name, description, price, image_urls, latitude, longitude`

// SearchGeneral queries the general channel. Location filters by city
// equality, matching the upstream store's semantics for this channel.
func (s *PostgresStore) SearchGeneral(ctx context.Context, category *model.Category, location *string, maxPrice *int64) ([]model.Record, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if category != nil {
		where = append(where, fmt.Sprintf("property_type = $%d", argIndex))
		args = append(args, string(*category))
		argIndex++
	}
	if location != nil {
		where = append(where, fmt.Sprintf("city = $%d", argIndex))
		args = append(args, *location)
		argIndex++
	}
	if maxPrice != nil {
		where = append(where, fmt.Sprintf("price::numeric <= $%d", argIndex))
		args = append(args, *maxPrice)
		argIndex++
	}

	query := fmt.Sprintf(
		`SELECT %s FROM listings WHERE %s ORDER BY uploaded_at DESC`,
		listingColumns, strings.Join(where, " AND "),
	)

	return s.selectRecords(ctx, query, args)
}

// SearchLand queries the land channel. Location prefix-matches the
// listing name, which is the upstream land channel's range-query
// behavior; it is intentionally not unified with SearchGeneral's city
// equality.
func (s *PostgresStore) SearchLand(ctx context.Context, location *string) ([]model.Record, error) {
	where := []string{"property_type = 'Land'"}
	args := []interface{}{}
	argIndex := 1

	if location != nil {
		where = append(where, fmt.Sprintf("name LIKE $%d || '%%'", argIndex))
		args = append(args, *location)
		argIndex++
	}

	query := fmt.Sprintf(
		`SELECT %s FROM listings WHERE %s ORDER BY uploaded_at DESC`,
		listingColumns, strings.Join(where, " AND "),
	)

	return s.selectRecords(ctx, query, args)
}

func (s *PostgresStore) selectRecords(ctx context.Context, query string, args []interface{}) ([]model.Record, error) {
	var rows []listingRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}

	records := make([]model.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.Record{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
			ImageURLs:   row.ImageURLs,
			Latitude:    row.Latitude,
			Longitude:   row.Longitude,
		})
	}
	return records, nil
}
