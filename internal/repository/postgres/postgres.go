package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartcity/aqdash/internal/domain"
)

// DefaultTable holds the measurements when no table is configured
const DefaultTable = "air_quality"

// PostgresRepository implements domain.DatasetSource over a measurements table
type PostgresRepository struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool, table string) *PostgresRepository {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresRepository{pool: pool, table: table}
}

// Describe names the source
func (r *PostgresRepository) Describe() string {
	return "postgres:" + r.table
}

// Load reads every measurement in insertion order
func (r *PostgresRepository) Load(ctx context.Context) (domain.Dataset, error) {
	query := fmt.Sprintf(`
		SELECT city, date, aqi::float8, pm25::float8, temperature::float8, humidity::float8
		FROM %s
		ORDER BY id
	`, pgx.Identifier{r.table}.Sanitize())

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("postgres: failed to query measurements: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			rec  domain.Record
			city *string
		)
		err := rows.Scan(&city, &rec.Date, &rec.AQI, &rec.PM25, &rec.Temperature, &rec.Humidity)
		if err != nil {
			return domain.Dataset{}, fmt.Errorf("postgres: failed to scan measurement row: %w", err)
		}
		if city != nil {
			rec.City = *city
		}
		rec.Date = rec.Date.UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return domain.Dataset{}, fmt.Errorf("postgres: failed to read measurements: %w", err)
	}

	return domain.Dataset{
		Version:  uuid.NewString(),
		Source:   r.Describe(),
		LoadedAt: time.Now(),
		Columns:  append([]string(nil), domain.CanonicalColumns...),
		Records:  records,
	}, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
