package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smartcity/aqdash/internal/domain"
)

// MemoryRepository implements domain.DatasetSource over records held in memory.
// It backs tests and the demo mode used when no data file is configured.
type MemoryRepository struct {
	columns []string
	records []domain.Record
}

// NewMemoryRepository serves a copy of records on every load
func NewMemoryRepository(records []domain.Record) *MemoryRepository {
	return &MemoryRepository{
		columns: append([]string(nil), domain.CanonicalColumns...),
		records: append([]domain.Record(nil), records...),
	}
}

// NewDemoRepository serves a small built-in dataset
func NewDemoRepository() *MemoryRepository {
	return NewMemoryRepository(DemoRecords())
}

// Describe names the source
func (r *MemoryRepository) Describe() string { return "memory" }

// Load returns the held records as a new dataset
func (r *MemoryRepository) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	return domain.Dataset{
		Version:  uuid.NewString(),
		Source:   r.Describe(),
		LoadedAt: time.Now(),
		Columns:  append([]string(nil), r.columns...),
		Records:  append([]domain.Record(nil), r.records...),
	}, nil
}

// Health always returns nil in memory mode
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}

// DemoRecords returns a week of readings for four cities
func DemoRecords() []domain.Record {
	type city struct {
		name            string
		aqi, pm25, temp float64
		humidity        float64
	}
	cities := []city{
		{"Almaty", 150, 62, -6, 71},
		{"Astana", 95, 35, -14, 66},
		{"Delhi", 210, 118, 17, 58},
		{"Oslo", 32, 8, -2, 80},
	}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	var out []domain.Record
	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day)
		swing := float64((day*7)%5) - 2
		for _, c := range cities {
			rec := domain.Record{
				City:        c.name,
				Date:        date,
				AQI:         domain.Float(c.aqi + swing*4),
				PM25:        domain.Float(c.pm25 + swing*2),
				Temperature: domain.Float(c.temp + swing),
				Humidity:    domain.Float(c.humidity - swing),
			}
			// Sensor gaps
			if c.name == "Oslo" && day%3 == 0 {
				rec.PM25 = nil
			}
			out = append(out, rec)
		}
	}
	return out
}
