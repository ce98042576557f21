package csvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/smartcity/aqdash/internal/csvio"
	"github.com/smartcity/aqdash/internal/domain"
)

// Source implements domain.DatasetSource over a CSV file on disk
type Source struct {
	path string
}

// NewSource creates a CSV-backed dataset source
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Path returns the file the source reads
func (s *Source) Path() string { return s.path }

// Describe names the source
func (s *Source) Describe() string {
	return "csv:" + filepath.Base(s.path)
}

// Load reads and parses the whole file
func (s *Source) Load(ctx context.Context) (domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dataset{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("csvfile: open %s: %w", s.path, err)
	}
	defer f.Close()

	columns, records, err := csvio.Read(f)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("csvfile: parse %s: %w", s.path, err)
	}
	return domain.Dataset{
		Version:  uuid.NewString(),
		Source:   s.Describe(),
		LoadedAt: time.Now(),
		Columns:  columns,
		Records:  records,
	}, nil
}

// Health checks that the file is still readable
func (s *Source) Health(ctx context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil {
		return fmt.Errorf("csvfile: health check failed: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("csvfile: health check failed: %s is a directory", s.path)
	}
	return nil
}
