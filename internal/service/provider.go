package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/smartcity/aqdash/internal/domain"
	"github.com/smartcity/aqdash/internal/metrics"
)

// ErrNotLoaded is returned before the first successful load
var ErrNotLoaded = errors.New("dataset not loaded")

const reloadDebounce = 250 * time.Millisecond

// DatasetProvider owns the current immutable Dataset. Readers take the
// snapshot once per request; reloads swap the whole value.
type DatasetProvider struct {
	source  DatasetSource
	logger  *slog.Logger
	current atomic.Pointer[domain.Dataset]
}

// NewDatasetProvider creates a provider over source. A nil logger uses slog's default.
func NewDatasetProvider(source DatasetSource, logger *slog.Logger) *DatasetProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &DatasetProvider{source: source, logger: logger}
}

// Load reads the dataset from the source and makes it current.
// On failure the previous dataset, if any, stays in place.
func (p *DatasetProvider) Load(ctx context.Context) error {
	started := time.Now()
	ds, err := p.source.Load(ctx)
	metrics.ObserveLoad(ds.Len(), err)
	if err != nil {
		return fmt.Errorf("provider: load %s: %w", p.source.Describe(), err)
	}
	p.current.Store(&ds)
	p.logger.Info("dataset loaded",
		"source", ds.Source,
		"version", ds.Version,
		"records", ds.Len(),
		"cities", len(ds.Cities()),
		"took", time.Since(started).String(),
	)
	return nil
}

// Current returns the loaded dataset
func (p *DatasetProvider) Current() (domain.Dataset, error) {
	ds := p.current.Load()
	if ds == nil {
		return domain.Dataset{}, ErrNotLoaded
	}
	return *ds, nil
}

// Health checks the underlying source
func (p *DatasetProvider) Health(ctx context.Context) error {
	return p.source.Health(ctx)
}

// Watch reloads the dataset whenever the file at path is written or
// replaced. It returns once the watch is registered; the loop stops with ctx.
func (p *DatasetProvider) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("provider: create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("provider: resolve %s: %w", path, err)
	}
	// Watch the directory so atomic renames by editors are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("provider: watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		var pending <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != abs {
					continue
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					pending = time.After(reloadDebounce)
				}
			case <-pending:
				pending = nil
				if err := p.Load(ctx); err != nil {
					p.logger.Error("dataset reload failed", "path", abs, "error", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn("watcher error", "error", err)
			}
		}
	}()
	return nil
}
