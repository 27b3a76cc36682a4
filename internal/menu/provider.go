package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"comboplanner/internal/models"
)

// ErrCatalogNotFound is returned when the catalog source does not exist.
var ErrCatalogNotFound = errors.New("menu: catalog not found")

// Provider supplies the read-only catalog.
type Provider interface {
	Catalog(ctx context.Context) (*models.Catalog, error)
}

// FileProvider loads a JSON catalog from disk once and serves it for the
// lifetime of the process.
type FileProvider struct {
	path    string
	once    sync.Once
	catalog *models.Catalog
	err     error
}

// NewFileProvider creates a provider for the catalog at path
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Path returns the file the provider reads
func (p *FileProvider) Path() string {
	return p.path
}

// Catalog returns the cached catalog, loading it on first use.
func (p *FileProvider) Catalog(ctx context.Context) (*models.Catalog, error) {
	p.once.Do(func() {
		p.catalog, p.err = p.load()
	})
	return p.catalog, p.err
}

func (p *FileProvider) load() (*models.Catalog, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, p.path)
		}
		return nil, fmt.Errorf("menu: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes a catalog document
func LoadCatalog(r io.Reader) (*models.Catalog, error) {
	var catalog models.Catalog
	if err := json.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("menu: decode catalog: %w", err)
	}
	return &catalog, nil
}

// StaticProvider serves a catalog that is already in memory.
type StaticProvider struct {
	catalog *models.Catalog
}

// NewStaticProvider wraps an in-memory catalog
func NewStaticProvider(catalog *models.Catalog) *StaticProvider {
	return &StaticProvider{catalog: catalog}
}

// Catalog returns the wrapped catalog
func (p *StaticProvider) Catalog(ctx context.Context) (*models.Catalog, error) {
	if p.catalog == nil {
		return nil, ErrCatalogNotFound
	}
	return p.catalog, nil
}
