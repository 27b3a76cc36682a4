package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jinzhu/gorm"

	"comboplanner/internal/menu"
	"comboplanner/internal/models"
)

// BeveragesPeriod is the period column value for beverage rows.
const BeveragesPeriod = "beverages"

// CatalogItem is one stored menu or beverage entry. Period is a meal name or
// BeveragesPeriod; Section is the category or beverage type.
type CatalogItem struct {
	gorm.Model
	Period      string `gorm:"index"`
	Section     string `gorm:"index"`
	Position    int
	Name        string
	Tags        models.StringSlice `gorm:"type:text"`
	Allergens   models.StringSlice `gorm:"type:text"`
	Ingredients string             `gorm:"type:text"`
	Spice       *int
	Price       *float64
	Note        string
}

// CatalogStore serves the catalog from the database, caching it until the
// next Seed.
type CatalogStore struct {
	db *gorm.DB

	mu     sync.RWMutex
	cached *models.Catalog
}

var _ menu.Provider = (*CatalogStore)(nil)

// NewCatalogStore wraps an open connection
func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// Migrate creates or updates the catalog table
func (s *CatalogStore) Migrate() error {
	if err := s.db.AutoMigrate(&CatalogItem{}).Error; err != nil {
		return fmt.Errorf("database: migrate catalog: %w", err)
	}
	return nil
}

// Seed replaces the stored catalog with c in one transaction.
func (s *CatalogStore) Seed(ctx context.Context, c *models.Catalog) error {
	if c == nil {
		return errors.New("database: seed: nil catalog")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("database: seed: %w", tx.Error)
	}
	if err := tx.Unscoped().Delete(&CatalogItem{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("database: seed: clear: %w", err)
	}

	for _, row := range rows(c) {
		if err := tx.Create(&row).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("database: seed: insert %q: %w", row.Name, err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("database: seed: commit: %w", err)
	}

	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
	return nil
}

// Catalog loads the stored catalog. An empty table is ErrCatalogNotFound.
func (s *CatalogStore) Catalog(ctx context.Context) (*models.Catalog, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []CatalogItem
	if err := s.db.Order("period, section, position").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("database: load catalog: %w", err)
	}
	if len(items) == 0 {
		return nil, menu.ErrCatalogNotFound
	}

	c := &models.Catalog{
		Meals:     make(map[string]map[string][]models.MenuItem),
		Beverages: make(map[string][]models.MenuItem),
	}
	for _, it := range items {
		mi := it.menuItem()
		if it.Period == BeveragesPeriod {
			c.Beverages[it.Section] = append(c.Beverages[it.Section], mi)
			continue
		}
		if c.Meals[it.Period] == nil {
			c.Meals[it.Period] = make(map[string][]models.MenuItem)
		}
		c.Meals[it.Period][it.Section] = append(c.Meals[it.Period][it.Section], mi)
	}

	s.mu.Lock()
	s.cached = c
	s.mu.Unlock()
	return c, nil
}

func (it CatalogItem) menuItem() models.MenuItem {
	return models.MenuItem{
		Name:        it.Name,
		Category:    it.Section,
		Tags:        []string(it.Tags),
		Allergens:   []string(it.Allergens),
		Ingredients: it.Ingredients,
		Spice:       it.Spice,
		Price:       it.Price,
		Note:        it.Note,
	}
}

// rows flattens a catalog in a stable order.
func rows(c *models.Catalog) []CatalogItem {
	var out []CatalogItem
	add := func(period string, sections map[string][]models.MenuItem) {
		names := make([]string, 0, len(sections))
		for name := range sections {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, section := range names {
			for i, mi := range sections[section] {
				out = append(out, CatalogItem{
					Period:      period,
					Section:     section,
					Position:    i,
					Name:        mi.Name,
					Tags:        models.StringSlice(mi.Tags),
					Allergens:   models.StringSlice(mi.Allergens),
					Ingredients: mi.Ingredients,
					Spice:       mi.Spice,
					Price:       mi.Price,
					Note:        mi.Note,
				})
			}
		}
	}
	for _, period := range c.Periods() {
		add(period, c.Meals[period])
	}
	add(BeveragesPeriod, c.Beverages)
	return out
}
