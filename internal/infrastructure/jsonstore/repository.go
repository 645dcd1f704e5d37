package jsonstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/matchboard/backend/internal/domain"
)

// File names inside the storage directory
const (
	ProductsFile   = "products.json"
	MatchesFile    = "match.json"
	CompetitorFile = "competitor.json"
)

// Repository implements the domain repositories on top of one Document per store
type Repository struct {
	settings   *Document[domain.Settings]
	products   *Document[[]domain.Record]
	matches    *Document[[]domain.Match]
	competitor *Document[domain.Competitor]
	logger     *zap.Logger
}

// NewRepository creates the storage directory if needed and binds the four
// stores. The settings document lives at settingsPath, outside storageDir.
func NewRepository(storageDir, settingsPath string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}

	return &Repository{
		settings: NewDocument(settingsPath, func() domain.Settings {
			return domain.Settings{}
		}, logger),
		products: NewDocument(filepath.Join(storageDir, ProductsFile), func() []domain.Record {
			return []domain.Record{}
		}, logger),
		matches: NewDocument(filepath.Join(storageDir, MatchesFile), func() []domain.Match {
			return []domain.Match{}
		}, logger),
		competitor: NewDocument(filepath.Join(storageDir, CompetitorFile), func() domain.Competitor {
			return domain.Competitor{}
		}, logger),
		logger: logger,
	}, nil
}

// ListProducts returns the stored catalog rows
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products, _ := r.products.Load()
	if products == nil {
		products = []domain.Record{}
	}
	return products, nil
}

// ReplaceProducts overwrites the catalog
func (r *Repository) ReplaceProducts(ctx context.Context, products []domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if products == nil {
		products = []domain.Record{}
	}
	if err := r.products.Save(products); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

// ListMatches returns the stored matches
func (r *Repository) ListMatches(ctx context.Context) ([]domain.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, _ := r.matches.Load()
	if matches == nil {
		matches = []domain.Match{}
	}
	return matches, nil
}

// ReplaceMatches overwrites the match store
func (r *Repository) ReplaceMatches(ctx context.Context, matches []domain.Match) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	if err := r.matches.Save(matches); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

// GetSettings returns the settings document
func (r *Repository) GetSettings(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}
	settings, _ := r.settings.Load()
	return settings, nil
}

// SaveSettings overwrites the settings document
func (r *Repository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.settings.Save(settings); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}

// GetCompetitor returns the competitor document
func (r *Repository) GetCompetitor(ctx context.Context) (domain.Competitor, error) {
	if err := ctx.Err(); err != nil {
		return domain.Competitor{}, err
	}
	competitor, _ := r.competitor.Load()
	return competitor, nil
}

// SaveCompetitor overwrites the competitor document
func (r *Repository) SaveCompetitor(ctx context.Context, competitor domain.Competitor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.competitor.Save(competitor); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}
	return nil
}
